// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/brainsait/nphies-chat/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to a standalone HTML page with
// embedded CSS. Bubbles mirror the TUI layout: user on the right, agent on
// the left, system centered. Arabic exports flip the page direction.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, fmt.Errorf("conversation is empty")
	}

	lang, dir := "en", "ltr"
	if e.options.Arabic {
		lang, dir = "ar", "rtl"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(fmt.Sprintf("<html lang=%q dir=%q>\n", lang, dir))
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(e.options.Title)))
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=%q>\n", conv.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(pageCSS)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(e.options.Title)))

	for _, msg := range conv.History() {
		class := "system"
		switch msg.Role {
		case model.RoleUser:
			class = "user"
		case model.RoleAgent:
			class = "agent"
		}
		sb.WriteString(fmt.Sprintf("<div class=\"message %s\">\n", class))
		sb.WriteString(fmt.Sprintf("  <div class=\"role\">%s</div>\n", html.EscapeString(msg.Role.DisplayName())))
		sb.WriteString(fmt.Sprintf("  <div class=\"content\">%s</div>\n", renderHTMLContent(msg.DisplayContent(e.options.Arabic))))
		if msg.HasImage() {
			sb.WriteString(fmt.Sprintf("  <div class=\"attachment\">%s</div>\n", html.EscapeString(msg.AttachedImage)))
		}
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("  <div class=\"timestamp\">%s</div>\n", formatTimestamp(msg.Timestamp)))
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

// FileExtension returns ".html".
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// renderHTMLContent escapes message text and preserves line breaks.
func renderHTMLContent(content string) string {
	escaped := html.EscapeString(content)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

const pageCSS = `    <style>
        body { font-family: system-ui, sans-serif; max-width: 720px; margin: 0 auto; padding: 1rem; background: #0f1419; color: #e6e6e6; }
        h1 { color: #14b8a6; font-size: 1.3rem; }
        .message { margin: 0.75rem 0; padding: 0.6rem 0.9rem; border-radius: 0.6rem; }
        .message.user { background: #134e4a; margin-left: 20%; }
        .message.agent { background: #1e293b; margin-right: 20%; }
        .message.system { background: transparent; color: #94a3b8; text-align: center; font-size: 0.9rem; }
        .role { font-weight: 600; font-size: 0.8rem; color: #2dd4bf; margin-bottom: 0.25rem; }
        .attachment { font-style: italic; color: #94a3b8; font-size: 0.85rem; margin-top: 0.25rem; }
        .timestamp { color: #64748b; font-size: 0.75rem; margin-top: 0.25rem; }
    </style>
`
