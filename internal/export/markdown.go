// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/brainsait/nphies-chat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown format.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, fmt.Errorf("conversation is empty")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", e.options.Title))
	sb.WriteString(fmt.Sprintf("Exported %s\n\n", time.Now().Format(time.RFC1123)))

	for _, msg := range conv.History() {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("**%s** (%s):\n\n", msg.Role.DisplayName(), msg.Timestamp.Format("15:04:05")))
		} else {
			sb.WriteString(fmt.Sprintf("**%s**:\n\n", msg.Role.DisplayName()))
		}
		sb.WriteString(msg.DisplayContent(e.options.Arabic))
		sb.WriteString("\n\n")
		if msg.HasImage() {
			sb.WriteString(fmt.Sprintf("_attachment: %s_\n\n", msg.AttachedImage))
		}
		sb.WriteString("---\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}
