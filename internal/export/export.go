// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to files. The format follows the
// target extension: .md, .html, or .json.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/brainsait/nphies-chat/internal/model"
	"github.com/brainsait/nphies-chat/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation into one output format.
type Exporter interface {
	// Export renders the conversation and returns the file content.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the extension for the format (".md", ".html").
	FileExtension() string
}

// Options configures export behavior.
type Options struct {
	// Title heads the exported document.
	Title string

	// Arabic selects the localized message text where available.
	Arabic bool

	// IncludeTimestamps includes per-message timestamps.
	IncludeTimestamps bool
}

// DefaultOptions returns the default export options.
func DefaultOptions() *Options {
	return &Options{
		Title:             "NPHIES-AI Conversation",
		IncludeTimestamps: true,
	}
}

// =============================================================================
// FORMAT SELECTION
// =============================================================================

// ForPath picks an exporter by file extension. Unknown and missing
// extensions fall back to markdown.
func ForPath(path string, opts *Options) Exporter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return NewHTMLExporter(opts)
	case ".json":
		return NewJSONExporter(opts)
	default:
		return NewMarkdownExporter(opts)
	}
}

// WriteFile exports the conversation to the given path, choosing the format
// by extension. An empty path picks a timestamped markdown name in the
// working directory. Returns the path written.
func WriteFile(conv *model.Conversation, path string, opts *Options) (string, error) {
	if conv == nil || conv.IsEmpty() {
		return "", fmt.Errorf("conversation is empty")
	}
	if path == "" {
		path = fmt.Sprintf("nphies-chat-%s.md", time.Now().Format("20060102-150405"))
	}

	content, err := ForPath(path, opts).Export(conv)
	if err != nil {
		return "", err
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// formatTimestamp renders a message timestamp for human-readable formats.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
