// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brainsait/nphies-chat/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports conversations as a machine-readable JSON document.
// The message structs marshal themselves; the exporter adds an envelope
// with the export time.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonEnvelope struct {
	Title      string           `json:"title"`
	ExportedAt time.Time        `json:"exported_at"`
	Language   string           `json:"language"`
	ID         string           `json:"conversation_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Messages   []*model.Message `json:"messages"`
}

// Export converts a conversation to indented JSON.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, fmt.Errorf("conversation is empty")
	}

	lang := "en"
	if e.options.Arabic {
		lang = "ar"
	}
	env := jsonEnvelope{
		Title:      e.options.Title,
		ExportedAt: time.Now(),
		Language:   lang,
		ID:         conv.ID,
		CreatedAt:  conv.CreatedAt,
		Messages:   conv.History(),
	}
	return json.MarshalIndent(env, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
