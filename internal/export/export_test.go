// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brainsait/nphies-chat/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.AppendUser("check my claim status")
	agent := conv.AppendAgent("Your claim is approved")
	agent.LocalizedContent = "تمت الموافقة على مطالبتك"
	return conv
}

func TestMarkdownExport(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(sampleConversation())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "# NPHIES-AI Conversation") {
		t.Error("missing title")
	}
	if !strings.Contains(text, "check my claim status") {
		t.Error("missing user message")
	}
	if !strings.Contains(text, "Your claim is approved") {
		t.Error("missing agent message")
	}
}

func TestMarkdownExportArabic(t *testing.T) {
	opts := DefaultOptions()
	opts.Arabic = true
	content, err := NewMarkdownExporter(opts).Export(sampleConversation())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(content), "تمت الموافقة على مطالبتك") {
		t.Error("expected localized agent text")
	}
}

func TestHTMLExport(t *testing.T) {
	conv := sampleConversation()
	content, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(text, `dir="ltr"`) {
		t.Error("expected ltr direction for English export")
	}
	if !strings.Contains(text, `class="message user"`) {
		t.Error("missing user bubble")
	}
}

func TestHTMLExportArabicDirection(t *testing.T) {
	opts := DefaultOptions()
	opts.Arabic = true
	content, err := NewHTMLExporter(opts).Export(sampleConversation())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(content), `dir="rtl"`) {
		t.Error("expected rtl direction for Arabic export")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	conv := model.NewConversation()
	conv.AppendUser("<script>alert(1)</script>")
	content, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(string(content), "<script>") {
		t.Error("content was not escaped")
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	conv := sampleConversation()
	content, err := NewJSONExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var env struct {
		ID       string           `json:"conversation_id"`
		Messages []*model.Message `json:"messages"`
	}
	if err := json.Unmarshal(content, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.ID != conv.ID {
		t.Errorf("id = %q, want %q", env.ID, conv.ID)
	}
	if len(env.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(env.Messages))
	}
}

func TestForPathSelection(t *testing.T) {
	tests := []struct {
		path string
		ext  string
	}{
		{"out.md", ".md"},
		{"out.html", ".html"},
		{"out.htm", ".html"},
		{"out.json", ".json"},
		{"out.txt", ".md"},
		{"out", ".md"},
	}
	for _, tt := range tests {
		if got := ForPath(tt.path, nil).FileExtension(); got != tt.ext {
			t.Errorf("ForPath(%q) ext = %q, want %q", tt.path, got, tt.ext)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.html")

	written, err := WriteFile(sampleConversation(), path, nil)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written != path {
		t.Errorf("written path = %q", written)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("file does not look like HTML")
	}
}

func TestWriteFileEmptyConversation(t *testing.T) {
	if _, err := WriteFile(model.NewConversation(), "out.md", nil); err == nil {
		t.Error("expected error for empty conversation")
	}
}
