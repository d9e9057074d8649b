// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/brainsait/nphies-chat/internal/model"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.AppendUser("What is the status of claim 12345?")
	agent := conv.AppendAgent("The claim is approved.")
	agent.LocalizedContent = "تمت الموافقة على المطالبة."
	return conv
}

func TestSaveAndLoad(t *testing.T) {
	archive := newTestArchive(t)
	conv := sampleConversation()

	if err := archive.Save(conv); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := archive.Load(conv.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != conv.Len() {
		t.Fatalf("expected %d messages, got %d", conv.Len(), loaded.Len())
	}
	if loaded.Messages[0].Role != model.RoleUser {
		t.Errorf("unexpected first role: %q", loaded.Messages[0].Role)
	}
	if loaded.Messages[1].LocalizedContent != "تمت الموافقة على المطالبة." {
		t.Errorf("localized content did not round-trip: %q", loaded.Messages[1].LocalizedContent)
	}
}

func TestSaveEmptyConversation(t *testing.T) {
	archive := newTestArchive(t)
	if err := archive.Save(model.NewConversation()); err == nil {
		t.Error("expected error for empty conversation")
	}
}

func TestResaveReplacesTranscript(t *testing.T) {
	archive := newTestArchive(t)
	conv := sampleConversation()

	if err := archive.Save(conv); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	conv.AppendUser("And claim 67890?")
	if err := archive.Save(conv); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	infos, err := archive.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 transcript, got %d", len(infos))
	}
	if infos[0].Messages != 3 {
		t.Errorf("expected 3 messages after resave, got %d", infos[0].Messages)
	}
}

func TestListOrder(t *testing.T) {
	archive := newTestArchive(t)

	first := sampleConversation()
	second := sampleConversation()
	if err := archive.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := archive.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	infos, err := archive.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 transcripts, got %d", len(infos))
	}
}

func TestSearch(t *testing.T) {
	archive := newTestArchive(t)

	conv := model.NewConversation()
	conv.AppendUser("Tell me about NPHIES eligibility checks")
	if err := archive.Save(conv); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other := model.NewConversation()
	other.AppendUser("Unrelated question")
	if err := archive.Save(other); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	infos, err := archive.Search("eligibility", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != conv.ID {
		t.Fatalf("expected one match for %q, got %+v", conv.ID, infos)
	}
}

func TestLoadMissing(t *testing.T) {
	archive := newTestArchive(t)
	if _, err := archive.Load("conv_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	archive := newTestArchive(t)
	conv := sampleConversation()
	if err := archive.Save(conv); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := archive.Delete(conv.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := archive.Load(conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := archive.Delete(conv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}
