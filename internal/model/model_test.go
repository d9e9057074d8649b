// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

func TestNewMessageAssignsStableID(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if msg.Role != RoleUser {
		t.Errorf("expected user role, got %s", msg.Role)
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	// IDs from back-to-back creations must not collide
	other := NewUserMessage("hello")
	if other.ID == msg.ID {
		t.Errorf("expected distinct IDs, both were %s", msg.ID)
	}
}

func TestDisplayContentPrefersLocalized(t *testing.T) {
	msg := NewAgentMessage("Request processed")
	msg.LocalizedContent = "تم معالجة طلبك"

	if got := msg.DisplayContent(true); got != "تم معالجة طلبك" {
		t.Errorf("arabic display = %q", got)
	}
	if got := msg.DisplayContent(false); got != "Request processed" {
		t.Errorf("english display = %q", got)
	}

	// No localized variant: fall back to primary content either way
	plain := NewAgentMessage("hello")
	if got := plain.DisplayContent(true); got != "hello" {
		t.Errorf("fallback display = %q", got)
	}
}

func TestConversationPatchInPlace(t *testing.T) {
	conv := NewConversation()
	msg := conv.AppendSystem("Analyzing...")

	ok := conv.Patch(msg.ID, func(m *Message) {
		m.Role = RoleAgent
		m.Content = "Hello world"
	})
	if !ok {
		t.Fatal("Patch returned false for existing message")
	}

	got := conv.ByID(msg.ID)
	if got.Role != RoleAgent {
		t.Errorf("expected role agent after patch, got %s", got.Role)
	}
	if got.Content != "Hello world" {
		t.Errorf("expected patched content, got %q", got.Content)
	}
	if got.ID != msg.ID {
		t.Error("patch must not change the message ID")
	}
	if conv.Len() != 1 {
		t.Errorf("patch must not append, len = %d", conv.Len())
	}
}

func TestConversationPatchMissingID(t *testing.T) {
	conv := NewConversation()
	if conv.Patch("msg_missing", func(m *Message) { m.Content = "x" }) {
		t.Error("Patch returned true for missing message")
	}
}

func TestConversationClear(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("hi")
	conv.AppendAgent("hello")

	conv.Clear()

	if !conv.IsEmpty() {
		t.Errorf("expected empty conversation, len = %d", conv.Len())
	}
}

func TestConversationPrune(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		conv.AppendUser("m")
	}
	if conv.Len() != MaxMessages {
		t.Errorf("expected %d messages after prune, got %d", MaxMessages, conv.Len())
	}
}
