// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strconv"
	"sync/atomic"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAgent:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// The ID is assigned at creation time and never changes. Role, Content and
// LocalizedContent are mutated in place while an agent reply streams in;
// the Timestamp and AttachedImage are immutable after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content is the primary display text (English).
	Content string `json:"content"`

	// LocalizedContent is the Arabic variant, shown preferentially when the
	// active display language is Arabic.
	LocalizedContent string `json:"localized_content,omitempty"`

	// AttachedImage references a locally picked image shown inline.
	AttachedImage string `json:"attached_image,omitempty"`
}

// NewMessage creates a new message with a timestamp-derived ID.
func NewMessage(role Role, content string) *Message {
	now := time.Now()
	return &Message{
		ID:        generateID(now),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAgentMessage creates a new agent message.
func NewAgentMessage(content string) *Message {
	return NewMessage(RoleAgent, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// DisplayContent returns the text to show for the given language tag.
// Arabic callers get LocalizedContent when the backend supplied one.
func (m *Message) DisplayContent(arabic bool) string {
	if arabic && m.LocalizedContent != "" {
		return m.LocalizedContent
	}
	return m.Content
}

// HasImage reports whether the message carries an attached image.
func (m *Message) HasImage() bool {
	return m.AttachedImage != ""
}

// IsEmpty returns true if the message has no text and no image.
func (m *Message) IsEmpty() bool {
	return m.Content == "" && m.LocalizedContent == "" && m.AttachedImage == ""
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Arabic text correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// idSeq breaks ties between messages created in the same nanosecond.
// Uniqueness is per-session, matching how IDs are assigned at creation time.
var idSeq atomic.Uint64

// generateID derives a message ID from the creation timestamp.
func generateID(t time.Time) string {
	seq := idSeq.Add(1)
	return "msg_" + strconv.FormatInt(t.UnixNano(), 36) + "_" + strconv.FormatUint(seq, 36)
}
