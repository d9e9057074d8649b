// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages is the maximum number of messages kept in the in-memory
// conversation. When exceeded, the oldest messages are pruned.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the ordered in-memory message list for one chat screen.
// Messages accumulate for the lifetime of the conversation; nothing here is
// persisted unless the user explicitly archives the transcript.
type Conversation struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the conversation.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// AppendUser creates and appends a user message.
func (c *Conversation) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	c.Append(msg)
	return msg
}

// AppendAgent creates and appends an agent message.
func (c *Conversation) AppendAgent(content string) *Message {
	msg := NewAgentMessage(content)
	c.Append(msg)
	return msg
}

// AppendSystem creates and appends a system message.
func (c *Conversation) AppendSystem(content string) *Message {
	msg := NewSystemMessage(content)
	c.Append(msg)
	return msg
}

// ByID returns the message with the given ID, or nil if it is not present.
func (c *Conversation) ByID(id string) *Message {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// Patch mutates a message in place by ID. Returns false if no message with
// that ID exists. Only the fields the mutator touches change; the ID and
// timestamp stay as created.
func (c *Conversation) Patch(id string, mutate func(*Message)) bool {
	msg := c.ByID(id)
	if msg == nil {
		return false
	}
	mutate(msg)
	c.UpdatedAt = time.Now()
	return true
}

// Last returns the most recent message, or nil if the conversation is empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastUser returns the most recent user message, or nil.
func (c *Conversation) LastUser() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i]
		}
	}
	return nil
}

// Clear removes all messages. Used on logout.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// History returns the message list for display.
func (c *Conversation) History() []*Message {
	return c.Messages
}

// Preview returns a short summary of the conversation for listings.
func (c *Conversation) Preview() string {
	first := c.LastUser()
	if first == nil {
		if len(c.Messages) == 0 {
			return "Empty conversation"
		}
		first = c.Messages[0]
	}
	return first.Preview(100)
}

// pruneOldMessages drops the oldest messages once the list exceeds
// MaxMessages, keeping memory bounded during long sessions.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	excess := len(c.Messages) - MaxMessages
	c.Messages = append(c.Messages[:0:0], c.Messages[excess:]...)
}
