// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agui implements the AG-UI streamed event protocol.
package agui

import (
	"github.com/brainsait/nphies-chat/internal/model"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher applies decoded events to a conversation, strictly in arrival
// order.
//
// Its only state beyond the conversation is the active agent message id: the
// backend streams a thinking placeholder, then partial text chunks, then a
// final chunk, all describing the same logical reply, and the active id
// routes them to one evolving message instead of one bubble per event. A
// missing or out-of-order thinking event is tolerated by lazily creating the
// message node on the first partial or final chunk.
type Dispatcher struct {
	conv *model.Conversation

	// activeID points at the message currently being filled, or "" when none.
	activeID string

	// sessionID is the server-assigned id from the first session_start,
	// reused on subsequent chat requests.
	sessionID string

	// ErrorFallback is shown for error events that carry no message text.
	// Callers set it to a localized default for the active display language.
	ErrorFallback string

	// OnSessionStart, if set, observes session id assignment.
	OnSessionStart func(id string)
}

// NewDispatcher creates a dispatcher mutating the given conversation.
func NewDispatcher(conv *model.Conversation) *Dispatcher {
	return &Dispatcher{
		conv:          conv,
		ErrorFallback: "An error occurred. Please try again.",
	}
}

// Dispatch applies one event. Unrecognized types are a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	switch ev.Type {
	case EventSessionStart:
		if id := ev.Str("session_id"); id != "" {
			d.sessionID = id
			if d.OnSessionStart != nil {
				d.OnSessionStart(id)
			}
		}

	case EventThinking, EventAgentThinking:
		// The placeholder is a system bubble, but it is also the anchor the
		// following partial/final events update, so it becomes the active
		// message and later flips to the agent role. When the anchor is
		// still an untouched placeholder, a second thinking event (the
		// backend's own, after a locally synthesized one) refreshes it
		// instead of stacking another bubble.
		if active := d.conv.ByID(d.activeID); active != nil && active.Role == model.RoleSystem {
			d.conv.Patch(d.activeID, func(m *model.Message) {
				m.Content = ev.Str("message")
				m.LocalizedContent = ev.Str("message_ar")
			})
			return
		}
		msg := d.conv.AppendSystem(ev.Str("message"))
		msg.LocalizedContent = ev.Str("message_ar")
		d.activeID = msg.ID

	case EventPartialResponse:
		text := ev.Str("text")
		if d.activeID != "" && d.conv.ByID(d.activeID) != nil {
			d.conv.Patch(d.activeID, func(m *model.Message) {
				m.Role = model.RoleAgent
				m.Content = text
			})
		} else {
			msg := d.conv.AppendAgent(text)
			d.activeID = msg.ID
		}
		// More partials may follow; the active id stays set.

	case EventAgentResponse, EventFinalResponse:
		content := ev.FirstStr("message", "text")
		localized := ev.Str("message_ar")
		if d.activeID != "" && d.conv.ByID(d.activeID) != nil {
			d.conv.Patch(d.activeID, func(m *model.Message) {
				m.Role = model.RoleAgent
				m.Content = content
				m.LocalizedContent = localized
			})
		} else {
			msg := d.conv.AppendAgent(content)
			msg.LocalizedContent = localized
		}
		d.activeID = ""

	case EventSessionEnd:
		d.activeID = ""

	case EventError:
		text := ev.Str("message")
		if text == "" {
			text = d.ErrorFallback
		}
		d.conv.AppendSystem(text)
		// The active id is untouched: a recoverable stream may continue.
	}
}

// DispatchAll applies a batch of events in order.
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, ev := range events {
		d.Dispatch(ev)
	}
}

// SessionID returns the server-assigned session id, or "" before the first
// session_start event.
func (d *Dispatcher) SessionID() string {
	return d.sessionID
}

// ActiveID returns the id of the message currently being filled, or "".
func (d *Dispatcher) ActiveID() string {
	return d.activeID
}

// ClearActive drops the active message id. The send path calls it when a
// stream fails or closes, so a stale anchor from an abandoned reply cannot
// absorb the next send's thinking placeholder or response.
func (d *Dispatcher) ClearActive() {
	d.activeID = ""
}

// Reset clears the session id and the active message id. Used on logout,
// together with clearing the conversation itself.
func (d *Dispatcher) Reset() {
	d.sessionID = ""
	d.activeID = ""
}
