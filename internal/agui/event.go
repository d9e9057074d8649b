// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agui implements the AG-UI streamed event protocol.
package agui

// Event types emitted by the assistant backend. The thinking and response
// types each have two spellings; both are dispatched identically.
const (
	EventSessionStart    = "session_start"
	EventAgentThinking   = "agent_thinking"
	EventThinking        = "thinking"
	EventPartialResponse = "partial_response"
	EventAgentResponse   = "agent_response"
	EventFinalResponse   = "final_response"
	EventSessionEnd      = "session_end"
	EventError           = "error"
)

// Event is one decoded protocol event: a type tag plus a type-dependent
// payload object.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Str returns the named payload field as a string, or "" when the field is
// absent or not a string. Payload shapes vary by event type, so lookups stay
// permissive.
func (e Event) Str(key string) string {
	if e.Data == nil {
		return ""
	}
	s, _ := e.Data[key].(string)
	return s
}

// FirstStr returns the first non-empty string among the named payload
// fields. Used for the final-response fallback from "message" to "text".
func (e Event) FirstStr(keys ...string) string {
	for _, key := range keys {
		if s := e.Str(key); s != "" {
			return s
		}
	}
	return ""
}

// NewThinkingEvent builds a locally synthesized thinking event. The send
// path dispatches one of these for immediate feedback while the network
// request is in flight.
func NewThinkingEvent(message, messageAr string) Event {
	data := map[string]any{"message": message}
	if messageAr != "" {
		data["message_ar"] = messageAr
	}
	return Event{Type: EventThinking, Data: data}
}
