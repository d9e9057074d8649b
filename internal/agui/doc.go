// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agui implements the AG-UI streamed event protocol spoken by the
// NPHIES assistant backend.
//
// The chat endpoint responds with event records separated by a blank line,
// each deliverable record carrying a "data:" prefix followed by one JSON
// object:
//
//	data: {"type":"partial_response","data":{"text":"Hello"}}
//
// Two pieces live here:
//
//   - RecordScanner: splits an incrementally delivered body into complete
//     records, buffering any trailing partial record until more bytes arrive
//   - Dispatcher: maps each decoded event to a mutation of the conversation,
//     tracking the single agent message currently being filled in
//
// Malformed records are logged and skipped; they never abort the rest of the
// stream. Unrecognized event types are ignored.
package agui
