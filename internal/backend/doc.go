// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend is the HTTP client for the NPHIES-AI assistant backend.
//
// It covers three surfaces:
//   - POST /auth/token: form-encoded credential exchange for a bearer token
//   - POST /chat: a streamed reply read as "data:" records over a chunked body
//   - GET /health: a liveness probe for the status command
//
// An alternate transport speaks the backend's /ws/chat websocket endpoint;
// both implement ChatTransport so the UI does not care which is wired.
//
// No request is ever retried. A failed send surfaces one error and waits
// for the user to act; the backend owns idempotency, not the client.
package backend
