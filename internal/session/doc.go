// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the authentication gate that fronts the chat
// surface. The gate has exactly two states: Unauthenticated renders the
// login form, Authenticated renders the conversation. A persisted token
// found at startup skips the form; logout clears the token, the server
// session id, and the in-memory conversation in one step.
//
// The gate re-checks the credential store before every send. The in-memory
// state can go stale if another process clears the token file, so the
// stored token is the source of truth, not the cached flag.
package session
