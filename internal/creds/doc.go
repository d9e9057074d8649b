// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package creds persists the two pieces of client state that survive
// restarts: the bearer token and the display-language flag.
//
// Both live under fixed keys in one JSON file (~/.nphies-chat/credentials.json
// by default), written atomically with 0600 permissions. The token is cleared
// only by explicit logout; the language flag changes whenever the user
// toggles it.
//
// Store is a narrow capability interface so the session gate and the UI can
// be tested without touching the filesystem.
package creds
