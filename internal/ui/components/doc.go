// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides small reusable render helpers for the
// nphies-chat TUI: the header bar and the status bar. Both are pure
// string renderers; state lives in the chat model.
package components
