// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses arguments and implements the non-TUI commands:
// login, logout, ask, status, history, and config. The default command
// (no arguments) starts the TUI; main wires that one because it owns the
// Bubble Tea program.
package cli
