// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history is the SQLite transcript archive. Saving is explicit:
// the user runs /save (or the history command) and the current
// conversation is written as one archived transcript. Nothing is
// archived automatically, and logout never touches the archive.
package history
