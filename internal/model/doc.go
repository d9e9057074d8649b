// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Message: a single chat turn with role, content, optional Arabic
//     localization and an optional attached image reference
//   - Conversation: ordered message list, appended to and patched in place
//     while an agent reply streams in
//   - Role: message role enumeration (user, agent, system)
//
// A Message ID is stable once created; only the role, content and localized
// content may change afterwards. The streamed-event dispatcher uses that to
// fill one evolving agent reply across thinking/partial/final events.
package model
