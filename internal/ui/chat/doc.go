// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea model for the assistant surface.
//
// The model has two views behind one program: the login form while the
// auth gate is unauthenticated, and the conversation once a token is
// held. Streamed reply events arrive over a channel owned by the backend
// transport; the update loop pulls one event per tea message and hands
// it to the dispatcher, which mutates the conversation in arrival order.
package chat
