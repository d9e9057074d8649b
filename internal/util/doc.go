// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the nphies-chat client.
//
// It contains the atomic file writer used by the credential store and the
// transcript exporter, and width-aware string helpers used by the UI when
// laying out mixed Arabic/English text.
package util
