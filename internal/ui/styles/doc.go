// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the nphies-chat
// TUI. All colors use Lip Gloss AdaptiveColor so the same palette works
// on light and dark terminals without configuration.
//
// The palette follows the BrainSAIT brand: teal primary for the agent,
// blue for the user, amber for system notices, rose for errors.
package styles
