// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brainsait/nphies-chat/internal/ui/styles"
	"github.com/brainsait/nphies-chat/internal/util"
)

// StatusBar renders the bottom status line of the chat surface.
type StatusBar struct {
	Width     int
	SessionID string
	Transport string
	Typing    bool
	// Spinner is the current spinner frame, shown while Typing.
	Spinner string
	// Notice is a transient message, shown in place of the session info.
	Notice string
}

// Render produces the status line at the configured width.
func (s StatusBar) Render() string {
	var parts []string

	if s.Typing {
		parts = append(parts, s.Spinner+" agent is typing")
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	} else {
		if s.SessionID != "" {
			parts = append(parts, "session "+util.TruncateRunes(s.SessionID, 16))
		}
		if s.Transport != "" {
			parts = append(parts, s.Transport)
		}
	}
	parts = append(parts, "ctrl+c quit")

	line := strings.Join(parts, "  |  ")
	bar := styles.NewTheme().StatusBar.Width(s.Width).Render(util.TruncateWidth(line, s.Width-2))
	if lipgloss.Width(bar) > s.Width && s.Width > 0 {
		return util.TruncateWidth(bar, s.Width)
	}
	return bar
}
