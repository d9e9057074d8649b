// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme bundles the styles the chat surface renders with. One Theme is
// built at startup and shared; styles are value types and safe to copy.
type Theme struct {
	// Message bubbles
	UserBubble   lipgloss.Style
	AgentBubble  lipgloss.Style
	SystemBubble lipgloss.Style

	// Sender labels above bubbles
	UserLabel   lipgloss.Style
	AgentLabel  lipgloss.Style
	SystemLabel lipgloss.Style

	// Timestamps under bubbles
	Timestamp lipgloss.Style

	// Chrome
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	InputBar  lipgloss.Style

	// Login form
	FormTitle lipgloss.Style
	FormLabel lipgloss.Style
	FormError lipgloss.Style
	FormHint  lipgloss.Style

	// Inline states
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Thinking lipgloss.Style
}

// NewTheme builds the standard theme.
func NewTheme() *Theme {
	return &Theme{
		UserBubble: lipgloss.NewStyle().
			Foreground(UserBubbleFg).
			Background(UserBubbleBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(UserBubbleBorder).
			Padding(0, 1),

		AgentBubble: lipgloss.NewStyle().
			Foreground(AgentBubbleFg).
			Background(AgentBubbleBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AgentBubbleBorder).
			Padding(0, 1),

		SystemBubble: lipgloss.NewStyle().
			Foreground(SystemBubbleFg).
			Background(SystemBubbleBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SystemBubbleBorder).
			Padding(0, 1),

		UserLabel:   lipgloss.NewStyle().Foreground(Blue).Bold(true),
		AgentLabel:  lipgloss.NewStyle().Foreground(Teal).Bold(true),
		SystemLabel: lipgloss.NewStyle().Foreground(Amber).Bold(true),

		Timestamp: lipgloss.NewStyle().Foreground(TextMuted),

		Header: lipgloss.NewStyle().
			Foreground(TextInverse).
			Background(Teal).
			Bold(true).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(SurfaceDim).
			Padding(0, 1),

		InputBar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Overlay).
			Padding(0, 1),

		FormTitle: lipgloss.NewStyle().Foreground(Teal).Bold(true),
		FormLabel: lipgloss.NewStyle().Foreground(TextSecondary),
		FormError: lipgloss.NewStyle().Foreground(Rose),
		FormHint:  lipgloss.NewStyle().Foreground(TextMuted),

		Error:    lipgloss.NewStyle().Foreground(Rose).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(TextMuted),
		Thinking: lipgloss.NewStyle().Foreground(Amber).Italic(true),
	}
}

// HasDarkBackground reports whether the terminal background is dark.
// Used to pick the glamour style that matches the lipgloss palette.
func HasDarkBackground() bool {
	return termenv.HasDarkBackground()
}
