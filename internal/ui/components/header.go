// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
	"github.com/brainsait/nphies-chat/internal/util"
)

// Header renders the top application bar.
type Header struct {
	Width    int
	Language locale.Language
}

// appTitle pairs the product name with its Arabic rendering.
const (
	appTitleEN = "BrainSAIT NPHIES-AI Assistant"
	appTitleAR = "مساعد برين سايت الذكي"
)

// Render produces the header line at the configured width.
func (h Header) Render() string {
	title := appTitleEN
	if h.Language == locale.Arabic {
		title = appTitleAR
	}

	langTag := "EN"
	if h.Language == locale.Arabic {
		langTag = "AR"
	}

	left := styles.NewTheme().Header.Render(title)
	right := lipgloss.NewStyle().
		Foreground(styles.TextInverse).
		Background(styles.TealDeep).
		Padding(0, 1).
		Render(langTag)

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return util.TruncateWidth(left, h.Width)
	}

	filler := lipgloss.NewStyle().
		Background(styles.Teal).
		Render(spaces(gap))
	return left + filler + right
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}
