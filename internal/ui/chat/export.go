// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brainsait/nphies-chat/internal/export"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// exportTranscript writes the conversation to a file. The format follows
// the path extension (.md, .html, .json); an empty path picks a timestamped
// markdown name in the working directory.
func (m Model) exportTranscript(path string) (tea.Model, tea.Cmd) {
	if m.conversation.IsEmpty() {
		m.inputHint = "nothing to export"
		return m, nil
	}

	opts := export.DefaultOptions()
	opts.Arabic = m.lang.IsArabic()
	opts.IncludeTimestamps = m.cfg.UI.ShowTimestamps

	written, err := export.WriteFile(m.conversation, path, opts)
	if err != nil {
		m.notice = "export failed: " + err.Error()
		return m, expireNotice()
	}

	m.notice = "exported to " + written
	return m, expireNotice()
}
