// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/picker"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleCommand parses and runs a slash command from the input bar.
func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	result := m.commands.Parse(text)
	m.input.SetValue("")
	m.inputHint = ""

	if result.Command == nil {
		m.inputHint = fmt.Sprintf("unknown command %s, try /help", result.CommandName)
		return m, nil
	}

	switch result.Command.Name {
	case "/help":
		m.conversation.AppendSystem(m.commands.HelpText())
		m.updateViewport()
		return m, nil

	case "/lang":
		return m.toggleLanguage()

	case "/image":
		return m.attachImage(result.RawArgs)

	case "/save":
		return m.saveTranscript()

	case "/export":
		path := ""
		if len(result.Args) > 0 {
			path = result.Args[0]
		}
		return m.exportTranscript(path)

	case "/clear":
		// Keeps the session id: the next message continues the same
		// server-side session with a clean screen.
		m.conversation.Clear()
		m.updateViewport()
		return m, nil

	case "/logout":
		m.gate.Logout()
		m.view = viewLogin
		m.loginErr = ""
		m.isTyping = false
		m.stream = nil
		m.pendingImage = ""
		m.focusedField = fieldUsername
		m.usernameInput.Focus()
		m.passwordInput.Blur()
		return m, nil
	}

	return m, nil
}

// toggleLanguage flips the display language and persists the flag.
func (m Model) toggleLanguage() (tea.Model, tea.Cmd) {
	m.lang = m.lang.Toggle()
	m.dispatcher.ErrorFallback = locale.ErrorFallback(m.lang)
	if err := m.store.SetLanguage(m.lang); err != nil {
		m.notice = "could not persist language: " + err.Error()
		return m, expireNotice()
	}

	if m.lang.IsArabic() {
		m.notice = "العربية"
	} else {
		m.notice = "English"
	}
	m.updateViewport()
	return m, expireNotice()
}

// attachImage stages an image for the next send.
func (m Model) attachImage(path string) (tea.Model, tea.Cmd) {
	uri, err := picker.PickPath(path)
	if err != nil {
		m.inputHint = err.Error()
		return m, nil
	}
	m.pendingImage = uri
	m.notice = "image attached"
	return m, expireNotice()
}

// saveTranscript archives the conversation to the SQLite archive.
func (m Model) saveTranscript() (tea.Model, tea.Cmd) {
	if m.archive == nil {
		m.inputHint = "history archive is disabled"
		return m, nil
	}
	if err := m.archive.Save(m.conversation); err != nil {
		m.notice = "save failed: " + err.Error()
		return m, expireNotice()
	}
	m.notice = "transcript saved"
	return m, expireNotice()
}
