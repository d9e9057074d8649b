// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brainsait/nphies-chat/internal/agui"
	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/model"
	"github.com/brainsait/nphies-chat/internal/session"
)

// Update is the Bubble Tea update loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.rebuildRenderer()
		m.updateViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case streamStartedMsg:
		m.stream = msg.stream
		return m, waitForEvent(msg.stream)

	case streamFailedMsg:
		return m.handleStreamFailed(msg.err)

	case streamEventMsg:
		m.dispatcher.Dispatch(msg.event)
		m.updateViewport()
		if m.stream != nil {
			return m, waitForEvent(m.stream)
		}
		return m, nil

	case streamClosedMsg:
		return m.handleStreamClosed(msg.err)

	case noticeExpiredMsg:
		m.notice = ""
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg.Config)

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		if m.view == viewLogin {
			return m.updateLogin(msg)
		}
		return m.updateChat(msg)
	}

	return m, nil
}

// resize lays out the viewport and inputs for the current window.
func (m *Model) resize() {
	inputWidth := m.width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.usernameInput.Width = min(inputWidth, 40)
	m.passwordInput.Width = min(inputWidth, 40)

	// Header, status bar, input bar and its border.
	viewportHeight := m.height - 5
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = viewportHeight
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// LOGIN VIEW
// =============================================================================

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Tab):
		m.toggleLoginFocus()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if m.loggingIn {
			return m, nil
		}
		username := strings.TrimSpace(m.usernameInput.Value())
		password := m.passwordInput.Value()
		if username == "" || password == "" {
			m.loginErr = locale.LoginFailed(m.lang)
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, loginCmd(m.gate, username, password)
	}

	var cmd tea.Cmd
	if m.focusedField == fieldUsername {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleLoginFocus() {
	if m.focusedField == fieldUsername {
		m.focusedField = fieldPassword
		m.usernameInput.Blur()
		m.passwordInput.Focus()
	} else {
		m.focusedField = fieldUsername
		m.passwordInput.Blur()
		m.usernameInput.Focus()
	}
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		// The backend detail shows inline; the form stays filled so the
		// user can correct one field.
		m.loginErr = msg.err.Error()
		if errors.Is(msg.err, session.ErrEmptyCredentials) {
			m.loginErr = locale.LoginFailed(m.lang)
		}
		return m, nil
	}

	m.view = viewChat
	m.loginErr = ""
	m.passwordInput.SetValue("")
	m.input.Focus()
	m.updateViewport()
	return m, nil
}

// =============================================================================
// CHAT VIEW
// =============================================================================

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSend()

	case key.Matches(msg, m.keyMap.Tab):
		return m.completeCommand()

	case key.Matches(msg, m.keyMap.Up), key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.inputHint = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// completeCommand expands a slash command prefix. A unique match completes
// in place; multiple matches show as a hint.
func (m Model) completeCommand() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	if !strings.HasPrefix(value, "/") {
		return m, nil
	}

	if completed := m.commands.CompleteOne(value); completed != "" {
		m.input.SetValue(completed)
		m.input.CursorEnd()
		return m, nil
	}

	if matches := m.commands.Complete(value); len(matches) > 1 {
		m.inputHint = strings.Join(matches, "  ")
	}
	return m, nil
}

// handleSend runs the send path: validate, re-check the token, append
// the user message optimistically, surface a local thinking placeholder,
// then issue the request.
func (m Model) handleSend() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	if strings.HasPrefix(text, "/") {
		return m.handleCommand(text)
	}

	// A message needs text or an image; an empty send is ignored outright,
	// with no notice and no state change.
	if text == "" && m.pendingImage == "" {
		return m, nil
	}

	if m.isTyping {
		m.inputHint = "waiting for the agent to finish"
		return m, nil
	}

	// The stored token is the source of truth; a cleared credential file
	// drops the surface back to the login form before anything is sent.
	token, err := m.gate.Token()
	if err != nil {
		m.view = viewLogin
		m.loginErr = locale.AuthRequired(m.lang)
		m.focusedField = fieldUsername
		m.usernameInput.Focus()
		m.passwordInput.Blur()
		return m, nil
	}

	userMsg := m.conversation.AppendUser(text)
	userMsg.AttachedImage = m.pendingImage

	// The placeholder is synthesized locally so feedback is immediate
	// even before the backend's own thinking event arrives.
	m.dispatcher.Dispatch(agui.NewThinkingEvent(
		locale.Thinking(locale.English),
		locale.ThinkingLocalized(),
	))

	req := backend.ChatRequest{
		Message:   text,
		Language:  m.lang.String(),
		SessionID: m.gate.SessionID(),
		ImageURI:  m.pendingImage,
	}

	m.input.SetValue("")
	m.pendingImage = ""
	m.inputHint = ""
	m.isTyping = true
	m.updateViewport()

	return m, sendCmd(m.transport, token, req)
}

// handleConfigReloaded applies display settings from a config file edit.
// The backend client and transport keep their startup values; changing
// those takes a restart.
func (m Model) handleConfigReloaded(cfg *config.Config) (tea.Model, tea.Cmd) {
	if cfg == nil {
		return m, nil
	}
	m.cfg = cfg
	m.markdown = cfg.UI.Markdown
	m.rebuildRenderer()
	m.updateViewport()
	m.notice = "config reloaded"
	return m, expireNotice()
}

// handleStreamFailed handles a send rejected before any event arrived.
// Auth rejections are not distinguished from other transport failures: the
// stored token and the transcript stay put, and the next send re-checks the
// store as usual.
func (m Model) handleStreamFailed(err error) (tea.Model, tea.Cmd) {
	m.isTyping = false
	m.stream = nil

	// The local thinking placeholder becomes the error notice; the anchor
	// is cleared either way so the next send starts from a clean slate.
	notice := locale.NetworkError(m.lang) + " (" + err.Error() + ")"
	patched := false
	if id := m.dispatcher.ActiveID(); id != "" {
		patched = m.conversation.Patch(id, func(msg *model.Message) {
			msg.Role = model.RoleSystem
			msg.Content = notice
			msg.LocalizedContent = ""
		})
	}
	if !patched {
		m.conversation.AppendSystem(notice)
	}
	m.dispatcher.ClearActive()
	m.updateViewport()
	return m, nil
}

// handleStreamClosed clears the typing flag whatever ended the stream. The
// active message id is dropped too: a stream that died before its final
// chunk must not leave an anchor for the next send's events.
func (m Model) handleStreamClosed(err error) (tea.Model, tea.Cmd) {
	m.isTyping = false
	m.stream = nil
	m.dispatcher.ClearActive()

	if err != nil {
		m.conversation.AppendSystem(locale.NetworkError(m.lang) + " (" + err.Error() + ")")
	}
	m.updateViewport()
	return m, nil
}
