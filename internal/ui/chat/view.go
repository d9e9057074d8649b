// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brainsait/nphies-chat/internal/model"
	"github.com/brainsait/nphies-chat/internal/ui/components"
)

// View renders the active surface.
func (m Model) View() string {
	if m.view == viewLogin {
		return m.renderLogin()
	}
	return m.renderChat()
}

// =============================================================================
// LOGIN VIEW
// =============================================================================

func (m Model) renderLogin() string {
	var sb strings.Builder

	sb.WriteString(m.theme.FormTitle.Render("BrainSAIT NPHIES-AI"))
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.FormLabel.Render("Username"))
	sb.WriteString("\n")
	sb.WriteString(m.usernameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.FormLabel.Render("Password"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.loggingIn {
		sb.WriteString(m.theme.FormHint.Render(m.spinner.View() + " signing in"))
	} else if m.loginErr != "" {
		sb.WriteString(m.theme.FormError.Render(m.loginErr))
	} else {
		sb.WriteString(m.theme.FormHint.Render("tab to switch fields, enter to sign in"))
	}

	form := lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}

// =============================================================================
// CHAT VIEW
// =============================================================================

func (m Model) renderChat() string {
	header := components.Header{Width: m.width, Language: m.lang}.Render()

	status := components.StatusBar{
		Width:     m.width,
		SessionID: m.gate.SessionID(),
		Transport: m.cfg.Backend.Transport,
		Typing:    m.isTyping,
		Spinner:   m.spinner.View(),
		Notice:    m.notice,
	}.Render()

	inputLine := m.theme.InputBar.Width(m.width).Render(m.input.View())
	if m.pendingImage != "" {
		inputLine += "\n" + m.theme.Muted.Render("attached: "+m.pendingImage)
	}
	if m.inputHint != "" {
		inputLine += "\n" + m.theme.Muted.Render(m.inputHint)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		inputLine,
		status,
	)
}

// updateViewport re-renders the transcript and pins to the bottom.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// renderMessages renders the full transcript.
func (m *Model) renderMessages() string {
	msgs := m.conversation.History()
	if len(msgs) == 0 {
		return m.theme.Muted.Render("\n  Ask about claims, eligibility, or NPHIES submissions.\n")
	}

	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString(m.renderMessage(msg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderMessage renders one message bubble with its sender label.
func (m *Model) renderMessage(msg *model.Message) string {
	content := msg.DisplayContent(m.lang.IsArabic())

	maxWidth := m.width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}

	var label, bubble string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
		bubble = m.theme.UserBubble.MaxWidth(maxWidth).Render(content)
	case model.RoleAgent:
		if m.markdown {
			content = strings.TrimRight(m.renderMarkdown(content), "\n")
		}
		label = m.theme.AgentLabel.Render(msg.Role.DisplayName())
		bubble = m.theme.AgentBubble.MaxWidth(maxWidth).Render(content)
	default:
		label = m.theme.SystemLabel.Render(msg.Role.DisplayName())
		bubble = m.theme.SystemBubble.MaxWidth(maxWidth).Render(content)
	}

	parts := []string{label, bubble}
	if msg.HasImage() {
		parts = append(parts, m.theme.Muted.Render("attachment: "+msg.AttachedImage))
	}
	if m.cfg.UI.ShowTimestamps {
		parts = append(parts, m.theme.Timestamp.Render(msg.Timestamp.Format("15:04")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
