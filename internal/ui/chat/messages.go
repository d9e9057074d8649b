// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brainsait/nphies-chat/internal/agui"
	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/session"
)

// =============================================================================
// TEA MESSAGES
// =============================================================================

// loginResultMsg reports the credential exchange outcome.
type loginResultMsg struct {
	err error
}

// streamStartedMsg carries an accepted chat stream.
type streamStartedMsg struct {
	stream *backend.Stream
}

// streamFailedMsg reports a send that was rejected before streaming.
type streamFailedMsg struct {
	err error
}

// streamEventMsg carries one parsed event from the active stream.
type streamEventMsg struct {
	event agui.Event
}

// streamClosedMsg reports the end of the active stream.
type streamClosedMsg struct {
	err error
}

// noticeExpiredMsg clears a transient status bar notice.
type noticeExpiredMsg struct{}

// ConfigReloadedMsg delivers a reloaded configuration from the file watcher.
// Exported because main owns the watcher and the Bubble Tea program.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// loginTimeout bounds the credential exchange.
const loginTimeout = 15 * time.Second

// loginCmd runs the credential exchange off the update loop.
func loginCmd(gate *session.Gate, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		return loginResultMsg{err: gate.Login(ctx, username, password)}
	}
}

// sendCmd issues the chat request. The stream itself is unbounded; the
// context here lives for the whole reply and is cancelled by quitting.
func sendCmd(transport backend.ChatTransport, token string, req backend.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		stream, err := transport.Chat(context.Background(), token, req)
		if err != nil {
			return streamFailedMsg{err: err}
		}
		return streamStartedMsg{stream: stream}
	}
}

// waitForEvent pulls the next event off the active stream. Re-issued
// after every streamEventMsg, the standard channel-to-tea bridge.
func waitForEvent(stream *backend.Stream) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-stream.Events()
		if !ok {
			return streamClosedMsg{err: stream.Err()}
		}
		return streamEventMsg{event: ev}
	}
}

// expireNotice clears the status notice after a short delay.
func expireNotice() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}
