// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/brainsait/nphies-chat/internal/agui"
	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/commands"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/creds"
	"github.com/brainsait/nphies-chat/internal/history"
	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/model"
	"github.com/brainsait/nphies-chat/internal/session"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
)

// =============================================================================
// VIEW STATE
// =============================================================================

// view selects which surface the model renders.
type view int

const (
	viewLogin view = iota
	viewChat
)

// loginField tracks focus on the login form.
type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole client surface.
type Model struct {
	// Which surface renders
	view view

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Wiring
	gate      *session.Gate
	transport backend.ChatTransport
	store     creds.Store
	archive   *history.Archive // nil when the archive is disabled
	cfg       *config.Config

	// Conversation state
	conversation *model.Conversation
	dispatcher   *agui.Dispatcher
	lang         locale.Language

	// Login form
	usernameInput textinput.Model
	passwordInput textinput.Model
	focusedField  loginField
	loginErr      string
	loggingIn     bool

	// Chat surface
	viewport     viewport.Model
	input        textinput.Model
	spinner      spinner.Model
	isTyping     bool
	pendingImage string // file:// URI staged for the next send
	inputHint    string // transient inline hint under the input
	notice       string // transient status bar notice

	// Streaming
	stream *backend.Stream

	// Slash commands
	commands *commands.Registry

	// Markdown rendering
	markdown bool
	renderer *glamour.TermRenderer

	keyMap KeyMap
}

// New builds the model. The initial view follows the gate: a persisted
// token lands directly in the chat surface.
func New(cfg *config.Config, gate *session.Gate, transport backend.ChatTransport, store creds.Store, archive *history.Archive) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	input := textinput.New()
	input.Placeholder = "Ask about claims, eligibility, NPHIES..."
	input.CharLimit = cfg.Chat.MaxMessageLen

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.Amber)

	conv := model.NewConversation()
	dispatcher := agui.NewDispatcher(conv)
	dispatcher.OnSessionStart = gate.SetSessionID

	// The persisted preference wins over the configured default, but only
	// when the user actually picked one; a fresh store reports "".
	lang := cfg.Language()
	if stored, err := store.Language(); err == nil && stored != "" {
		lang = stored
	}
	dispatcher.ErrorFallback = locale.ErrorFallback(lang)

	m := Model{
		view:          viewLogin,
		theme:         styles.NewTheme(),
		gate:          gate,
		transport:     transport,
		store:         store,
		archive:       archive,
		cfg:           cfg,
		conversation:  conv,
		dispatcher:    dispatcher,
		lang:          lang,
		usernameInput: username,
		passwordInput: password,
		input:         input,
		spinner:       sp,
		commands:      commands.NewRegistry(),
		markdown:      cfg.UI.Markdown,
		keyMap:        DefaultKeyMap(),
	}

	gate.OnLogout(func() {
		conv.Clear()
		dispatcher.Reset()
	})

	if gate.State() == session.Authenticated {
		m.view = viewChat
		m.input.Focus()
	}

	return m
}

// Init starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// rebuildRenderer sizes the glamour renderer to the viewport width.
func (m *Model) rebuildRenderer() {
	if !m.markdown {
		m.renderer = nil
		return
	}
	wrap := m.width - 10
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = renderer
}

// renderMarkdown renders agent content, falling back to plain text.
func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
