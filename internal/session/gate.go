// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/brainsait/nphies-chat/internal/creds"
)

// =============================================================================
// STATE
// =============================================================================

// State is the authentication state of the client.
type State int

const (
	// Unauthenticated means no valid token is held; the login form shows.
	Unauthenticated State = iota

	// Authenticated means a bearer token is held; the chat surface shows.
	Authenticated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrNotAuthenticated is returned when a send is attempted without a
// stored token.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrEmptyCredentials is returned when login is attempted with a blank
// username or password.
var ErrEmptyCredentials = errors.New("username and password are required")

// Authenticator exchanges credentials for a bearer token. The backend
// client implements it against POST /auth/token.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (token string, err error)
}

// =============================================================================
// GATE
// =============================================================================

// Gate tracks the authentication state and the server session id.
type Gate struct {
	mu sync.Mutex

	store creds.Store
	auth  Authenticator

	state     State
	sessionID string

	// onLogout resets conversation state owned by the caller.
	onLogout func()
}

// NewGate creates a gate over the given credential store and
// authenticator. The initial state reflects whether a token is already
// persisted.
func NewGate(store creds.Store, auth Authenticator) *Gate {
	g := &Gate{
		store: store,
		auth:  auth,
		state: Unauthenticated,
	}
	if token, err := store.Token(); err == nil && token != "" {
		g.state = Authenticated
	}
	return g
}

// OnLogout registers a callback invoked after logout clears the token and
// session id. The chat model uses it to drop the conversation.
func (g *Gate) OnLogout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = fn
}

// State returns the current authentication state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SessionID returns the server-assigned session id, or "" before the
// first session_start event.
func (g *Gate) SessionID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionID
}

// SetSessionID records the server-assigned session id. The dispatcher
// calls it from its session_start hook.
func (g *Gate) SetSessionID(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionID = id
}

// Login exchanges credentials for a token and persists it. On failure the
// state stays Unauthenticated and the error carries the backend detail
// for inline display.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	token, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.SetToken(token); err != nil {
		return err
	}
	g.state = Authenticated
	return nil
}

// Logout clears the stored token, the server session id, and (via the
// registered callback) the conversation, then returns to Unauthenticated.
func (g *Gate) Logout() error {
	g.mu.Lock()
	err := g.store.ClearToken()
	g.state = Unauthenticated
	g.sessionID = ""
	fn := g.onLogout
	g.mu.Unlock()

	if fn != nil {
		fn()
	}
	return err
}

// Token re-checks the credential store and returns the current bearer
// token. Called before every send: a cleared token file demotes the gate
// back to Unauthenticated even if the in-memory state said otherwise.
func (g *Gate) Token() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	token, err := g.store.Token()
	if err != nil {
		return "", err
	}
	if token == "" {
		g.state = Unauthenticated
		return "", ErrNotAuthenticated
	}
	g.state = Authenticated
	return token, nil
}
