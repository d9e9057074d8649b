// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/brainsait/nphies-chat/internal/creds"
)

// fakeAuth returns a canned token or error.
type fakeAuth struct {
	token string
	err   error
	calls int
}

func (f *fakeAuth) Authenticate(_ context.Context, username, password string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func TestGateStartsUnauthenticated(t *testing.T) {
	gate := NewGate(creds.NewMemoryStore(), &fakeAuth{})
	if gate.State() != Unauthenticated {
		t.Errorf("expected unauthenticated, got %v", gate.State())
	}
}

func TestGateSkipsLoginWithPersistedToken(t *testing.T) {
	store := creds.NewMemoryStore()
	if err := store.SetToken("tok-persisted"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	gate := NewGate(store, &fakeAuth{})
	if gate.State() != Authenticated {
		t.Errorf("expected authenticated from persisted token, got %v", gate.State())
	}
}

func TestGateLoginSuccess(t *testing.T) {
	store := creds.NewMemoryStore()
	gate := NewGate(store, &fakeAuth{token: "tok-new"})

	if err := gate.Login(context.Background(), "demo", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gate.State() != Authenticated {
		t.Errorf("expected authenticated after login, got %v", gate.State())
	}

	token, _ := store.Token()
	if token != "tok-new" {
		t.Errorf("expected token persisted, got %q", token)
	}
}

func TestGateLoginFailureStaysUnauthenticated(t *testing.T) {
	authErr := errors.New("invalid credentials")
	gate := NewGate(creds.NewMemoryStore(), &fakeAuth{err: authErr})

	err := gate.Login(context.Background(), "demo", "wrong")
	if !errors.Is(err, authErr) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if gate.State() != Unauthenticated {
		t.Errorf("expected unauthenticated after failed login, got %v", gate.State())
	}
}

func TestGateLoginEmptyCredentials(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	gate := NewGate(creds.NewMemoryStore(), auth)

	cases := []struct{ user, pass string }{
		{"", "secret"},
		{"demo", ""},
		{"   ", "secret"},
	}
	for _, tc := range cases {
		if err := gate.Login(context.Background(), tc.user, tc.pass); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("Login(%q, %q): expected ErrEmptyCredentials, got %v", tc.user, tc.pass, err)
		}
	}
	if auth.calls != 0 {
		t.Errorf("expected no backend calls for empty credentials, got %d", auth.calls)
	}
}

func TestGateLogoutClearsEverything(t *testing.T) {
	store := creds.NewMemoryStore()
	gate := NewGate(store, &fakeAuth{token: "tok"})
	if err := gate.Login(context.Background(), "demo", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	gate.SetSessionID("sess-123")

	conversationCleared := false
	gate.OnLogout(func() { conversationCleared = true })

	if err := gate.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if gate.State() != Unauthenticated {
		t.Errorf("expected unauthenticated after logout, got %v", gate.State())
	}
	if gate.SessionID() != "" {
		t.Errorf("expected cleared session id, got %q", gate.SessionID())
	}
	if token, _ := store.Token(); token != "" {
		t.Errorf("expected cleared token, got %q", token)
	}
	if !conversationCleared {
		t.Error("expected logout callback to fire")
	}
}

func TestGateTokenRecheck(t *testing.T) {
	store := creds.NewMemoryStore()
	gate := NewGate(store, &fakeAuth{token: "tok"})
	if err := gate.Login(context.Background(), "demo", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	token, err := gate.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "tok" {
		t.Errorf("expected tok, got %q", token)
	}

	// A token cleared out-of-band demotes the gate before the send.
	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken failed: %v", err)
	}
	if _, err := gate.Token(); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if gate.State() != Unauthenticated {
		t.Errorf("expected demotion to unauthenticated, got %v", gate.State())
	}
}
