// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"
)

func TestParsePlainMessage(t *testing.T) {
	r := NewRegistry()
	result := r.Parse("hello there")
	if result.IsCommand {
		t.Error("plain text should not parse as a command")
	}
}

func TestParseCommandWithArgs(t *testing.T) {
	r := NewRegistry()
	result := r.Parse("/image  ~/scans/claim form.png")
	if !result.IsCommand {
		t.Fatal("expected a command")
	}
	if result.Command == nil || result.Command.Name != "/image" {
		t.Fatalf("command = %+v", result.Command)
	}
	if result.RawArgs != "~/scans/claim form.png" {
		t.Errorf("raw args = %q", result.RawArgs)
	}
	if len(result.Args) != 2 {
		t.Errorf("args = %v", result.Args)
	}
}

func TestParseAlias(t *testing.T) {
	r := NewRegistry()
	result := r.Parse("/h")
	if result.Command == nil || result.Command.Name != "/help" {
		t.Errorf("alias /h should resolve to /help, got %+v", result.Command)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	r := NewRegistry()
	result := r.Parse("/frobnicate now")
	if !result.IsCommand {
		t.Fatal("slash input should parse as a command")
	}
	if result.Command != nil {
		t.Errorf("expected nil command, got %v", result.Command.Name)
	}
	if result.CommandName != "/frobnicate" {
		t.Errorf("command name = %q", result.CommandName)
	}
}

func TestCompletePrefix(t *testing.T) {
	r := NewRegistry()
	matches := r.Complete("/l")
	// /lang and /logout share the prefix
	if len(matches) != 2 {
		t.Fatalf("matches = %v", matches)
	}
	if matches[0] != "/lang" || matches[1] != "/logout" {
		t.Errorf("matches = %v", matches)
	}
}

func TestCompleteBareSlashListsAll(t *testing.T) {
	r := NewRegistry()
	matches := r.Complete("/")
	if len(matches) != len(r.All()) {
		t.Errorf("expected %d matches, got %v", len(r.All()), matches)
	}
}

func TestCompleteOne(t *testing.T) {
	r := NewRegistry()
	if got := r.CompleteOne("/sa"); got != "/save " {
		t.Errorf("CompleteOne(/sa) = %q", got)
	}
	if got := r.CompleteOne("/l"); got != "" {
		t.Errorf("ambiguous prefix should not complete, got %q", got)
	}
	if got := r.CompleteOne("hello"); got != "" {
		t.Errorf("non-command should not complete, got %q", got)
	}
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	r := NewRegistry()
	help := r.HelpText()
	for _, cmd := range r.All() {
		if !strings.Contains(help, cmd.Name) {
			t.Errorf("help text missing %s", cmd.Name)
		}
	}
}
