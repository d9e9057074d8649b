// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands defines the slash commands of the chat screen: their
// names, aliases, and help text, plus parsing and tab completion. Execution
// stays in the UI layer; this package only describes and resolves commands.
package commands

import (
	"fmt"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command describes one slash command.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/image <path>")
	Usage string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the registered commands in registration order.
type Registry struct {
	ordered []*Command
	byName  map[string]*Command
}

// NewRegistry returns a registry with the chat screen's built-in commands.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Command)}

	r.Register(&Command{
		Name:        "/lang",
		Description: "toggle display language (English / Arabic)",
		Usage:       "/lang",
	})
	r.Register(&Command{
		Name:        "/image",
		Description: "attach an image to the next message",
		Usage:       "/image <path>",
	})
	r.Register(&Command{
		Name:        "/save",
		Description: "archive this conversation",
		Usage:       "/save",
	})
	r.Register(&Command{
		Name:        "/export",
		Description: "write the transcript to a file (.md, .html, .json)",
		Usage:       "/export [path]",
	})
	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/cls"},
		Description: "clear the conversation display",
		Usage:       "/clear",
	})
	r.Register(&Command{
		Name:        "/logout",
		Description: "sign out and clear the stored token",
		Usage:       "/logout",
	})
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "show this help",
		Usage:       "/help",
	})

	return r
}

// Register adds a command and indexes its name and aliases.
func (r *Registry) Register(cmd *Command) {
	r.ordered = append(r.ordered, cmd)
	r.byName[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.byName[alias] = cmd
	}
}

// Get resolves a command by name or alias. Returns nil when unknown.
func (r *Registry) Get(name string) *Command {
	return r.byName[name]
}

// All returns the commands in registration order.
func (r *Registry) All() []*Command {
	return r.ordered
}

// HelpText renders the command list for the /help output.
func (r *Registry) HelpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, cmd := range r.ordered {
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", cmd.Usage, cmd.Description))
	}
	return strings.TrimRight(sb.String(), "\n")
}
