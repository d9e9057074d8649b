// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing input-bar text.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name as typed (e.g., "/h")
	CommandName string

	// Args are the whitespace-split arguments
	Args []string

	// RawArgs is the unparsed arguments portion, whitespace preserved
	RawArgs string
}

// =============================================================================
// PARSER
// =============================================================================

// Parse parses input-bar text against the registry. Plain messages return
// IsCommand=false; a leading slash with an unknown name returns
// IsCommand=true with a nil Command.
func (r *Registry) Parse(input string) ParseResult {
	trimmed := strings.TrimSpace(input)
	result := ParseResult{}

	if !strings.HasPrefix(trimmed, "/") {
		return result
	}
	result.IsCommand = true

	name, rawArgs, _ := strings.Cut(trimmed, " ")
	result.CommandName = name
	result.RawArgs = strings.TrimSpace(rawArgs)
	if result.RawArgs != "" {
		result.Args = strings.Fields(result.RawArgs)
	}
	result.Command = r.Get(name)
	return result
}
