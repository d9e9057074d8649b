// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdAsk
	CmdStatus
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Query is the message for the ask command.
	Query string

	// Subcommand for history and config (list, show, search, set...).
	Subcommand string

	// Language override ("en" or "ar") from --lang.
	Language string

	// Image path from --image, for ask.
	Image string

	// Raw holds remaining positional arguments.
	Raw []string
}

const usageText = `nphies-chat - terminal client for the BrainSAIT NPHIES-AI assistant

Usage:
  nphies-chat                      Start the chat TUI (default)
  nphies-chat login                Sign in and store a token
  nphies-chat logout               Clear the stored token
  nphies-chat ask "question"       Ask one question and print the reply
  nphies-chat status               Probe backend health
  nphies-chat history [list|search|show|delete] Transcript archive
  nphies-chat config [show|set]    Configuration
  nphies-chat version              Show version
  nphies-chat help                 Show this help

Flags:
  --lang en|ar      Override the display language for this run
  --image <path>    Attach an image (ask command)

Environment:
  NPHIES_API_URL    Backend base URL (default http://localhost:8000)
  NPHIES_LANGUAGE   Display language flag
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	var args Args
	var positional []string

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--lang" && i+1 < len(argv):
			i++
			args.Language = argv[i]
		case strings.HasPrefix(arg, "--lang="):
			args.Language = strings.TrimPrefix(arg, "--lang=")
		case arg == "--image" && i+1 < len(argv):
			i++
			args.Image = argv[i]
		case strings.HasPrefix(arg, "--image="):
			args.Image = strings.TrimPrefix(arg, "--image=")
		case arg == "--help" || arg == "-h":
			return CmdHelp, args
		case arg == "--version":
			return CmdVersion, args
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	args.Raw = rest

	switch cmd {
	case "login":
		return CmdLogin, args
	case "logout":
		return CmdLogout, args
	case "ask":
		args.Query = strings.Join(rest, " ")
		return CmdAsk, args
	case "status", "s":
		return CmdStatus, args
	case "history":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
			args.Raw = rest[1:]
		}
		return CmdHistory, args
	case "config":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
			args.Raw = rest[1:]
		}
		return CmdConfig, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		return CmdHelp, args
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("nphies-chat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
