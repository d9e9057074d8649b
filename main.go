// nphies-chat - Terminal client for the BrainSAIT NPHIES-AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/cli"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/creds"
	"github.com/brainsait/nphies-chat/internal/history"
	"github.com/brainsait/nphies-chat/internal/session"
	"github.com/brainsait/nphies-chat/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		os.Exit(cli.HandleLogin(args))
	case cli.CmdLogout:
		os.Exit(cli.HandleLogout(args))
	case cli.CmdAsk:
		os.Exit(cli.HandleAsk(args))
	case cli.CmdStatus:
		os.Exit(cli.HandleStatus(args))
	case cli.CmdHistory:
		os.Exit(cli.HandleHistory(args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// runTUI starts the full-screen chat interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if args.Language != "" {
		cfg.Chat.Language = args.Language
	}

	// Bubble Tea owns the terminal, so log lines go to a file instead.
	if logFile := openLogFile(); logFile != nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	store, err := creds.NewFileStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening credential store: %v\n", err)
		os.Exit(1)
	}

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:           cfg.Backend.URL,
		Timeout:           cfg.ConnectTimeout(),
		RequestsPerMinute: cfg.Backend.RequestsPerMinute,
	})

	var transport backend.ChatTransport = client
	if cfg.Backend.Transport == "websocket" {
		transport = backend.NewWSTransport(cfg.Backend.URL, cfg.ConnectTimeout())
	}

	gate := session.NewGate(store, client)

	var archive *history.Archive
	if cfg.History.Enabled {
		if path, err := cfg.HistoryPath(); err == nil {
			archive, err = history.Open(path)
			if err != nil {
				log.Printf("history archive unavailable: %v", err)
				archive = nil
			}
		}
	}
	if archive != nil {
		defer archive.Close()
	}

	m := chat.New(cfg, gate, transport, store, archive)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	// Live-reload config edits while the TUI runs. Backend and transport
	// stay as constructed; display settings take effect on the next frame.
	if path, err := config.ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
				p.Send(chat.ConfigReloadedMsg{Config: updated})
			})
			if werr == nil {
				if err := watcher.Watch(); err == nil {
					defer watcher.Close()
				}
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running nphies-chat: %v\n", err)
		os.Exit(1)
	}
}

// openLogFile opens ~/.nphies-chat/nphies-chat.log for append.
func openLogFile() *os.File {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "nphies-chat.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}
	return f
}
