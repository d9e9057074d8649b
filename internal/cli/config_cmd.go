// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set a configuration value
//   path                Show configuration file path
//
// Configuration Keys:
//   backend.url           Backend base URL
//   backend.transport     "sse" or "websocket"
//   backend.rpm           Chat requests per minute (0 disables limiting)
//   chat.language         Display language ("en" or "ar")
//   ui.theme              "dark" or "light"
//   ui.markdown           Render agent replies as markdown (true/false)
//   ui.show_timestamps    Show message timestamps (true/false)
//   history.enabled       Transcript archive (true/false)

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) int {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		if len(args.Raw) < 2 {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: nphies-chat config set <key> <value>"))
			return 1
		}
		return configSet(args.Raw[0], args.Raw[1])
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(path)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand %q\n", args.Subcommand)
		return 1
	}
}

func configShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	fmt.Printf("backend.url         %s\n", cfg.Backend.URL)
	fmt.Printf("backend.transport   %s\n", cfg.Backend.Transport)
	fmt.Printf("backend.rpm         %d\n", cfg.Backend.RequestsPerMinute)
	fmt.Printf("chat.language       %s\n", cfg.Chat.Language)
	fmt.Printf("chat.max_length     %d\n", cfg.Chat.MaxMessageLen)
	fmt.Printf("ui.theme            %s\n", cfg.UI.Theme)
	fmt.Printf("ui.markdown         %t\n", cfg.UI.Markdown)
	fmt.Printf("ui.show_timestamps  %t\n", cfg.UI.ShowTimestamps)
	fmt.Printf("history.enabled     %t\n", cfg.History.Enabled)
	return 0
}

func configSet(key, value string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	if err := applyConfigKey(cfg, key, value); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(fmt.Sprintf("save config: %v", err)))
		return 1
	}

	fmt.Println(styles.RenderSuccess(fmt.Sprintf("%s = %s", key, value)))
	return 0
}

func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "backend.url":
		cfg.Backend.URL = value
	case "backend.transport":
		cfg.Backend.Transport = value
	case "backend.rpm":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants a number, got %q", key, value)
		}
		cfg.Backend.RequestsPerMinute = n
	case "chat.language":
		cfg.Chat.Language = value
	case "chat.max_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants a number, got %q", key, value)
		}
		cfg.Chat.MaxMessageLen = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.markdown", "ui.show_timestamps", "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		switch key {
		case "ui.markdown":
			cfg.UI.Markdown = b
		case "ui.show_timestamps":
			cfg.UI.ShowTimestamps = b
		case "history.enabled":
			cfg.History.Enabled = b
		}
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
