// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend health probe command handler.
//
// Command: status
// Short:   Probe backend health and show sign-in state

package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/brainsait/nphies-chat/internal/session"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
)

// HandleStatus probes the backend /health endpoint and reports the sign-in
// state alongside it.
func HandleStatus(args Args) int {
	e, err := loadEnv(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	fmt.Printf("Backend:  %s\n", e.client.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ConnectTimeout())
	defer cancel()

	health, err := e.client.Health(ctx)
	if err != nil {
		fmt.Println(styles.RenderError(fmt.Sprintf("unreachable: %v", err)))
		return 1
	}

	if health.Status == "ok" || health.Status == "healthy" {
		fmt.Println(styles.RenderSuccess(fmt.Sprintf("backend %s (version %s)", health.Status, health.Version)))
	} else {
		fmt.Println(styles.RenderWarning(fmt.Sprintf("backend %s (version %s)", health.Status, health.Version)))
	}

	if len(health.Services) > 0 {
		names := make([]string, 0, len(health.Services))
		for name := range health.Services {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			state := health.Services[name]
			line := fmt.Sprintf("  %s: %s", name, state)
			if state == "ok" || state == "up" {
				fmt.Println(styles.RenderSuccess(line))
			} else {
				fmt.Println(styles.RenderWarning(line))
			}
		}
	}

	if e.gate.State() == session.Authenticated {
		fmt.Println(styles.RenderSuccess("signed in"))
	} else {
		fmt.Println(styles.RenderInfo("not signed in, run: nphies-chat login"))
	}
	return 0
}
