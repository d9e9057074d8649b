// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/creds"
	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/session"
)

// =============================================================================
// SHARED WIRING
// =============================================================================

// env holds the pieces every CLI command needs: loaded configuration, the
// credential store, the backend client, and the session gate on top of them.
type env struct {
	cfg    *config.Config
	store  *creds.FileStore
	client *backend.Client
	gate   *session.Gate
	lang   locale.Language
}

// loadEnv loads configuration, applies environment overrides, and wires the
// store, client, and gate. Command-line --lang wins over stored language,
// which wins over the configured default.
func loadEnv(args Args) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := creds.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:           cfg.Backend.URL,
		Timeout:           cfg.ConnectTimeout(),
		RequestsPerMinute: cfg.Backend.RequestsPerMinute,
	})

	lang := cfg.Language()
	if stored, err := store.Language(); err == nil && stored != "" {
		lang = stored
	}
	if args.Language != "" {
		lang = locale.Parse(args.Language)
	}

	return &env{
		cfg:    cfg,
		store:  store,
		client: client,
		gate:   session.NewGate(store, client),
		lang:   lang,
	}, nil
}
