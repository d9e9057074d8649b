// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brainsait/nphies-chat/internal/locale"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("unexpected default backend URL: %q", cfg.Backend.URL)
	}
	if cfg.Backend.Transport != "sse" {
		t.Errorf("unexpected default transport: %q", cfg.Backend.Transport)
	}
	if cfg.Language() != locale.English {
		t.Errorf("unexpected default language: %q", cfg.Language())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = "1"

[backend]
url = "https://api.brainsait.example"
transport = "websocket"

[chat]
language = "ar"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Backend.URL != "https://api.brainsait.example" {
		t.Errorf("unexpected URL: %q", cfg.Backend.URL)
	}
	if cfg.Backend.Transport != "websocket" {
		t.Errorf("unexpected transport: %q", cfg.Backend.Transport)
	}
	if cfg.Language() != locale.Arabic {
		t.Errorf("unexpected language: %q", cfg.Language())
	}
	// Unset fields fall back to defaults.
	if cfg.Backend.ConnectTimeoutSecs != 10 {
		t.Errorf("expected default connect timeout, got %d", cfg.Backend.ConnectTimeoutSecs)
	}
}

func TestLoadFromPathJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"backend": {"url": "http://10.0.0.5:8000"}, "chat": {"language": "en"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Backend.URL != "http://10.0.0.5:8000" {
		t.Errorf("unexpected URL: %q", cfg.Backend.URL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.Backend.URL = "not a url" }},
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://host" }},
		{"bad transport", func(c *Config) { c.Backend.Transport = "carrier-pigeon" }},
		{"bad language", func(c *Config) { c.Chat.Language = "fr" }},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }},
		{"negative rpm", func(c *Config) { c.Backend.RequestsPerMinute = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NPHIES_API_URL", "https://env.example:9000")
	t.Setenv("NPHIES_LANGUAGE", "ar")
	t.Setenv("NPHIES_RPM", "30")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Backend.URL != "https://env.example:9000" {
		t.Errorf("env URL override not applied: %q", cfg.Backend.URL)
	}
	if cfg.Language() != locale.Arabic {
		t.Errorf("env language override not applied: %q", cfg.Language())
	}
	if cfg.Backend.RequestsPerMinute != 30 {
		t.Errorf("env rpm override not applied: %d", cfg.Backend.RequestsPerMinute)
	}
}

func TestSaveAndReloadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Chat.Language = "ar"
	cfg.Backend.URL = "https://saved.example"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Chat.Language != "ar" {
		t.Errorf("language did not round-trip: %q", loaded.Chat.Language)
	}
	if loaded.Backend.URL != "https://saved.example" {
		t.Errorf("URL did not round-trip: %q", loaded.Backend.URL)
	}
}

func TestHistoryPathDefault(t *testing.T) {
	cfg := Default()
	cfg.History.Path = "/tmp/custom.db"

	path, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath failed: %v", err)
	}
	if path != "/tmp/custom.db" {
		t.Errorf("expected explicit path, got %q", path)
	}
}
