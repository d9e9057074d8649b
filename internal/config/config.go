// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete nphies-chat configuration.
type Config struct {
	// Version of the config schema
	Version string `toml:"version" json:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Chat behavior configuration
	Chat ChatConfig `toml:"chat" json:"chat"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History archive configuration
	History HistoryConfig `toml:"history" json:"history"`
}

// BackendConfig contains NPHIES-AI backend connection settings.
type BackendConfig struct {
	// URL is the base URL of the backend (scheme://host[:port])
	URL string `toml:"url" json:"url"`
	// Transport selects the chat transport: "sse" or "websocket"
	Transport string `toml:"transport" json:"transport"`
	// ConnectTimeoutSecs bounds connection establishment, not streaming
	ConnectTimeoutSecs int `toml:"connect_timeout_secs" json:"connect_timeout_secs"`
	// RequestsPerMinute caps outbound chat requests (0 = unlimited)
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// ChatConfig contains chat behavior settings.
type ChatConfig struct {
	// Language is the display language flag: "en" or "ar"
	Language string `toml:"language" json:"language"`
	// MaxMessageLen caps outbound message length in runes (0 = default)
	MaxMessageLen int `toml:"max_message_len" json:"max_message_len"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
	// Markdown enables glamour rendering of agent replies
	Markdown bool `toml:"markdown" json:"markdown"`
	// ShowTimestamps shows per-message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// HistoryConfig contains transcript archive settings.
type HistoryConfig struct {
	// Enabled turns the SQLite transcript archive on
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the archive database path (empty = ~/.nphies-chat/history.db)
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Backend: BackendConfig{
			URL:                "http://localhost:8000",
			Transport:          "sse",
			ConnectTimeoutSecs: 10,
			RequestsPerMinute:  60,
		},
		Chat: ChatConfig{
			Language:      locale.English.String(),
			MaxMessageLen: 4000,
		},
		UI: UIConfig{
			Theme:          "dark",
			Markdown:       true,
			ShowTimestamps: false,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the nphies-chat configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".nphies-chat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}
	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension; anything that is not
// .json is decoded as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.Transport == "" {
		c.Backend.Transport = defaults.Backend.Transport
	}
	if c.Backend.ConnectTimeoutSecs == 0 {
		c.Backend.ConnectTimeoutSecs = defaults.Backend.ConnectTimeoutSecs
	}
	if c.Chat.Language == "" {
		c.Chat.Language = defaults.Chat.Language
	}
	if c.Chat.MaxMessageLen == 0 {
		c.Chat.MaxMessageLen = defaults.Chat.MaxMessageLen
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# nphies-chat configuration file\n")
	sb.WriteString("# Edit with care; the client reloads this file when it changes.\n\n")

	encoder := toml.NewEncoder(&sb)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Backend.URL != "" {
		parsed, err := url.Parse(c.Backend.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return ValidationError{Field: "backend.url", Message: fmt.Sprintf("invalid URL %q", c.Backend.URL)}
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return ValidationError{Field: "backend.url", Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
		}
	}

	switch c.Backend.Transport {
	case "", "sse", "websocket":
	default:
		return ValidationError{Field: "backend.transport", Message: fmt.Sprintf("must be sse or websocket, got %q", c.Backend.Transport)}
	}

	if c.Backend.ConnectTimeoutSecs < 0 {
		return ValidationError{Field: "backend.connect_timeout_secs", Message: "must not be negative"}
	}
	if c.Backend.RequestsPerMinute < 0 {
		return ValidationError{Field: "backend.requests_per_minute", Message: "must not be negative"}
	}

	switch c.Chat.Language {
	case "", "en", "ar":
	default:
		return ValidationError{Field: "chat.language", Message: fmt.Sprintf("must be en or ar, got %q", c.Chat.Language)}
	}

	switch c.UI.Theme {
	case "", "dark", "light":
	default:
		return ValidationError{Field: "ui.theme", Message: fmt.Sprintf("must be dark or light, got %q", c.UI.Theme)}
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - NPHIES_API_URL: overrides backend.url
//   - NPHIES_TRANSPORT: overrides backend.transport
//   - NPHIES_LANGUAGE: overrides chat.language
//   - NPHIES_THEME: overrides ui.theme
//   - NPHIES_RPM: overrides backend.requests_per_minute
func (c *Config) ApplyEnvOverrides() {
	if apiURL := os.Getenv("NPHIES_API_URL"); apiURL != "" {
		c.Backend.URL = apiURL
	}
	if transport := os.Getenv("NPHIES_TRANSPORT"); transport != "" {
		c.Backend.Transport = strings.ToLower(transport)
	}
	if lang := os.Getenv("NPHIES_LANGUAGE"); lang != "" {
		c.Chat.Language = locale.Parse(lang).String()
	}
	if theme := os.Getenv("NPHIES_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if rpm := os.Getenv("NPHIES_RPM"); rpm != "" {
		if n, err := strconv.Atoi(rpm); err == nil && n >= 0 {
			c.Backend.RequestsPerMinute = n
		}
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Language returns the configured display language.
func (c *Config) Language() locale.Language {
	return locale.Parse(c.Chat.Language)
}

// ConnectTimeout returns the connection timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	if c.Backend.ConnectTimeoutSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Backend.ConnectTimeoutSecs) * time.Second
}

// HistoryPath returns the transcript archive path, resolving the default
// location when unset.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
