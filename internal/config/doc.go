// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for nphies-chat.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.nphies-chat/config.toml
//   - ~/.nphies-chat/config.json
//   - Built-in defaults
//
// A watcher built on fsnotify reloads the file when it changes on disk,
// so language and backend settings can be edited without restarting the
// client.
package config
