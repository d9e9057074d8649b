// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package creds persists the bearer token and language preference.
package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/util"
)

// Fixed storage keys, mirrored in the JSON file layout.
const (
	KeyAuthToken = "auth_token"
	KeyLanguage  = "language"
)

// DefaultFileName is the credentials file under the config directory.
const DefaultFileName = "credentials.json"

// Store is the capability interface for persisted client credentials.
type Store interface {
	// Token returns the persisted bearer token, or "" when logged out.
	Token() (string, error)

	// SetToken persists a bearer token.
	SetToken(token string) error

	// ClearToken removes the persisted token. Called on logout only.
	ClearToken() error

	// Language returns the persisted display language flag, or "" when no
	// preference was ever persisted. Callers fall back to their configured
	// default in that case.
	Language() (locale.Language, error)

	// SetLanguage persists the display language flag.
	SetLanguage(lang locale.Language) error
}

// =============================================================================
// FILE STORE
// =============================================================================

// fileData is the on-disk layout.
type fileData struct {
	AuthToken string `json:"auth_token,omitempty"`
	Language  string `json:"language,omitempty"`
}

// FileStore persists credentials in a single JSON file with atomic writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store at the default location
// (~/.nphies-chat/credentials.json).
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return NewFileStoreAt(filepath.Join(homeDir, ".nphies-chat", DefaultFileName)), nil
}

// NewFileStoreAt creates a store backed by the given file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", err
	}
	return data.AuthToken, nil
}

// SetToken persists a bearer token.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data.AuthToken = token
	return s.save(data)
}

// ClearToken removes the persisted token, leaving the language flag intact.
func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data.AuthToken = ""
	return s.save(data)
}

// Language returns the persisted language flag, or "" when the user never
// picked one. Unset must stay distinguishable so a configured default is
// not shadowed by an implicit English.
func (s *FileStore) Language() (locale.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", err
	}
	if data.Language == "" {
		return "", nil
	}
	return locale.Parse(data.Language), nil
}

// SetLanguage persists the language flag.
func (s *FileStore) SetLanguage(lang locale.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data.Language = lang.String()
	return s.save(data)
}

// load reads the backing file. A missing file is an empty store, not an
// error.
func (s *FileStore) load() (*fileData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileData{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupted file must not lock the user out of the client.
		return &fileData{}, nil
	}
	return &data, nil
}

// save writes atomically with owner-only permissions.
func (s *FileStore) save(data *fileData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu       sync.Mutex
	token    string
	language locale.Language
}

// NewMemoryStore creates an empty in-memory store. The language starts
// unset, like a fresh credentials file.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryStore) Language() (locale.Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language, nil
}

func (s *MemoryStore) SetLanguage(lang locale.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	return nil
}
