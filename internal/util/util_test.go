// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "creds.json")

	if err := AtomicWriteFile(path, []byte(`{"token":"abc"}`), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"token":"abc"}` {
		t.Errorf("unexpected content: %s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 perms, got %v", info.Mode().Perm())
	}

	// Overwrite must replace, not append
	if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("second AtomicWriteFile failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "x" {
		t.Errorf("expected overwrite, got %s", data)
	}
}

func TestAtomicWriteFileNoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := AtomicWriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only target file, found %d entries", len(entries))
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in     string
		max    int
		expect string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"", 5, ""},
		{"abc", 0, ""},
		{"مرحبا بك في نفيس", 9, "مرحبا ..."},
	}

	for _, tt := range tests {
		if got := TruncateRunes(tt.in, tt.max); got != tt.expect {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.expect)
		}
	}
}

func TestTruncateWidthKeepsShortStrings(t *testing.T) {
	if got := TruncateWidth("short", 20); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := TruncateWidth("", 4); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	in := "line one\nline two\r\nline three\r"
	if got := SingleLine(in); got != "line one line two line three" {
		t.Errorf("SingleLine = %q", got)
	}
}
