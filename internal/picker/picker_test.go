// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake image bytes"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestPickPathValidImage(t *testing.T) {
	path := writeImage(t, "scan.png")

	uri, err := PickPath(path)
	if err != nil {
		t.Fatalf("PickPath failed: %v", err)
	}
	if !strings.HasPrefix(uri, "file://") {
		t.Errorf("expected file:// URI, got %q", uri)
	}
	if !strings.HasSuffix(uri, "scan.png") {
		t.Errorf("expected path in URI, got %q", uri)
	}
}

func TestPickPathEmptyIsCancelled(t *testing.T) {
	for _, input := range []string{"", "   "} {
		if _, err := PickPath(input); !errors.Is(err, ErrCancelled) {
			t.Errorf("PickPath(%q): expected ErrCancelled, got %v", input, err)
		}
	}
}

func TestPickPathRejectsNonImage(t *testing.T) {
	path := writeImage(t, "notes.txt")
	if _, err := PickPath(path); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestPickPathMissingFile(t *testing.T) {
	if _, err := PickPath(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPickPathRejectsDirectory(t *testing.T) {
	if _, err := PickPath(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

func TestFilePicker(t *testing.T) {
	path := writeImage(t, "xray.jpeg")
	p := &FilePicker{Path: path}

	uri, err := p.Pick()
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if uri == "" {
		t.Error("expected non-empty URI")
	}
}
