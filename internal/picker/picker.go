// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker abstracts image attachment selection. The terminal
// client picks by file path; the interface keeps the chat surface
// testable and leaves room for richer pickers on other platforms.
package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrCancelled is returned when the user backs out without choosing.
var ErrCancelled = errors.New("image selection cancelled")

// ErrUnsupportedType is returned for files that are not images.
var ErrUnsupportedType = errors.New("unsupported image type")

// MaxImageBytes caps attachments; the backend rejects larger uploads.
const MaxImageBytes = 10 << 20

// ImagePicker selects an image and returns a URI the backend accepts.
type ImagePicker interface {
	Pick() (uri string, err error)
}

// imageExtensions are the attachment types the backend accepts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// =============================================================================
// FILE PICKER
// =============================================================================

// FilePicker validates a user-supplied file path and returns it as a
// file:// URI.
type FilePicker struct {
	// Path is the candidate image path, set before Pick is called.
	Path string
}

// Pick validates the configured path.
func (p *FilePicker) Pick() (string, error) {
	return PickPath(p.Path)
}

// PickPath validates path and returns its file:// URI.
func PickPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrCancelled
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("image not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", abs)
	}
	if info.Size() > MaxImageBytes {
		return "", fmt.Errorf("image exceeds %d MB limit", MaxImageBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(abs))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	return "file://" + filepath.ToSlash(abs), nil
}
