// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETION
// =============================================================================

// Complete returns the command names matching the typed prefix, sorted.
// Aliases complete too, but only when the prefix goes beyond the slash;
// a bare "/" lists primary names only.
func (r *Registry) Complete(prefix string) []string {
	prefix = strings.TrimSpace(prefix)
	if !strings.HasPrefix(prefix, "/") {
		return nil
	}

	var matches []string
	for _, cmd := range r.ordered {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd.Name)
			continue
		}
		if prefix == "/" {
			continue
		}
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(alias, prefix) {
				matches = append(matches, cmd.Name)
				break
			}
		}
	}
	sort.Strings(matches)
	return matches
}

// CompleteOne returns the completion when the prefix matches exactly one
// command, with a trailing space ready for arguments. Returns "" otherwise.
func (r *Registry) CompleteOne(prefix string) string {
	matches := r.Complete(prefix)
	if len(matches) != 1 {
		return ""
	}
	return matches[0] + " "
}
