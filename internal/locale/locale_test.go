// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package locale

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		expect Language
	}{
		{"ar", Arabic},
		{"ar-SA", Arabic},
		{"en", English},
		{"en-US", English},
		{"", English},
		{"fr", English},
		{"not a tag!", English},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.expect {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.expect)
		}
	}
}

func TestToggle(t *testing.T) {
	if English.Toggle() != Arabic {
		t.Error("English.Toggle() != Arabic")
	}
	if Arabic.Toggle() != English {
		t.Error("Arabic.Toggle() != English")
	}
}

func TestLocalizedStrings(t *testing.T) {
	if AuthRequired(English) == AuthRequired(Arabic) {
		t.Error("expected distinct auth notices per language")
	}
	if ErrorFallback(Arabic) == "" || Thinking(Arabic) == "" {
		t.Error("arabic defaults must not be empty")
	}
	if !Arabic.IsArabic() || English.IsArabic() {
		t.Error("IsArabic misreports")
	}
}
