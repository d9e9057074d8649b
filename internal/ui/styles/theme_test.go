// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Bubbles must render their content, whatever the color profile.
	out := theme.UserBubble.Render("hello")
	if !strings.Contains(out, "hello") {
		t.Errorf("bubble lost its content: %q", out)
	}
}

func TestStatusRenderersIncludeIndicators(t *testing.T) {
	cases := []struct {
		render    func(string) string
		indicator string
	}{
		{RenderSuccess, StatusIndicators.Success},
		{RenderError, StatusIndicators.Error},
		{RenderWarning, StatusIndicators.Warning},
		{RenderInfo, StatusIndicators.Info},
	}
	for _, tc := range cases {
		out := tc.render("message")
		if !strings.Contains(out, tc.indicator) {
			t.Errorf("expected %q in %q", tc.indicator, out)
		}
		if !strings.Contains(out, "message") {
			t.Errorf("expected message text in %q", out)
		}
	}
}
