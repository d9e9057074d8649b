// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/brainsait/nphies-chat/internal/locale"
)

func TestHeaderEnglish(t *testing.T) {
	h := Header{Width: 80, Language: locale.English}
	out := h.Render()
	if !strings.Contains(out, appTitleEN) {
		t.Errorf("expected English title in %q", out)
	}
	if !strings.Contains(out, "EN") {
		t.Errorf("expected language tag in %q", out)
	}
}

func TestHeaderArabic(t *testing.T) {
	h := Header{Width: 80, Language: locale.Arabic}
	out := h.Render()
	if !strings.Contains(out, appTitleAR) {
		t.Errorf("expected Arabic title in %q", out)
	}
	if !strings.Contains(out, "AR") {
		t.Errorf("expected language tag in %q", out)
	}
}

func TestStatusBarTyping(t *testing.T) {
	bar := StatusBar{Width: 80, SessionID: "sess-abc", Typing: true, Spinner: "|"}
	out := bar.Render()
	if !strings.Contains(out, "agent is typing") {
		t.Errorf("expected typing indicator in %q", out)
	}
	if !strings.Contains(out, "sess-abc") {
		t.Errorf("expected session id in %q", out)
	}
}

func TestStatusBarNoticeReplacesSession(t *testing.T) {
	bar := StatusBar{Width: 80, SessionID: "sess-abc", Notice: "saved transcript"}
	out := bar.Render()
	if !strings.Contains(out, "saved transcript") {
		t.Errorf("expected notice in %q", out)
	}
	if strings.Contains(out, "sess-abc") {
		t.Errorf("notice should replace session info in %q", out)
	}
}
