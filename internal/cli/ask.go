// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query and interactive prompt command handler.
//
// USABILITY: Markdown rendering and input history for better CLI experience
//
// Handles the "nphies-chat ask" command. With a question it sends one message
// and prints the reply; without one it drops into an interactive prompt loop
// that keeps the session alive between questions.
//
// Examples:
//   nphies-chat ask "What does claim status PENDING mean?"
//   nphies-chat ask --lang ar "كيف أقدم مطالبة؟"
//   nphies-chat ask --image scan.png "What does this claim form say?"
//   nphies-chat ask

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/brainsait/nphies-chat/internal/agui"
	"github.com/brainsait/nphies-chat/internal/backend"
	"github.com/brainsait/nphies-chat/internal/config"
	"github.com/brainsait/nphies-chat/internal/locale"
	"github.com/brainsait/nphies-chat/internal/picker"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse displays a response with markdown rendering when
// appropriate. Only renders markdown when stdout is a TTY to avoid
// corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs a single question, or an interactive prompt loop when no
// question was given.
func HandleAsk(args Args) int {
	e, err := loadEnv(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	token, err := e.gate.Token()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("not signed in, run: nphies-chat login"))
		return 1
	}

	imageURI := ""
	if args.Image != "" {
		imageURI, err = picker.PickPath(args.Image)
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(fmt.Sprintf("image: %v", err)))
			return 1
		}
	}

	if strings.TrimSpace(args.Query) != "" {
		final, _, err := askOnce(e.client, token, args.Query, e.lang, "", imageURI)
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		displayResponse(final)
		return 0
	}

	return runPromptLoop(e, token, imageURI)
}

// askOnce sends one message and drains the event stream, returning the final
// reply (localized when the language is Arabic) and the session id the
// backend announced.
func askOnce(transport backend.ChatTransport, token, message string, lang locale.Language, sessionID, imageURI string) (string, string, error) {
	stream, err := transport.Chat(context.Background(), token, backend.ChatRequest{
		Message:   message,
		Language:  lang.String(),
		SessionID: sessionID,
		ImageURI:  imageURI,
	})
	if err != nil {
		return "", sessionID, err
	}

	var final, partial string

	for ev := range stream.Events() {
		switch ev.Type {
		case agui.EventSessionStart:
			if id := ev.Str("session_id"); id != "" {
				sessionID = id
			}
		case agui.EventThinking, agui.EventAgentThinking:
			if IsStdoutTTY() {
				fmt.Fprintln(os.Stderr, styles.RenderInfo(pickText(ev, lang, "message")))
			}
		// Partials are cumulative snapshots of the reply so far, so only
		// the most recent one matters.
		case agui.EventPartialResponse:
			if text := pickText(ev, lang, "text", "message"); text != "" {
				partial = text
			}
		case agui.EventAgentResponse, agui.EventFinalResponse:
			final = pickText(ev, lang, "message", "text")
		case agui.EventError:
			msg := pickText(ev, lang, "message")
			if msg == "" {
				msg = locale.ErrorFallback(lang)
			}
			return "", sessionID, errors.New(msg)
		}
	}
	if err := stream.Err(); err != nil {
		return "", sessionID, err
	}

	if final == "" {
		final = partial
	}
	return final, sessionID, nil
}

// pickText fetches the localized payload text: the "_ar" variant of the first
// present key when Arabic is active, the plain variant otherwise.
func pickText(ev agui.Event, lang locale.Language, keys ...string) string {
	if lang.IsArabic() {
		for _, key := range keys {
			if s := ev.Str(key + "_ar"); s != "" {
				return s
			}
		}
	}
	return ev.FirstStr(keys...)
}

// =============================================================================
// INTERACTIVE PROMPT LOOP
// =============================================================================

// runPromptLoop reads questions with liner (arrow-key history) and keeps one
// session across them. Ctrl+C or "exit" leaves the loop.
func runPromptLoop(e *env, token, imageURI string) int {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	historyFile := ""
	if dir, err := config.ConfigDir(); err == nil {
		historyFile = filepath.Join(dir, "ask_history")
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}
	defer saveLinerHistory(line, historyFile)

	fmt.Println(styles.RenderInfo("interactive mode, type exit or press ctrl+c to quit"))

	sessionID := ""
	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				return 0
			}
			return 0
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return 0
		}
		line.AppendHistory(input)

		final, sid, err := askOnce(e.client, token, input, e.lang, sessionID, imageURI)
		// The image only rides on the first message of the loop.
		imageURI = ""
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			continue
		}
		sessionID = sid
		displayResponse(final)
	}
}

// saveLinerHistory persists prompt history with owner-only permissions.
func saveLinerHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
