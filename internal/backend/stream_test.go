// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brainsait/nphies-chat/internal/agui"
)

// collectEvents drains a stream with a timeout so a broken stream fails
// the test instead of hanging it.
func collectEvents(t *testing.T, stream *Stream) []agui.Event {
	t.Helper()

	var events []agui.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-stream.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("timed out draining stream")
		}
	}
}

func TestChatStreamsEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-xyz" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if accept := r.Header.Get("Accept"); accept != "text/event-stream" {
			t.Errorf("unexpected accept header: %q", accept)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if req.Message != "ما حالة المطالبة؟" || req.Language != "ar" {
			t.Errorf("unexpected request: %+v", req)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		records := []string{
			`data: {"type": "session_start", "data": {"session_id": "sess-1"}}`,
			`data: {"type": "thinking", "data": {"message": "Analyzing claim"}}`,
			`data: {"type": "partial_response", "data": {"text": "The claim"}}`,
			`data: {"type": "final_response", "data": {"message": "The claim is approved."}}`,
			`data: {"type": "session_end", "data": {}}`,
		}
		for _, record := range records {
			fmt.Fprintf(w, "%s\n\n", record)
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stream, err := client.Chat(context.Background(), "tok-xyz", ChatRequest{
		Message:  "ما حالة المطالبة؟",
		Language: "ar",
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	events := collectEvents(t, stream)
	if stream.Err() != nil {
		t.Fatalf("unexpected stream error: %v", stream.Err())
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d: %+v", len(events), events)
	}
	if events[0].Type != agui.EventSessionStart {
		t.Errorf("expected session_start first, got %q", events[0].Type)
	}
	if events[4].Type != agui.EventSessionEnd {
		t.Errorf("expected session_end last, got %q", events[4].Type)
	}
}

func TestChatFlushesTrailingRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No trailing separator after the last record.
		fmt.Fprint(w, "data: {\"type\": \"thinking\", \"data\": {}}\n\ndata: {\"type\": \"final_response\", \"data\": {\"message\": \"done\"}}")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stream, err := client.Chat(context.Background(), "tok", ChatRequest{Message: "hi", Language: "en"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	events := collectEvents(t, stream)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Type != agui.EventFinalResponse {
		t.Errorf("expected trailing final_response, got %q", events[1].Type)
	}
}

func TestChatAuthRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Chat(context.Background(), "stale", ChatRequest{Message: "hi", Language: "en"})
	if err == nil {
		t.Fatal("expected error")
	}

	var backendErr *BackendError
	if !errors.As(err, &backendErr) || backendErr.Type != ErrTypeAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestChatRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Chat(context.Background(), "tok", ChatRequest{Message: "hi", Language: "en"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestChatNoRetryOnFailure(t *testing.T) {
	var requestCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Chat(context.Background(), "tok", ChatRequest{Message: "hi", Language: "en"}); err == nil {
		t.Fatal("expected error")
	}
	if n := requestCount.Load(); n != 1 {
		t.Errorf("expected exactly 1 request, got %d", n)
	}
}

func TestChatCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data: {\"type\": \"thinking\", \"data\": {}}\n\n")
		flusher.Flush()
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	client := newTestClient(server.URL)
	stream, err := client.Chat(ctx, "tok", ChatRequest{Message: "hi", Language: "en"})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	// First event arrives, then the caller gives up.
	select {
	case <-stream.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for first event")
	}
	cancel()

	collectEvents(t, stream)
	if stream.Err() == nil {
		t.Error("expected error after cancellation")
	}
}
