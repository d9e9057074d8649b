// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/brainsait/nphies-chat/internal/agui"
)

// =============================================================================
// CHAT TRANSPORT
// =============================================================================

// ChatRequest is the outbound /chat request body.
type ChatRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	SessionID string `json:"session_id,omitempty"`
	ImageURI  string `json:"image_uri,omitempty"`
}

// ChatTransport sends one chat request and streams the reply as parsed
// events. Implemented by the SSE client and the websocket transport.
type ChatTransport interface {
	Chat(ctx context.Context, token string, req ChatRequest) (*Stream, error)
}

// Stream delivers parsed events from one in-flight chat reply. The
// events channel closes when the reply ends, for any reason; Err reports
// whether the ending was an error.
type Stream struct {
	events chan agui.Event

	mu  sync.Mutex
	err error
}

func newStream() *Stream {
	return &Stream{events: make(chan agui.Event, 16)}
}

// Events returns the channel of parsed events.
func (s *Stream) Events() <-chan agui.Event {
	return s.events
}

// Err returns the terminal error, or nil for a clean end. Valid after
// the events channel closes.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// =============================================================================
// SSE STREAMING
// =============================================================================

// Chat sends a message via POST /chat and streams the reply. The request
// carries the bearer token and asks for an event stream; the body is read
// incrementally so partial replies render as they arrive.
//
// The stream is bounded by ctx, not by a client timeout. Failures are
// never retried.
func (c *Client) Chat(ctx context.Context, token string, chatReq ChatRequest) (*Stream, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, &BackendError{Type: ErrTypeInvalidResponse, Message: "failed to encode chat request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &BackendError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		detail := readDetail(resp.Body, resp.Status)
		resp.Body.Close()
		return nil, &BackendError{Type: ErrTypeAuth, Message: "chat rejected: " + detail, Status: resp.StatusCode}
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	default:
		detail := readDetail(resp.Body, resp.Status)
		resp.Body.Close()
		return nil, &BackendError{
			Type:    ErrTypeInvalidResponse,
			Message: "chat request failed: " + detail,
			Status:  resp.StatusCode,
		}
	}

	stream := newStream()
	go c.readStream(ctx, resp.Body, stream)
	return stream, nil
}

// readStream feeds body chunks through the record scanner and forwards
// parsed events until EOF or cancellation.
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, stream *Stream) {
	defer close(stream.events)
	defer body.Close()

	scanner := agui.NewRecordScanner()
	buf := make([]byte, 4096)

	emit := func(events []agui.Event) bool {
		for _, ev := range events {
			select {
			case stream.events <- ev:
			case <-ctx.Done():
				stream.fail(ctx.Err())
				return false
			}
		}
		return true
	}

	for {
		n, err := body.Read(buf)
		if n > 0 {
			if !emit(scanner.Push(buf[:n])) {
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// A final record without a trailing separator still counts.
				emit(scanner.Flush())
				return
			}
			if ctx.Err() != nil {
				stream.fail(ctx.Err())
				return
			}
			stream.fail(&BackendError{Type: ErrTypeConnection, Message: "stream interrupted", Cause: err})
			return
		}
	}
}
