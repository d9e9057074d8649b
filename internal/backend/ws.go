// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brainsait/nphies-chat/internal/agui"
)

// =============================================================================
// WEBSOCKET TRANSPORT
// =============================================================================

// Close codes the backend uses to reject a websocket session.
const (
	wsCloseUnauthorized = 4401
	wsCloseRateLimited  = 4429
)

// WSTransport speaks the backend's /ws/chat endpoint. Each Chat call
// opens one connection, sends one request, and reads event frames until
// session_end or close. It satisfies ChatTransport interchangeably with
// the SSE client.
type WSTransport struct {
	baseURL string
	dialer  *websocket.Dialer
}

// NewWSTransport creates a websocket transport against the given backend
// base URL (http or https scheme; translated to ws/wss).
func NewWSTransport(baseURL string, connectTimeout time.Duration) *WSTransport {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	return &WSTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		dialer: &websocket.Dialer{
			HandshakeTimeout: connectTimeout,
		},
	}
}

// wsURL builds the ws(s)://host/ws/chat endpoint with the token as a
// query parameter, the way the backend expects it.
func (t *WSTransport) wsURL(token string) (string, error) {
	parsed, err := url.Parse(t.baseURL)
	if err != nil {
		return "", &BackendError{Type: ErrTypeConnection, Message: "invalid backend URL", Cause: err}
	}
	switch parsed.Scheme {
	case "https":
		parsed.Scheme = "wss"
	default:
		parsed.Scheme = "ws"
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/ws/chat"

	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Chat opens a websocket, sends the request frame, and streams event
// frames. Auth and rate-limit rejections arrive as close codes 4401 and
// 4429 and are mapped to the shared sentinel errors.
func (t *WSTransport) Chat(ctx context.Context, token string, chatReq ChatRequest) (*Stream, error) {
	endpoint, err := t.wsURL(token)
	if err != nil {
		return nil, err
	}

	conn, resp, err := t.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, ErrAuthFailed
		}
		return nil, &BackendError{Type: ErrTypeConnection, Message: "websocket dial failed", Cause: err}
	}

	if err := conn.WriteJSON(chatReq); err != nil {
		conn.Close()
		return nil, &BackendError{Type: ErrTypeConnection, Message: "failed to send chat request", Cause: err}
	}

	stream := newStream()
	go t.readFrames(ctx, conn, stream)
	return stream, nil
}

// readFrames forwards event frames until the server closes or the
// context ends. Each frame carries one JSON event envelope.
func (t *WSTransport) readFrames(ctx context.Context, conn *websocket.Conn, stream *Stream) {
	defer close(stream.events)
	defer conn.Close()

	// Unblock ReadMessage when the caller cancels.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				stream.fail(ctx.Err())
				return
			}
			switch {
			case websocket.IsCloseError(err, wsCloseUnauthorized):
				stream.fail(ErrAuthFailed)
			case websocket.IsCloseError(err, wsCloseRateLimited):
				stream.fail(ErrRateLimited)
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				// Clean end of the reply.
			default:
				stream.fail(&BackendError{Type: ErrTypeConnection, Message: "websocket stream interrupted", Cause: err})
			}
			return
		}

		var ev agui.Event
		if err := json.Unmarshal(frame, &ev); err != nil {
			log.Printf("skipping malformed websocket frame: %v", err)
			continue
		}
		if ev.Type == "" {
			continue
		}

		select {
		case stream.events <- ev:
		case <-ctx.Done():
			stream.fail(ctx.Err())
			return
		}

		if ev.Type == agui.EventSessionEnd {
			return
		}
	}
}
