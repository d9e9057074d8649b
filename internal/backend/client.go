// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for non-streaming requests (default: 10s)
	Timeout time.Duration

	// RequestsPerMinute caps outbound chat requests (0 = unlimited)
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://localhost:8000",
		Timeout:           10 * time.Second,
		RequestsPerMinute: 60,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the NPHIES-AI backend.
//
// The Client is thread-safe for concurrent use. Chat streaming uses a
// separate http.Client with no timeout: a reply streams for as long as
// the agent talks, bounded by the caller's context instead.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	streamClient *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8000"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), config.RequestsPerMinute)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		streamClient: &http.Client{},
		limiter:      limiter,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// tokenResponse is the /auth/token response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// errorResponse is the backend's error body, when it sends one.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Authenticate exchanges a username and password for a bearer token via
// POST /auth/token. The body is form-encoded, matching OAuth2 password
// flow conventions on the backend.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &BackendError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return "", &BackendError{
			Type:    ErrTypeAuth,
			Message: "authentication failed: " + readDetail(resp.Body, resp.Status),
			Status:  resp.StatusCode,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{
			Type:    ErrTypeInvalidResponse,
			Message: "unexpected status from backend: " + resp.Status,
			Status:  resp.StatusCode,
		}
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", &BackendError{Type: ErrTypeInvalidResponse, Message: "failed to decode token response", Cause: err}
	}
	if token.AccessToken == "" {
		return "", &BackendError{Type: ErrTypeInvalidResponse, Message: "backend returned an empty token"}
	}
	return token.AccessToken, nil
}

// readDetail extracts the backend's error detail, falling back to the
// HTTP status line.
func readDetail(body io.Reader, status string) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return status
	}
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return status
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

// Health probes GET /health and returns the backend's status report.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return nil, &BackendError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &BackendError{
			Type:    ErrTypeInvalidResponse,
			Message: "unexpected status from backend: " + resp.Status,
			Status:  resp.StatusCode,
		}
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, &BackendError{Type: ErrTypeInvalidResponse, Message: "failed to decode health response", Cause: err}
	}
	return &status, nil
}

// wait blocks on the client rate limiter. Chat calls go through it; auth
// and health do not.
func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &BackendError{Type: ErrTypeRateLimited, Message: "rate limit wait cancelled", Cause: err}
	}
	return nil
}
