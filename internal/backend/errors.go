// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// =============================================================================
// ERROR TYPES
// =============================================================================

// BackendError represents an error from the NPHIES-AI backend.
type BackendError struct {
	Type    ErrorType
	Message string
	Status  int // HTTP status, or websocket close code, 0 when not applicable
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes backend errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeAuth
	ErrTypeRateLimited
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &BackendError{Type: ErrTypeConnection, Message: "backend is unreachable"}
	ErrTimeout     = &BackendError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrAuthFailed  = &BackendError{Type: ErrTypeAuth, Message: "authentication failed"}
	ErrRateLimited = &BackendError{Type: ErrTypeRateLimited, Message: "rate limited by backend"}
)
