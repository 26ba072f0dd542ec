// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType classifies client failures so the UI can choose how to react
// without string-matching error text.
type ErrorType int

const (
	// ErrTypeConnection covers dial failures, timeouts, broken streams and
	// non-2xx responses that carry no more specific meaning.
	ErrTypeConnection ErrorType = iota

	// ErrTypeAuth covers rejected credentials, expired or missing tokens.
	ErrTypeAuth

	// ErrTypeValidation covers requests the backend rejected as malformed,
	// for example a registration with a taken username.
	ErrTypeValidation

	// ErrTypeResponse covers responses that arrived but could not be decoded.
	ErrTypeResponse

	// ErrTypeCancelled covers operations abandoned by the caller.
	ErrTypeCancelled
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeAuth:
		return "auth"
	case ErrTypeValidation:
		return "validation"
	case ErrTypeResponse:
		return "response"
	case ErrTypeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ClientError is the error type returned by all Client methods.
type ClientError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ClientError) Unwrap() error { return e.Err }

// =============================================================================
// SENTINELS
// =============================================================================

var (
	// ErrCancelled is wrapped by every ClientError produced by caller-side
	// cancellation, so errors.Is(err, ErrCancelled) works regardless of
	// where in the request lifecycle the cancel landed.
	ErrCancelled = errors.New("operation cancelled")

	// ErrUnauthorized is wrapped by auth-typed errors caused by a rejected
	// or expired bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

func newError(t ErrorType, msg string, err error) *ClientError {
	return &ClientError{Type: t, Message: msg, Err: err}
}

// cancelErr builds the canonical cancellation error, preserving the
// distinction between an explicit cancel and a deadline.
func cancelErr(ctx context.Context) *ClientError {
	msg := "request cancelled"
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = "request deadline exceeded"
	}
	return newError(ErrTypeCancelled, msg, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err()))
}

// IsCancelled reports whether err represents caller-side cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeAuth
}

// IsValidationError reports whether err is a backend validation rejection.
func IsValidationError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeValidation
}

// UserMessage returns a short message suitable for direct display.
func UserMessage(err error) string {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return err.Error()
	}
	switch ce.Type {
	case ErrTypeConnection:
		return "Cannot reach the server. Check your connection and try again."
	case ErrTypeAuth:
		if ce.Message != "" {
			return ce.Message
		}
		return "Authentication failed. Please log in again."
	case ErrTypeValidation:
		return ce.Message
	case ErrTypeResponse:
		return "The server sent an unexpected response."
	case ErrTypeCancelled:
		return "Cancelled."
	default:
		return ce.Message
	}
}
