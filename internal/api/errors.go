package api

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies an API failure for callers that need to branch on the
// cause rather than the message.
type Category string

const (
	// Unauthenticated means a protected call was made without a valid token.
	Unauthenticated Category = "unauthenticated"
	// NetworkUnavailable means the request never produced an HTTP response.
	NetworkUnavailable Category = "network_unavailable"
	// ServerRejected means the server answered with a 4xx/5xx status.
	ServerRejected Category = "server_rejected"
	// EmailUnverified is a login rejection caused by a pending email
	// verification.
	EmailUnverified Category = "email_unverified"
)

// Error is a categorized failure from the marketplace API.
type Error struct {
	Category Category
	Status   int    // HTTP status, 0 when no response was received
	Message  string // human-readable, server-provided when available
	Err      error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotAuthenticated is returned locally when a protected operation is
// attempted without a stored token. No HTTP call is made.
var ErrNotAuthenticated = &Error{
	Category: Unauthenticated,
	Message:  "User not authenticated",
}

// CategoryOf returns the category of err, or the empty string if err is not
// an API error.
func CategoryOf(err error) Category {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Category
	}
	return ""
}

// isUnverifiedMessage reports whether a login rejection message indicates a
// pending email verification.
func isUnverifiedMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "verified") || strings.Contains(lower, "verification")
}
