package api

import (
	"errors"
	"fmt"
)

// Common remote store errors
var (
	// ErrInvalidCredentials is returned when the token endpoint rejects the
	// supplied username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when any request comes back 401. The
	// caller must discard its session and return to the unauthenticated view.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoSession is returned when an authenticated call is attempted
	// without a session.
	ErrNoSession = errors.New("not logged in")
)

// RemoteError is any non-2xx response not otherwise classified. It carries
// the status code and the response body for the inline user message.
type RemoteError struct {
	// Op is the adapter operation that failed (e.g. "ListInvoices").
	Op string

	// Status is the HTTP status code of the response.
	Status int

	// Body is the (truncated) response body, usually a JSON error detail.
	Body string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api: %s failed with status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("api: %s failed with status %d", e.Op, e.Status)
}
