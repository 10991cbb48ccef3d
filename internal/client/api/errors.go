package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: the server could not be
	// reached or did not answer in time.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a rejected or expired credential. The gateway has
	// already cleared the session by the time a caller sees this.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-2xx response from the portal, carrying the HTTP status and
// the server's human-readable reason when one was provided.
type Error struct {
	Status int
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Unwrap lets errors.Is match a 401 against the ErrUnauthorized sentinel
// while the server's reason stays on the Error itself for Reason to find.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Reason extracts the server-provided reason from err, or "" when err carries
// none. Flows use it to show server rejections verbatim and fall back to a
// per-action generic message otherwise.
func Reason(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ""
}
