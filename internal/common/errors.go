// Package common defines sentinel errors shared across the client layers.
// Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Flow-level errors raised before any network call.
	ErrInvalidAmount = errors.New("invalid amount")
	ErrBusy          = errors.New("another operation is in progress")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
)
