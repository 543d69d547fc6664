// Package common defines shared constants and sentinel errors used across
// resourcehub components. Callers should use errors.Is to match these values;
// concrete failures are wrapped around them with fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors, raised before any network call.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid token")

	// Upload stages.
	ErrStorage = errors.New("storage error")
	ErrInsert  = errors.New("insert error")

	// Dispatch stages.
	ErrFetch      = errors.New("fetch error")
	ErrExtraction = errors.New("extraction error")

	// Thumbnail derivation; never shown to the user.
	ErrRender = errors.New("render error")

	// ErrBusy is returned when an operation that must not overlap is already running.
	ErrBusy = errors.New("operation in progress")
)
