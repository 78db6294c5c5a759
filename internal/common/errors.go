// Package common defines shared constants and sentinel errors used across
// the Petbook client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors mapped at the API boundary.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")

	// Session lifecycle errors.
	ErrNoSession      = errors.New("no authenticated session")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrCorruptSession = errors.New("corrupt persisted session")

	// Acting-pet errors.
	ErrNoActivePet = errors.New("no active pet selected")

	// Generic internal failure.
	ErrInternal = errors.New("internal error")
)
