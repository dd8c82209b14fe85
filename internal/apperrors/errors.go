// Package apperrors defines the sentinel errors the services raise and the
// handlers translate to HTTP statuses. Callers match with errors.Is, so
// services are free to wrap these with context via fmt.Errorf and %w.
package apperrors

import "errors"

var (
	// ErrUnauthorized covers missing, invalid or expired credentials, and
	// protected operations invoked without a principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but not entitled.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")

	// ErrTokenExpired and ErrTokenMalformed are the token-specific failures.
	// The authentication pipeline swallows both into "no principal"; they
	// only surface to callers that validate tokens directly.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)
