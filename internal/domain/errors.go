package domain

import "errors"

// Sentinel errors shared across repositories, services and handlers. The
// HTTP layer maps each one to a single status code.
var (
	// ErrValidation covers malformed or duplicate input (400).
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateEmail is returned when registering an email that already
	// has an account. Surfaced as a 400, matching the validation class.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnauthorized covers absent, malformed or expired credentials (401).
	ErrUnauthorized = errors.New("authorization failed")

	// ErrForbidden covers a valid credential with insufficient role or
	// ownership (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced entity does not exist (404).
	ErrNotFound = errors.New("not found")
)
