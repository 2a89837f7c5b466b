package models

import "errors"

// Error kinds shared across layers. Wrap them with fmt.Errorf("%w") and test
// with errors.Is.
var (
	// ErrParticipantNotFound: a sender or recipient did not resolve in the directory.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrNotFoundOrUnauthorized covers both a missing message and one the
	// caller may not act on, so existence is never leaked.
	ErrNotFoundOrUnauthorized = errors.New("message not found or not authorized")

	// ErrStorageUnavailable marks a retryable ledger failure.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidParticipant = errors.New("invalid participant")
	ErrEmptyContent       = errors.New("message content cannot be empty")
)
