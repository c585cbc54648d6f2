package domain

import "errors"

// Sentinel errors for the core error taxonomy - match with errors.Is().
// Services wrap these with fmt.Errorf("%w: ...") so callers keep the
// classification while the message carries the offending ids.
var (
	// ErrUnauthorized indicates the request carries no valid caller identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid identity with insufficient permission.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates a malformed, empty or self-referential request.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the app or grant target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation on create.
	ErrConflict = errors.New("already exists")

	// ErrTransactionFailed indicates the store aborted an atomic batch.
	// The orchestrator never retries on its own; callers must re-issue.
	ErrTransactionFailed = errors.New("transaction failed")
)
