package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed or contradictory submission.
	ErrValidation = errors.New("invalid submission")
	// ErrConflict marks an operation that is not allowed in the current session state.
	ErrConflict = errors.New("operation not allowed in current state")
	// ErrNotFound marks an operation whose target does not exist.
	ErrNotFound = errors.New("not found")

	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
)
