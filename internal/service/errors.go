package service

import (
	"errors"
	"fmt"
)

// Service-level error kinds. Handlers map these to HTTP statuses with
// errors.Is/As instead of matching on message text.
var (
	// ErrValidation marks malformed or missing input (400)
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for a wrong username or password (401)
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated marks a missing or unverifiable session (401)
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAccountDisabled is returned whenever a deactivated user is seen (401)
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrConflict marks a uniqueness violation (409)
	ErrConflict = errors.New("conflict")
)

// Authorization denial reasons. Deactivated accounts are not a gate
// denial; they surface as ErrAccountDisabled from the session resolver.
const (
	DenyUnauthenticated  = "unauthenticated"
	DenyInsufficientRole = "insufficient_role"
	DenyNotOwner         = "not_owner"
)

// DenialError is an authorization denial with a machine-readable
// reason (403, or 401 for DenyUnauthenticated).
type DenialError struct {
	Reason string
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

// Deny builds a denial with the given reason
func Deny(reason string) error {
	return &DenialError{Reason: reason}
}
