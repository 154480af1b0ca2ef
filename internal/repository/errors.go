package repository

import "errors"

// Common repository errors. Uniqueness violations surface as typed
// errors mapped from the database constraint, never from a pre-check.
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when the username is already taken
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrDuplicateHouseNumber is returned when the house number is already registered
	ErrDuplicateHouseNumber = errors.New("house number already registered")

	// ErrDuplicateLineID is returned when the LINE user id is already linked
	ErrDuplicateLineID = errors.New("line account already linked")
)
