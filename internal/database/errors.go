package database

import "errors"

var (
	// ErrNotFound is returned when a lookup or mutation targets a row
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPassword is returned by VerifyUserPassword on mismatch.
	ErrInvalidPassword = errors.New("invalid password")
)
