package repositories

import "errors"

var (
	// ErrNotFound covers both "record absent" and "record owned by someone
	// else" — callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registration hits the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("user already exists")
)
