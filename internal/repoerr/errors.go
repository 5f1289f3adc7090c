// Package repoerr holds the repository sentinel errors in a leaf package so
// that both the repository interfaces and the domain services can reference
// them without an import cycle.
package repoerr

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a guarded status transition finds the
	// entity in a different state than expected
	ErrConflict = errors.New("conflict: entity state changed")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
