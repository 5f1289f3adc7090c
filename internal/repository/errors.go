package repository

import "github.com/ganot/quadfund/internal/repoerr"

// The sentinel values live in internal/repoerr so the domain services can
// compare against them without importing this package (which imports the
// domain packages for its interface signatures). These names are the same
// error values, so errors.Is works across both spellings.
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrConflict is returned when a guarded status transition finds the
	// entity in a different state than expected
	ErrConflict = repoerr.ErrConflict

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = repoerr.ErrForeignKeyViolation

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
