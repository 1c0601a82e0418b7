// Package repoerr holds the repository sentinel errors in a leaf package
// so both the repository interfaces and the domain services can reference
// them without an import cycle.
package repoerr

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
