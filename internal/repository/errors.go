package repository

import "github.com/jqzhang/crmsheet/internal/repoerr"

var (
	// ErrNotFound is returned when a requested row doesn't exist
	ErrNotFound = repoerr.ErrNotFound

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = repoerr.ErrInvalidInput
)
