package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate is returned by repositories when a unique constraint
	// rejects an insert or update.
	ErrDuplicate = errors.New("duplicate key")
)
