package db

import "errors"

// Domain-level database error sentinels.
var (
	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidProject  = errors.New("project id is required")
)
