package domain

import "errors"

var (
	// ErrInvalidRequest indicates missing or out-of-range input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound indicates a referenced entity is absent or a query matched nothing.
	ErrNotFound = errors.New("not found")
)
