package helpers

import "errors"

// Common test errors
var (
	// ErrTest is a generic test error
	ErrTest = errors.New("test error")

	// ErrConnection represents a connection error
	ErrConnection = errors.New("connection error")
)
