package core

import "errors"

// Common errors.
var (
	// ErrConnection is wrapped by adapters when a store handle cannot be obtained.
	ErrConnection = errors.New("store connection failed")
	ErrReadOnly   = errors.New("repository is in read-only mode")
)
