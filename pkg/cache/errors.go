package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache by
	// callers that prefer an error over the (data, ok, err) triple.
	ErrCacheMiss = errors.New("cache miss")
)
