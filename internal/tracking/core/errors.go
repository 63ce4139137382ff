package core

import "errors"

var (
	// ErrNotFound indicates the requested vehicle is unknown to the adapter
	// that returned it (absent from the cache, or no history rows).
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates the cache or store could not be reached.
	// The write path logs it and moves on; the read path surfaces it.
	ErrUnavailable = errors.New("upstream unavailable")
)
