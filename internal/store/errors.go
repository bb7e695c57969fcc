package store

import "errors"

// Sentinel errors shared by the SQL repositories and the in-memory
// fallback stores so services can branch without knowing which
// implementation is behind the interface.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnavailable    = errors.New("database unavailable")
)
