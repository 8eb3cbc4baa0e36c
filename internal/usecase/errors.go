package usecase

import "github.com/cockroachdb/errors"

// Sentinel errors the transport layer maps onto HTTP status codes.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
