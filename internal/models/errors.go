package models

import (
	"errors"
)

var (
	ErrInvalidModel      = errors.New("invalid model")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnknownProvider   = errors.New("unknown provider")

	// Remote completion failures. Provider implementations wrap one of these
	// so callers can tell quota exhaustion from network trouble.
	ErrRateLimited     = errors.New("provider rate limit or quota exhausted")
	ErrConnectivity    = errors.New("provider unreachable")
	ErrProviderFailure = errors.New("provider request failed")
)
