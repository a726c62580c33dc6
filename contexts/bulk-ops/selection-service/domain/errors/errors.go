package errors

import "errors"

var (
	ErrSessionRequired   = errors.New("session id required")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidRequest    = errors.New("invalid request")
)
