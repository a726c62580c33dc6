package errors

import "errors"

var (
	ErrAssetNotFound          = errors.New("asset not found")
	ErrActionNotAllowed       = errors.New("action not allowed from current state")
	ErrCommentsRequired       = errors.New("rejection requires comments")
	ErrInvalidRequest         = errors.New("invalid request")
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with different payload")
)
