package errors

import "errors"

var (
	ErrInvalidAction     = errors.New("unsupported bulk action")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrNoIDs             = errors.New("bulk operation requires at least one id")
	ErrItemNotFound      = errors.New("item not found")
)
