package errors

import "errors"

var (
	ErrSplitNotFound   = errors.New("split not found")
	ErrInvalidPercent  = errors.New("split percent must be between 1 and 100")
	ErrShareExceeded   = errors.New("active splits for contributor would exceed 100 percent")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrSplitNotPending = errors.New("split is not pending")
	ErrSplitRevoked    = errors.New("split already revoked")
)
