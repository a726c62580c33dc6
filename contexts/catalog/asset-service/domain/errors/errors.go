package errors

import "errors"

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrInvalidCategory    = errors.New("invalid asset category")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrDetailsMismatch    = errors.New("details do not match asset category")
)
