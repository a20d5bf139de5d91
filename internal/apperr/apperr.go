package apperr

import "errors"

// Pipeline error taxonomy. Services return these (wrapped with context);
// the API layer is the only place they are mapped to HTTP status codes.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrDuplicate    = errors.New("duplicate submission")
)
