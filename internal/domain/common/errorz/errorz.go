package errorz

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidStatus = errors.New("invalid participation status")
	ErrInvalidCode   = errors.New("invalid code")
	ErrInvalidID     = errors.New("invalid id")
)
