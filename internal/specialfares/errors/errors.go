package errors

import "errors"

var (
	ErrNotFound  = errors.New("special fare not found")
	ErrInvalidID = errors.New("invalid special fare ID")
)
