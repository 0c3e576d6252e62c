package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidSort     = errors.New("invalid sort field")
	ErrInvalidCriteria = errors.New("invalid filter field")
	ErrUnknownDriver   = errors.New("unknown store driver")
	ErrUnresolvedRef   = errors.New("referenced record not found")
)
