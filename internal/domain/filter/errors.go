package filter

import "errors"

// Sentinel errors for criteria parsing.
var (
	ErrUnknownWindow   = errors.New("unknown time window")
	ErrUnknownLevel    = errors.New("unknown proficiency level")
	ErrUnknownSort     = errors.New("unknown sort order")
	ErrUnknownSelector = errors.New("unknown selector")
)
