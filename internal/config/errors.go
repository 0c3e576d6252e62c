package config

import (
	"errors"
)

// Sentinel error kinds; Load and Validate wrap one of these.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
