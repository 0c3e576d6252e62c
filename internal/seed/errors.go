package seed

import "errors"

// Sentinel errors of a seeding run.
var (
	ErrUnhealthy  = errors.New("service unhealthy")
	ErrMismatch   = errors.New("leaderboard mismatch")
	ErrIncomplete = errors.New("seeding incomplete")
)
