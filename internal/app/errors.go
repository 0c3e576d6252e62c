package service

import "errors"

// Sentinel errors returned by the service views.
var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
)
