package repository

import "errors"

// Storage-level failures every implementation reports with these values.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate key")
	ErrCapacityReached    = errors.New("event capacity reached")
	ErrCapacityBelowCount = errors.New("capacity below current participants")
)
