package trace

import "errors"

var (
	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("trace: tick interval must be positive")

	// ErrNoScheduler indicates a player constructed without a scheduler.
	ErrNoScheduler = errors.New("trace: scheduler is required")
)
