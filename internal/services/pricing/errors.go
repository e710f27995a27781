package pricing

import "errors"

// Solver errors
var (
	// ErrDegenerateSchedule rejects schedules whose combined rates take the
	// whole price, making the solved price unbounded.
	ErrDegenerateSchedule = errors.New("degenerate fee schedule")
)
