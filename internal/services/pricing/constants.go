package pricing

// Solver limits
const (
	// MaxIterations bounds the correction loop. Convergence takes at most
	// three passes; the bound is a safety net, not a tuning knob.
	MaxIterations = 10

	// Tolerance is the acceptable gap, in currency units, between net
	// revenue at the solved price and the target revenue.
	Tolerance = 0.01
)
