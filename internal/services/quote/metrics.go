package quote

import "time"

// MetricsCollector records quoting telemetry.
type MetricsCollector interface {
	RecordSolve(country string, iterations int, converged bool)
	RecordOperationDuration(operation string, d time.Duration)
	RecordOperationResult(operation string, result string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordSolve(string, int, bool)                 {}
func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
