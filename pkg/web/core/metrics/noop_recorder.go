package metrics

import "context"

// NoOpMetricRecorder is an implementation of MetricRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

// RecordRequest does nothing.
func (r *NoOpMetricRecorder) RecordRequest(ctx context.Context, obs RequestObservation) {}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)
