// Package metrics defines the abstraction the server uses to record request metrics.
// Concrete backends live in pkg/web/infrastructure/metrics.
package metrics

import (
	"context"
	"net/http"
	"time"
)

// RequestObservation describes one completed HTTP request.
type RequestObservation struct {
	Method string
	// Route is the matched path template, or "unmatched" for 404/405 responses.
	Route    string
	Status   int
	Bytes    int
	Duration time.Duration
}

// MetricRecorder records request metrics.
// Implementations must be safe for concurrent use.
type MetricRecorder interface {
	RecordRequest(ctx context.Context, obs RequestObservation)
}

// Exposer is implemented by recorders that serve their own scrape endpoint.
type Exposer interface {
	Handler() http.Handler
}
