package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	metrics "github.com/tigerroll/pipelines/pkg/web/core/metrics"
	logger "github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.MetricRecorder interface.
// It owns a private registry so tests and multiple apps in one process do not collide.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		responseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP response bodies.",
			Buckets: prometheus.ExponentialBuckets(128, 4, 7),
		}, []string{"method", "route"}),
	}

	registry.MustRegister(r.requestsTotal)
	registry.MustRegister(r.requestDuration)
	registry.MustRegister(r.responseSize)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordRequest records one completed request.
func (r *PrometheusRecorder) RecordRequest(ctx context.Context, obs metrics.RequestObservation) {
	r.requestsTotal.WithLabelValues(obs.Method, obs.Route, strconv.Itoa(obs.Status)).Inc()
	r.requestDuration.WithLabelValues(obs.Method, obs.Route).Observe(obs.Duration.Seconds())
	r.responseSize.WithLabelValues(obs.Method, obs.Route).Observe(float64(obs.Bytes))
	logger.Debugf("Metrics: %s %s -> %d in %s", obs.Method, obs.Route, obs.Status, obs.Duration)
}

var (
	_ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
	_ metrics.Exposer        = (*PrometheusRecorder)(nil)
)
