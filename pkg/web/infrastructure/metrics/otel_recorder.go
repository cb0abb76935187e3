package metrics

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	metrics "github.com/tigerroll/pipelines/pkg/web/core/metrics"
)

// OTelMetricRecorder records request metrics through an OpenTelemetry Meter.
// Instrument names follow the OTel HTTP server semantic conventions.
type OTelMetricRecorder struct {
	duration     metric.Float64Histogram
	responseSize metric.Int64Histogram
}

// NewOTelMetricRecorder creates the instruments on meter.
func NewOTelMetricRecorder(meter metric.Meter) (*OTelMetricRecorder, error) {
	duration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of HTTP server requests."),
	)
	if err != nil {
		return nil, err
	}
	responseSize, err := meter.Int64Histogram(
		"http.server.response.body.size",
		metric.WithUnit("By"),
		metric.WithDescription("Size of HTTP server response bodies."),
	)
	if err != nil {
		return nil, err
	}
	return &OTelMetricRecorder{duration: duration, responseSize: responseSize}, nil
}

// RecordRequest records one completed request.
func (r *OTelMetricRecorder) RecordRequest(ctx context.Context, obs metrics.RequestObservation) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", obs.Method),
		attribute.String("http.route", obs.Route),
		attribute.String("http.response.status_code", strconv.Itoa(obs.Status)),
	)
	r.duration.Record(ctx, obs.Duration.Seconds(), attrs)
	r.responseSize.Record(ctx, int64(obs.Bytes), attrs)
}

var _ metrics.MetricRecorder = (*OTelMetricRecorder)(nil)
