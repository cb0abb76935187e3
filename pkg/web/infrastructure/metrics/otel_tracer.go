package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	config "github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	logger "github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// NewTracerProvider provides the TracerProvider used by the server's tracing middleware.
// With tracing disabled it is a no-op provider. Otherwise spans are batched to an
// OTLP collector, the provider is installed globally together with the W3C
// trace-context propagator, and it is flushed when the application stops.
func NewTracerProvider(lc fx.Lifecycle, cfg *config.Config) (trace.TracerProvider, error) {
	tc := cfg.Pipelines.Tracing
	if !tc.Enabled {
		logger.Debugf("Tracing disabled.")
		return noop.NewTracerProvider(), nil
	}

	exporter, err := newSpanExporter(context.Background(), tc.OTLPProtocol, tc.OTLPEndpoint)
	if err != nil {
		return nil, exception.NewAppErrorf("tracing", "failed to create OTLP span exporter for %s", tc.OTLPEndpoint, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(tc.ServiceName)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Flushing spans to %s.", tc.OTLPEndpoint)
			return tp.Shutdown(ctx)
		},
	})
	logger.Infof("Tracing enabled: exporting spans over OTLP/%s to %s", tc.OTLPProtocol, tc.OTLPEndpoint)
	return tp, nil
}
