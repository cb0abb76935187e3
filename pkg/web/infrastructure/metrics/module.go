package metrics

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"

	config "github.com/tigerroll/pipelines/pkg/web/core/config"
	metrics "github.com/tigerroll/pipelines/pkg/web/core/metrics"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	logger "github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// NewMetricRecorder selects the metrics backend from configuration:
// a no-op recorder when metrics are disabled, the Prometheus recorder, or an
// OpenTelemetry recorder pushing to an OTLP collector.
func NewMetricRecorder(lc fx.Lifecycle, cfg *config.Config) (metrics.MetricRecorder, error) {
	mc := cfg.Pipelines.Management
	if !mc.MetricsEnabled {
		logger.Debugf("Metrics disabled.")
		return metrics.NewNoOpMetricRecorder(), nil
	}

	switch mc.MetricsExporter {
	case config.MetricsExporterOTLP:
		exporter, err := newMetricExporter(context.Background(), mc.OTLPProtocol, mc.OTLPEndpoint)
		if err != nil {
			return nil, exception.NewAppErrorf("metrics", "failed to create OTLP metric exporter for %s", mc.OTLPEndpoint, err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
			sdkmetric.WithResource(newResource(cfg.Pipelines.Tracing.ServiceName)),
		)
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return mp.Shutdown(ctx)
			},
		})
		logger.Infof("Metrics enabled: exporting over OTLP/%s to %s", mc.OTLPProtocol, mc.OTLPEndpoint)
		recorder, err := NewOTelMetricRecorder(mp.Meter(instrumentationName))
		if err != nil {
			return nil, exception.NewAppError("metrics", "failed to create OTel instruments", err)
		}
		return recorder, nil
	default:
		logger.Infof("Metrics enabled: Prometheus endpoint at %s", mc.MetricsPath)
		return NewPrometheusRecorder(), nil
	}
}

// Module is an Fx module that provides the MetricRecorder and the TracerProvider.
var Module = fx.Options(
	fx.Provide(NewMetricRecorder),
	fx.Provide(NewTracerProvider),
)
