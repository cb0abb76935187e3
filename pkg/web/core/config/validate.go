package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// Validate checks every section of cfg and reports all problems at once.
// Each problem wraps exception.ErrInvalidConfig.
func Validate(cfg *Config) error {
	var result *multierror.Error
	invalid := func(format string, a ...interface{}) {
		result = multierror.Append(result, fmt.Errorf("%w: %s", exception.ErrInvalidConfig, fmt.Sprintf(format, a...)))
	}

	p := cfg.Pipelines

	if p.Server.Port < 0 || p.Server.Port > 65535 {
		invalid("server.port %d is outside 0-65535", p.Server.Port)
	}
	if p.Server.ReadHeaderTimeoutSeconds < 0 {
		invalid("server.read_header_timeout_seconds must not be negative")
	}
	if p.Server.IdleTimeoutSeconds < 0 {
		invalid("server.idle_timeout_seconds must not be negative")
	}
	if p.Server.ShutdownTimeoutSeconds < 0 {
		invalid("server.shutdown_timeout_seconds must not be negative")
	}

	if p.View.Suffix == "" {
		invalid("view.suffix must not be empty")
	}

	if p.Management.MetricsEnabled {
		switch p.Management.MetricsExporter {
		case MetricsExporterPrometheus:
			if !strings.HasPrefix(p.Management.MetricsPath, "/") {
				invalid("management.metrics_path '%s' must start with '/'", p.Management.MetricsPath)
			}
		case MetricsExporterOTLP:
			if p.Management.OTLPEndpoint == "" {
				invalid("management.otlp_endpoint is required for the otlp exporter")
			}
			if !validProtocol(p.Management.OTLPProtocol) {
				invalid("management.otlp_protocol '%s' must be http or grpc", p.Management.OTLPProtocol)
			}
		default:
			invalid("management.metrics_exporter '%s' must be prometheus or otlp", p.Management.MetricsExporter)
		}
	}

	if p.Tracing.Enabled {
		if p.Tracing.OTLPEndpoint == "" {
			invalid("tracing.otlp_endpoint is required when tracing is enabled")
		}
		if !validProtocol(p.Tracing.OTLPProtocol) {
			invalid("tracing.otlp_protocol '%s' must be http or grpc", p.Tracing.OTLPProtocol)
		}
	}

	if _, ok := logger.ParseLevel(p.System.Logging.Level); !ok {
		invalid("system.logging.level '%s' is not one of DEBUG, INFO, WARN, ERROR, FATAL", p.System.Logging.Level)
	}

	return result.ErrorOrNil()
}

func validProtocol(protocol string) bool {
	return protocol == OTLPProtocolHTTP || protocol == OTLPProtocolGRPC
}
