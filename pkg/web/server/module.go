package server

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/core/controller"
	metrics "github.com/tigerroll/pipelines/pkg/web/core/metrics"
	"github.com/tigerroll/pipelines/pkg/web/core/view"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// ServerParams defines the dependencies for NewServer.
type ServerParams struct {
	fx.In
	Config         *config.ServerConfig
	Management     *config.ManagementConfig
	Controllers    []controller.Controller `group:"controllers"`
	Resolver       view.Resolver
	Recorder       metrics.MetricRecorder
	TracerProvider trace.TracerProvider
}

// NewServer collects every controller in the "controllers" group, builds the
// dispatcher and middleware chain around it and returns the unstarted Server.
func NewServer(p ServerParams) (*Server, error) {
	if len(p.Controllers) == 0 {
		logger.Warnf("No controllers registered; every request will be answered with 404.")
	}

	d := NewDispatcher(p.Resolver)
	for _, c := range p.Controllers {
		if err := d.Register(c); err != nil {
			return nil, err
		}
	}

	if p.Management.MetricsEnabled {
		if exposer, ok := p.Recorder.(metrics.Exposer); ok {
			if err := d.Handle("GET", p.Management.MetricsPath, exposer.Handler()); err != nil {
				return nil, exception.NewAppErrorf(moduleName, "failed to mount metrics endpoint at %s", p.Management.MetricsPath, err)
			}
			logger.Infof("Mapped \"GET %s\" onto the metrics endpoint", p.Management.MetricsPath)
		}
	}

	handler := Chain(d,
		RequestID(),
		AccessLog(),
		Tracing(p.TracerProvider, d.RouteLabel),
		Metrics(p.Recorder, d.RouteLabel),
	)
	return New(p.Config, handler), nil
}

// RegisterServerLifecycle starts the server with the application and stops it on shutdown.
// If the server stops serving on its own the application is shut down with exit code 1.
// Defined as a named function for use with fx.Invoke.
func RegisterServerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := srv.Start(ctx); err != nil {
				return err
			}
			go func() {
				if err, ok := <-srv.Done(); ok && err != nil {
					if shutdownErr := shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
						logger.Errorf("Failed to shutdown application: %v", shutdownErr)
					}
				}
			}()
			return nil
		},
		OnStop: srv.Stop,
	})
}

// Module provides the Server and binds it to the application lifecycle.
var Module = fx.Options(
	fx.Provide(NewServer),
	fx.Invoke(RegisterServerLifecycle),
)
