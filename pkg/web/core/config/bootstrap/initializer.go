package bootstrap

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
	"github.com/tigerroll/pipelines/pkg/web/server"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// WebInitializer records when the application began starting and under which name it runs.
type WebInitializer struct {
	appName   string
	startedAt time.Time
}

// NewWebInitializer creates a new instance of WebInitializer.
func NewWebInitializer(cfg *config.TracingConfig) *WebInitializer {
	return &WebInitializer{
		appName:   cfg.ServiceName,
		startedAt: time.Now(),
	}
}

// AppName returns the application name reported in startup messages.
func (i *WebInitializer) AppName() string {
	return i.appName
}

// Uptime returns the time elapsed since the initializer was created.
func (i *WebInitializer) Uptime() time.Duration {
	return time.Since(i.startedAt)
}

// ApplyLoggingConfigHook reports the effective logging level.
func ApplyLoggingConfigHook(cfg *config.LoggingConfig) {
	if cfg.Level != "" {
		logger.Infof("Log level set to: %s", cfg.Level)
	}
}

// ReportStartupHook registers an Fx lifecycle hook that announces the running server.
// It must be invoked after the server's own hook so that the listener is already bound.
// Defined as a named function for use with fx.Invoke.
func ReportStartupHook(lc fx.Lifecycle, initializer *WebInitializer, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: onStartReport(initializer, srv),
		OnStop:  onStopApplication(initializer),
	})
}

func onStartReport(initializer *WebInitializer, srv *server.Server) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Infof("Started %s in %s, serving on http://%s",
			initializer.AppName(), initializer.Uptime().Round(time.Millisecond), srv.Addr())
		return nil
	}
}

func onStopApplication(initializer *WebInitializer) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Infof("%s is shutting down.", initializer.AppName())
		return nil
	}
}
