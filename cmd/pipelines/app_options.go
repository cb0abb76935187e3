package main

import (
	"io/fs"
	"time"

	"go.uber.org/fx"

	appcontroller "github.com/tigerroll/pipelines/internal/controller"
	appview "github.com/tigerroll/pipelines/internal/view"
	config "github.com/tigerroll/pipelines/pkg/web/core/config"
	bootstrap "github.com/tigerroll/pipelines/pkg/web/core/config/bootstrap"
	view "github.com/tigerroll/pipelines/pkg/web/core/view"
	metrics "github.com/tigerroll/pipelines/pkg/web/infrastructure/metrics"
	server "github.com/tigerroll/pipelines/pkg/web/server"
	logger "github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// stopTimeout leaves room for the server's own shutdown timeout.
const stopTimeout = 20 * time.Second

// GetApplicationOptions builds the uber-fx options and returns them as a slice.
// args are the process arguments; only "--key=value" properties are used.
func GetApplicationOptions(args []string, envFilePath string, embeddedConfig config.EmbeddedConfig) []fx.Option {
	var options []fx.Option

	options = append(options, fx.Supply(
		embeddedConfig,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		fx.Annotate(args, fx.ResultTags(`name:"args"`)),
		fx.Annotate(appview.TemplatesFS, fx.As(new(fs.FS)), fx.ResultTags(`name:"viewFS"`)),
	))
	options = append(options, fx.StopTimeout(stopTimeout))
	options = append(options, logger.Module)
	options = append(options, config.Module)
	options = append(options, metrics.Module)
	options = append(options, view.Module)
	options = append(options, server.Module)
	options = append(options, bootstrap.Module) // After server.Module so the startup report follows the bind.
	options = append(options, appcontroller.Module)

	return options
}
