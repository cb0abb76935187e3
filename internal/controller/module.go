package controller

import (
	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/core/controller"
)

// Module registers the application's controllers into the controllers group.
var Module = fx.Options(
	fx.Provide(controller.AsController(NewWelcomeController)),
)
