// Package controller defines how application code contributes request handlers.
//
// A handler does not write the response itself. It returns a ModelAndView naming
// the view to render, and the server resolves and renders that view.
package controller

import (
	"net/http"

	"go.uber.org/fx"
)

// ControllerGroup is the Fx value group every Controller is provided into.
// The server collects the whole group at startup.
const ControllerGroup = `group:"controllers"`

// ModelAndView is the result of a handler: a logical view name and the data it renders.
type ModelAndView struct {
	View  string
	Model map[string]any
}

// HandlerFunc handles one request and names the view to render.
type HandlerFunc func(r *http.Request) ModelAndView

// Mapping binds an HTTP method and path to a handler.
type Mapping struct {
	Method  string
	Path    string
	Handler HandlerFunc
}

// Controller exposes a set of request mappings.
type Controller interface {
	Mappings() []Mapping
}

// AsController annotates a constructor so its result joins the controllers group.
//
//	fx.Provide(controller.AsController(NewWelcomeController))
func AsController(constructor interface{}) interface{} {
	return fx.Annotate(
		constructor,
		fx.As(new(Controller)),
		fx.ResultTags(ControllerGroup),
	)
}
