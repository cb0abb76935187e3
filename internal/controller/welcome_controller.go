// Package controller contains the application's request handlers.
package controller

import (
	"net/http"

	"github.com/tigerroll/pipelines/pkg/web/core/controller"
)

// IndexView is the view rendered for the root path.
const IndexView = "index"

// WelcomeController serves the welcome page.
type WelcomeController struct{}

// NewWelcomeController creates a new instance of WelcomeController.
func NewWelcomeController() *WelcomeController {
	return &WelcomeController{}
}

// HandleRoot names the index view. The request is not inspected.
func (c *WelcomeController) HandleRoot(_ *http.Request) controller.ModelAndView {
	return controller.ModelAndView{View: IndexView}
}

// Mappings implements controller.Controller.
func (c *WelcomeController) Mappings() []controller.Mapping {
	return []controller.Mapping{
		{Method: http.MethodGet, Path: "/", Handler: c.HandleRoot},
	}
}
