package view

import (
	"io/fs"

	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/core/config"
)

// ResolverParams defines the dependencies for NewResolver.
type ResolverParams struct {
	fx.In
	FS     fs.FS `name:"viewFS"`
	Config *config.ViewConfig
}

// NewResolver provides the TemplateResolver as a Resolver.
func NewResolver(p ResolverParams) (Resolver, error) {
	return NewTemplateResolver(p.FS, p.Config)
}

// Module provides the view Resolver. The application supplies the template
// filesystem as an fs.FS named "viewFS".
var Module = fx.Options(
	fx.Provide(NewResolver),
)
