// Package view resolves logical view names to renderable documents.
package view

import "io"

// View renders a document for a model.
type View interface {
	Name() string
	Render(w io.Writer, model map[string]any) error
}

// Resolver maps a view name such as "index" to a View.
type Resolver interface {
	Resolve(name string) (View, error)
}
