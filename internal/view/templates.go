// Package view embeds the application's page templates.
package view

import (
	"embed"
)

// TemplatesFS holds every page below templates/.
//
//go:embed templates/*.html
var TemplatesFS embed.FS
