package render

import (
	"embed"
	"net/http"
)

//go:embed templates
var templateFS embed.FS

// DefaultRenderer returns a renderer backed by the embedded dashboard
// templates.
func DefaultRenderer() (*Pongo2Renderer, error) {
	return NewPongo2Renderer(Options{
		FS:      http.FS(templateFS),
		BaseDir: "templates",
	})
}
