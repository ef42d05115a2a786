package interfaces

import (
	"io"
)

// TemplateRenderer is the rendering contract consumed by the admin surface.
// The default implementation wraps pongo2; hosts can substitute their own
// engine as long as named templates resolve.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
