// Package render provides a pongo2 backed template renderer for dashboard
// pages and permission forms.
package render

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-l10n/pkg/interfaces"
)

// Options configures the renderer.
type Options struct {
	// FS serves template sources, typically an embed.FS wrapped with
	// http.FS. When nil only RenderString works.
	FS http.FileSystem
	// BaseDir is joined with template names on lookup.
	BaseDir string
}

// Pongo2Renderer implements interfaces.TemplateRenderer on top of pongo2.
type Pongo2Renderer struct {
	set *pongo2.TemplateSet

	mu      sync.RWMutex
	globals pongo2.Context
}

var _ interfaces.TemplateRenderer = (*Pongo2Renderer)(nil)

// NewPongo2Renderer constructs a renderer. Template lookups resolve against
// the provided filesystem.
func NewPongo2Renderer(opts Options) (*Pongo2Renderer, error) {
	renderer := &Pongo2Renderer{
		globals: pongo2.Context{},
	}

	if opts.FS != nil {
		loader, err := pongo2.NewHttpFileSystemLoader(opts.FS, opts.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("render: template loader: %w", err)
		}
		renderer.set = pongo2.NewSet("l10n", loader)
	} else {
		renderer.set = pongo2.NewSet("l10n", pongo2.MustNewLocalFileSystemLoader(""))
	}

	return renderer, nil
}

// Render resolves a template by name and executes it.
func (r *Pongo2Renderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

// RenderTemplate resolves a template by name and executes it with the
// merged global and call contexts.
func (r *Pongo2Renderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("render: template name required")
	}
	template, err := r.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("render: load template %q: %w", name, err)
	}
	return r.execute(template, data, out...)
}

// RenderString executes an inline template source.
func (r *Pongo2Renderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	template, err := r.set.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("render: parse template: %w", err)
	}
	return r.execute(template, data, out...)
}

// RegisterFilter exposes a custom filter to every template.
func (r *Pongo2Renderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return fmt.Errorf("render: filter name and function required")
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		result, err := fn(in.Interface(), param.Interface())
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the context applied to every render.
func (r *Pongo2Renderer) GlobalContext(data any) error {
	ctx, err := toContext(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, value := range ctx {
		r.globals[key] = value
	}
	return nil
}

func (r *Pongo2Renderer) execute(template *pongo2.Template, data any, out ...io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", err
	}

	r.mu.RLock()
	merged := make(pongo2.Context, len(r.globals)+len(ctx))
	for key, value := range r.globals {
		merged[key] = value
	}
	r.mu.RUnlock()
	for key, value := range ctx {
		merged[key] = value
	}

	rendered, err := template.Execute(merged)
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("render: write output: %w", err)
		}
	}
	return rendered, nil
}

func toContext(data any) (pongo2.Context, error) {
	switch value := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return value, nil
	case map[string]any:
		return pongo2.Context(value), nil
	default:
		return nil, fmt.Errorf("render: unsupported context type %T", data)
	}
}
