package dashboard

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// InfoRenderer converts project info markdown into HTML for dashboard rows.
type InfoRenderer interface {
	RenderInfo(markdown string) (string, error)
}

// GoldmarkInfoRenderer renders project descriptions with the goldmark engine.
// The renderer is stateless so a single instance can serve all requests.
type GoldmarkInfoRenderer struct {
	engine goldmark.Markdown
}

// NewGoldmarkInfoRenderer builds a renderer with GFM, linkify, and auto
// heading ids enabled. Raw HTML stays escaped since info text is
// contributor supplied.
func NewGoldmarkInfoRenderer() *GoldmarkInfoRenderer {
	return &GoldmarkInfoRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

func (r *GoldmarkInfoRenderer) RenderInfo(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render info: %w", err)
	}
	return buf.String(), nil
}
