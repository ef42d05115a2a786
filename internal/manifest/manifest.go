// Package manifest imports project manifests from the filesystem. A manifest
// is a Markdown file whose YAML frontmatter declares the project (name, slug,
// priority, deadline, locales) and whose body becomes the project info text.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-l10n/internal/domain"
)

var (
	ErrSlugMissing = errors.New("manifest: slug is required")
	ErrNameMissing = errors.New("manifest: name is required")
)

// LocaleRef names one locale a manifest wants enabled for its project.
type LocaleRef struct {
	Code     string `yaml:"code" json:"code"`
	Readonly bool   `yaml:"readonly" json:"readonly,omitempty"`
}

// Manifest is the parsed form of one project manifest file.
type Manifest struct {
	FilePath   string            `json:"file_path"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug"`
	Priority   domain.Priority   `json:"priority"`
	Deadline   *time.Time        `json:"deadline,omitempty"`
	Visibility domain.Visibility `json:"visibility"`
	System     bool              `json:"system,omitempty"`
	Locales    []LocaleRef       `json:"locales,omitempty"`
	Info       string            `json:"info,omitempty"`
	Modified   time.Time         `json:"modified"`
}

type manifestEnvelope struct {
	Name       string      `yaml:"name"`
	Slug       string      `yaml:"slug"`
	Priority   int         `yaml:"priority"`
	Deadline   *time.Time  `yaml:"deadline"`
	Visibility string      `yaml:"visibility"`
	System     bool        `yaml:"system"`
	Locales    []LocaleRef `yaml:"locales"`
}

// Parse extracts the frontmatter and info body from manifest source bytes.
func Parse(path string, source []byte, modified time.Time) (*Manifest, error) {
	var envelope manifestEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &envelope)
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	slug := strings.TrimSpace(envelope.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: %s", ErrSlugMissing, path)
	}
	name := strings.TrimSpace(envelope.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", ErrNameMissing, path)
	}

	priority := domain.Priority(envelope.Priority)
	if envelope.Priority == 0 {
		priority = domain.PriorityLowest
	}

	return &Manifest{
		FilePath:   path,
		Name:       name,
		Slug:       slug,
		Priority:   priority,
		Deadline:   envelope.Deadline,
		Visibility: domain.NormalizeVisibility(envelope.Visibility),
		System:     envelope.System,
		Locales:    normalizeLocaleRefs(envelope.Locales),
		Info:       strings.TrimSpace(string(body)),
		Modified:   modified,
	}, nil
}

func normalizeLocaleRefs(refs []LocaleRef) []LocaleRef {
	out := make([]LocaleRef, 0, len(refs))
	seen := map[string]bool{}
	for _, ref := range refs {
		code := strings.ToLower(strings.TrimSpace(ref.Code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, LocaleRef{Code: code, Readonly: ref.Readonly})
	}
	return out
}
