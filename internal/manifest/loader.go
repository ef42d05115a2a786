package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// LoaderConfig configures manifest discovery within a filesystem.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader discovers and parses manifest files.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single manifest.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Manifest, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := filepath.ToSlash(filepath.Clean(path))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("manifest loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("manifest loader stat %s: %w", rel, err)
	}
	return Parse(rel, data, info.ModTime())
}

// LoadDirectory discovers manifests under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Manifest, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root := filepath.ToSlash(filepath.Clean(dir))
	if root == "" {
		root = "."
	}

	var manifests []*Manifest
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !l.shouldRecurse(root, path) {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}
		parsed, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		manifests = append(manifests, parsed)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].FilePath < manifests[j].FilePath
	})
	return manifests, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		target = path
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
