package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-localenav/internal/document"
)

// SeedDocument is one parsed seed file ready for import.
type SeedDocument struct {
	Path           string
	Kind           document.Kind
	Locale         string
	Slug           string
	Title          string
	SortOrder      *int
	TranslationKey string
	Status         string
	Payload        map[string]any
	Checksum       []byte
}

// LoaderConfig configures seed file discovery.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader discovers and parses localized markdown seed files. The frontmatter
// carries locale, kind, slug, title, sort order and translation key; the body
// is rendered to HTML into the payload.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
	renderer  *Renderer
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
		renderer:  NewRenderer(),
	}
}

// LoadFile reads and parses a single seed file.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*SeedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := path.Clean(strings.TrimPrefix(filePath, "./"))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", rel, err)
	}

	kind, ok := document.ParseKind(meta.Kind)
	if !ok {
		return nil, fmt.Errorf("markdown: %s: %w (%q)", rel, document.ErrKindInvalid, meta.Kind)
	}

	rendered, err := l.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", rel, err)
	}

	payload := make(map[string]any, len(meta.Custom)+2)
	for key, value := range meta.Custom {
		payload[key] = value
	}
	payload["body_html"] = string(rendered)
	if meta.Summary != "" {
		payload["summary"] = meta.Summary
	}

	sum := sha256.Sum256(data)

	return &SeedDocument{
		Path:           rel,
		Kind:           kind,
		Locale:         meta.Locale,
		Slug:           strings.TrimSpace(meta.Slug),
		Title:          strings.TrimSpace(meta.Title),
		SortOrder:      meta.SortOrder,
		TranslationKey: meta.TranslationKey,
		Status:         strings.TrimSpace(meta.Status),
		Payload:        payload,
		Checksum:       sum[:],
	}, nil
}

// LoadDirectory discovers seed files under dir and returns them in stable
// path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*SeedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(dir)
	if root == "" || root == "/" {
		root = "."
	}

	var seeds []*SeedDocument
	walkErr := fs.WalkDir(l.fs, root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !l.recursive && filePath != root {
				return fs.SkipDir
			}
			return nil
		}
		matched, err := path.Match(l.pattern, path.Base(filePath))
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}
		seed, err := l.LoadFile(ctx, filePath)
		if err != nil {
			return err
		}
		seeds = append(seeds, seed)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown: walk %s: %w", root, walkErr)
	}

	sort.Slice(seeds, func(i, j int) bool {
		return seeds[i].Path < seeds[j].Path
	})
	return seeds, nil
}
