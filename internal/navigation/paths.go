package navigation

import (
	"strings"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/runtimeconfig"
)

// Generator renders localized pathnames from the static prefix table. It is
// deterministic and side-effect free: the same kind, locale, and slug always
// produce the same path.
type Generator struct {
	prefixes map[string]map[string]string
}

// NewGenerator constructs a generator over the configured prefix table.
func NewGenerator(paths runtimeconfig.PathsConfig) *Generator {
	prefixes := make(map[string]map[string]string, len(paths.Prefixes))
	for kind, locales := range paths.Prefixes {
		normalized := make(map[string]string, len(locales))
		for locale, prefix := range locales {
			normalized[strings.ToLower(strings.TrimSpace(locale))] = trimSlashes(prefix)
		}
		prefixes[strings.ToLower(strings.TrimSpace(kind))] = normalized
	}
	return &Generator{prefixes: prefixes}
}

// RelativePath renders the path below the locale root, without leading slash.
// The homepage renders to the empty string, a collection index to its
// localized prefix alone, a collection entry to "{prefix}/{slug}", and plain
// pages to their slug. Kinds with no prefix configured fall back to the bare
// slug. Non-routable kinds yield the empty string.
func (g *Generator) RelativePath(kind document.Kind, locale, slug string) string {
	if !kind.Routable() {
		return ""
	}

	slug = trimSlashes(slug)

	switch {
	case kind == document.KindHome:
		return ""
	case kind.Prefixed():
		prefix := g.prefixFor(kind, locale)
		if kind.Slugless() {
			if prefix != "" {
				return prefix
			}
			return slug
		}
		if prefix == "" {
			return slug
		}
		return prefix + "/" + slug
	default:
		return slug
	}
}

// AbsolutePath renders the locale-prefixed site path, always with a leading
// slash and never with a trailing one (except the bare locale root).
func (g *Generator) AbsolutePath(kind document.Kind, locale, slug string) string {
	if !kind.Routable() {
		return ""
	}

	locale = strings.ToLower(strings.TrimSpace(locale))
	rel := g.RelativePath(kind, locale, slug)
	if rel == "" {
		return "/" + locale
	}
	return "/" + locale + "/" + rel
}

// LocaleRoot renders the locale's root path.
func (g *Generator) LocaleRoot(locale string) string {
	return "/" + strings.ToLower(strings.TrimSpace(locale))
}

func (g *Generator) prefixFor(kind document.Kind, locale string) string {
	locales, ok := g.prefixes[kind.String()]
	if !ok {
		return ""
	}
	return locales[strings.ToLower(strings.TrimSpace(locale))]
}

func trimSlashes(value string) string {
	return strings.Trim(strings.TrimSpace(value), "/")
}
