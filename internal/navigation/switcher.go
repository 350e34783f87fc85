package navigation

import (
	"strings"
)

// Target is one language switcher destination. Missing marks targets whose
// locale has no resolvable sibling, so consumers can mute the entry while
// still rendering a stable destination.
type Target struct {
	Locale  string
	Path    string
	Missing bool
}

// Switcher resolves language switcher destinations against a built locale
// map. It holds no mutable state; rebuild the map and construct a new
// switcher when content changes.
type Switcher struct {
	generator *Generator
	localeMap *LocaleMap
	locales   []string
}

// NewSwitcher constructs a switcher over the map for the supported locales.
func NewSwitcher(generator *Generator, localeMap *LocaleMap, locales []string) *Switcher {
	normalized := make([]string, 0, len(locales))
	for _, locale := range locales {
		if trimmed := strings.ToLower(strings.TrimSpace(locale)); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return &Switcher{
		generator: generator,
		localeMap: localeMap,
		locales:   normalized,
	}
}

// ResolveTarget computes where the switcher sends a visitor on currentPath
// who picks targetLocale. Unmapped paths fall back to the target locale root.
// Mapped paths with a sibling in the target locale go to the sibling's path.
// Mapped paths without one render the current entry's slug under the target
// locale's pattern: the destination may 404, which signals the missing
// translation instead of silently swapping content.
func (s *Switcher) ResolveTarget(currentPath, targetLocale string) Target {
	targetLocale = strings.ToLower(strings.TrimSpace(targetLocale))

	set, ok := s.localeMap.Lookup(currentPath)
	if !ok {
		return Target{
			Locale: targetLocale,
			Path:   s.generator.LocaleRoot(targetLocale),
		}
	}

	if ref, ok := set[targetLocale]; ok {
		return Target{
			Locale: targetLocale,
			Path:   s.generator.AbsolutePath(ref.Kind, targetLocale, ref.Slug),
		}
	}

	current, ok := set[localeFromPath(currentPath)]
	if !ok {
		for _, ref := range set {
			current = ref
			break
		}
	}

	return Target{
		Locale:  targetLocale,
		Path:    s.generator.AbsolutePath(current.Kind, targetLocale, current.Slug),
		Missing: true,
	}
}

// Targets returns one destination per supported locale for the path, in
// configured locale order.
func (s *Switcher) Targets(currentPath string) []Target {
	out := make([]Target, 0, len(s.locales))
	for _, locale := range s.locales {
		out = append(out, s.ResolveTarget(currentPath, locale))
	}
	return out
}

// localeFromPath extracts the leading locale segment of an absolute path.
func localeFromPath(path string) string {
	trimmed := strings.Trim(normalizePath(path), "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
