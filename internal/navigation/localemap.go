package navigation

import (
	"strings"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/translation"
)

// TranslationSet maps locale codes to the sibling reference serving that
// locale. One instance is shared by every path key of the same group, so a
// lookup from any locale's path sees the identical set.
type TranslationSet map[string]document.SiblingRef

// LocaleMap indexes shared translation sets by absolute pathname for O(1)
// switcher lookups.
type LocaleMap struct {
	entries map[string]TranslationSet
}

// BuildMap flattens group snapshots into the bidirectional path index. Every
// routable sibling registers the group's shared set under its own absolute
// path; groups without any routable sibling produce no entries.
func BuildMap(generator *Generator, snapshots []translation.GroupSnapshot) *LocaleMap {
	entries := make(map[string]TranslationSet)

	for _, snapshot := range snapshots {
		set := make(TranslationSet, len(snapshot.Refs))
		for _, ref := range snapshot.Refs {
			if !ref.Kind.Routable() {
				continue
			}
			set[ref.Locale] = ref
		}
		if len(set) == 0 {
			continue
		}
		for locale, ref := range set {
			path := generator.AbsolutePath(ref.Kind, locale, ref.Slug)
			if path == "" {
				continue
			}
			entries[path] = set
		}
	}

	return &LocaleMap{entries: entries}
}

// Lookup resolves the translation set registered under the pathname.
func (m *LocaleMap) Lookup(path string) (TranslationSet, bool) {
	if m == nil {
		return nil, false
	}
	set, ok := m.entries[normalizePath(path)]
	return set, ok
}

// Len reports the number of registered path keys.
func (m *LocaleMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
