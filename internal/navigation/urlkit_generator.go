package navigation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-localenav/internal/document"
	urlkit "github.com/goliatone/go-urlkit"
)

// URLKitGeneratorOptions configures the go-urlkit backed generator.
type URLKitGeneratorOptions struct {
	Manager      *urlkit.RouteManager
	LocaleGroups map[string]string
	Routes       map[string]string
	SlugParam    string
}

// URLKitGenerator resolves document paths through a go-urlkit RouteManager.
// It complements the static prefix-table Generator for hosts that already
// maintain their route catalogue in urlkit: each locale maps to a route
// group, each document kind to a named route within it.
type URLKitGenerator struct {
	manager      *urlkit.RouteManager
	localeGroups map[string]string
	routes       map[string]string
	slugParam    string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewURLKitGenerator constructs a generator backed by go-urlkit.
func NewURLKitGenerator(opts URLKitGeneratorOptions) *URLKitGenerator {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &URLKitGenerator{
		manager:      opts.Manager,
		localeGroups: opts.LocaleGroups,
		routes:       opts.Routes,
		slugParam:    opts.SlugParam,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// Resolve builds the path for a document kind and slug in the locale's route
// group. An unconfigured locale or kind yields the empty string without error
// so callers can fall back to the static generator.
func (g *URLKitGenerator) Resolve(kind document.Kind, locale, slug string) (string, error) {
	if g == nil || g.manager == nil {
		return "", nil
	}

	localeKey := strings.ToLower(strings.TrimSpace(locale))
	groupPath, ok := g.localeGroups[localeKey]
	if !ok || strings.TrimSpace(groupPath) == "" {
		return "", nil
	}

	routeName, ok := g.routes[kind.String()]
	if !ok || strings.TrimSpace(routeName) == "" {
		return "", nil
	}

	group, err := g.groupForPath(strings.TrimSpace(groupPath))
	if err != nil || group == nil {
		return "", err
	}

	builder, err := g.safeBuilder(group, strings.TrimSpace(routeName))
	if err != nil {
		return "", err
	}

	if !kind.Slugless() && strings.TrimSpace(slug) != "" {
		builder.WithParam(g.slugParam, strings.TrimSpace(slug))
	}

	return builder.Build()
}

func (g *URLKitGenerator) groupForPath(path string) (*urlkit.Group, error) {
	g.mu.RLock()
	group, ok := g.groupCache[path]
	g.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	root, err := lookupGroup(g.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	g.groupCache[path] = current
	g.mu.Unlock()
	return current, nil
}

func (g *URLKitGenerator) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("navigation: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("navigation: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("navigation: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("navigation: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
