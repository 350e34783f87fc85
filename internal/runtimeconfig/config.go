package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDefaultLocaleRequired indicates the module cannot run without a default locale.
var ErrDefaultLocaleRequired = errors.New("localenav config: default locale is required")

// ErrDefaultLocaleUnsupported indicates the default locale is missing from the supported set.
var ErrDefaultLocaleUnsupported = errors.New("localenav config: default locale must be listed in locales")

// ErrLocaleCodeEmpty indicates a blank entry in the supported locale list.
var ErrLocaleCodeEmpty = errors.New("localenav config: locale codes must be non-empty")

// ErrPathPrefixUnknownLocale indicates a path prefix references an unsupported locale.
var ErrPathPrefixUnknownLocale = errors.New("localenav config: path prefix references unknown locale")

var ErrCommandsRequireEnabledModule = errors.New("localenav config: command registration requires the module to be enabled")
var ErrMarkdownFeatureRequired = errors.New("localenav config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("localenav config: markdown content directory is required when markdown is enabled")
var ErrLoggingProviderRequired = errors.New("localenav config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("localenav config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("localenav config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("localenav config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the module.
// Locale configuration is always threaded explicitly from here into services;
// no package in this module reads an ambient default-locale constant.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Locales       []string
	Paths         PathsConfig
	Navigation    NavigationConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Features      Features
	Commands      CommandsConfig
	Markdown      MarkdownConfig
	Logging       LoggingConfig
}

// PathsConfig carries the localized path prefix table keyed by document kind
// and locale code. Kinds without an entry fall back to bare "/{slug}" paths.
type PathsConfig struct {
	Prefixes map[string]map[string]string
}

// NavigationConfig captures routing configuration for pathname resolution.
// RouteConfig is optional; when set, the urlkit-backed generator is available
// in addition to the static prefix-table generator.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitGeneratorConfig
}

// URLKitGeneratorConfig configures the go-urlkit based pathname generator.
type URLKitGeneratorConfig struct {
	LocaleGroups map[string]string
	Routes       map[string]string
	SlugParam    string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
	Driver   string
}

// CacheConfig captures repository cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles module functionality.
type Features struct {
	Markdown bool
	Logger   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// MarkdownConfig captures filesystem behaviour for localized seed content.
type MarkdownConfig struct {
	Enabled        bool
	ContentDir     string
	Pattern        string
	Recursive      bool
	LocalePatterns map[string]string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: English-only, in-memory
// storage, the "blog" collection prefix from the reference site layout.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Paths: PathsConfig{
			Prefixes: map[string]map[string]string{
				"article":       {"en": "blog"},
				"article_index": {"en": "blog"},
			},
		},
		Storage: StorageConfig{
			Provider: "memory",
			Driver:   "sqlite",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{},
		Features:   Features{},
		Commands:   CommandsConfig{},
		Markdown: MarkdownConfig{
			ContentDir:     "content",
			Pattern:        "*.md",
			Recursive:      true,
			LocalePatterns: map[string]string{},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	defaultLocale := strings.ToLower(strings.TrimSpace(cfg.DefaultLocale))
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}

	supported := map[string]struct{}{}
	for _, code := range cfg.Locales {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed == "" {
			return ErrLocaleCodeEmpty
		}
		supported[trimmed] = struct{}{}
	}
	if len(supported) > 0 {
		if _, ok := supported[defaultLocale]; !ok {
			return ErrDefaultLocaleUnsupported
		}
	}

	for kind, prefixes := range cfg.Paths.Prefixes {
		for locale := range prefixes {
			trimmed := strings.ToLower(strings.TrimSpace(locale))
			if len(supported) > 0 {
				if _, ok := supported[trimmed]; !ok {
					return fmt.Errorf("%w: %s (kind %s)", ErrPathPrefixUnknownLocale, locale, kind)
				}
			}
		}
	}

	if cfg.Commands.AutoRegisterDispatcher && !cfg.Enabled {
		return ErrCommandsRequireEnabledModule
	}

	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// SupportedLocales returns the normalized locale codes, deduplicated in
// configuration order, with the default locale guaranteed present.
func (cfg Config) SupportedLocales() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(cfg.Locales)+1)
	for _, code := range cfg.Locales {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	defaultLocale := strings.ToLower(strings.TrimSpace(cfg.DefaultLocale))
	if defaultLocale != "" {
		if _, ok := seen[defaultLocale]; !ok {
			out = append(out, defaultLocale)
		}
	}
	return out
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
