package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-localenav/pkg/interfaces"
)

const (
	rootModule        = "localenav"
	documentModule    = "localenav.document"
	translationModule = "localenav.translation"
	navigationModule  = "localenav.navigation"
	consistencyModule = "localenav.consistency"
	markdownModule    = "localenav.markdown"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DocumentLogger returns the logger namespace reserved for document services.
func DocumentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentModule)
}

// TranslationLogger returns the logger namespace reserved for sibling resolution.
func TranslationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translationModule)
}

// NavigationLogger returns the logger namespace reserved for locale-map and
// switcher code paths.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// ConsistencyLogger returns the logger namespace reserved for consistency scans.
func ConsistencyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, consistencyModule)
}

// MarkdownLogger returns the logger namespace reserved for seed imports.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithDocumentContext enriches the provided logger with common document
// fields such as locale, slug, and kind. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, locale, slug, kind string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields["locale"] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields["slug"] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields["kind"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
