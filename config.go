package localenav

import "github.com/goliatone/go-localenav/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired        = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnsupported     = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrLocaleCodeEmpty              = runtimeconfig.ErrLocaleCodeEmpty
	ErrPathPrefixUnknownLocale      = runtimeconfig.ErrPathPrefixUnknownLocale
	ErrCommandsRequireEnabledModule = runtimeconfig.ErrCommandsRequireEnabledModule
	ErrMarkdownFeatureRequired      = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired   = runtimeconfig.ErrMarkdownContentDirRequired
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config                = runtimeconfig.Config
	PathsConfig           = runtimeconfig.PathsConfig
	NavigationConfig      = runtimeconfig.NavigationConfig
	URLKitGeneratorConfig = runtimeconfig.URLKitGeneratorConfig
	StorageConfig         = runtimeconfig.StorageConfig
	CacheConfig           = runtimeconfig.CacheConfig
	Features              = runtimeconfig.Features
	CommandsConfig        = runtimeconfig.CommandsConfig
	MarkdownConfig        = runtimeconfig.MarkdownConfig
	LoggingConfig         = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
