package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	consistencycmd "github.com/goliatone/go-localenav/internal/commands/consistency"
	"github.com/goliatone/go-localenav/internal/consistency"
	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/identity"
	"github.com/goliatone/go-localenav/internal/logging"
	"github.com/goliatone/go-localenav/internal/logging/gologger"
	"github.com/goliatone/go-localenav/internal/markdown"
	"github.com/goliatone/go-localenav/internal/navigation"
	"github.com/goliatone/go-localenav/internal/runtimeconfig"
	"github.com/goliatone/go-localenav/internal/storage"
	"github.com/goliatone/go-localenav/internal/translation"
	"github.com/goliatone/go-localenav/internal/validation"
	"github.com/goliatone/go-localenav/pkg/interfaces"
)

// Container wires repositories, services and navigation helpers together.
// The zero dependency path runs entirely on in-memory repositories; supplying
// a bun.DB through WithBunDB switches storage to SQL, and the cache layer
// wraps the SQL repositories when enabled.
type Container struct {
	config runtimeconfig.Config

	bunDB         *bun.DB
	sqlDB         *sql.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	documentRepo     document.DocumentRepository
	groupRepo        document.GroupRepository
	localeRepo       document.LocaleRepository
	memoryLocaleRepo *document.MemoryLocaleRepository

	documentService document.Service
	payloadSchemas  map[document.Kind]map[string]any
	schemaRegistry  *validation.Registry

	resolver        *translation.Resolver
	pathGenerator   *navigation.Generator
	urlkitGenerator *navigation.URLKitGenerator
	routeManager    *urlkit.RouteManager

	checker  *consistency.Checker
	importer *markdown.Importer
}

// Option mutates the container during construction.
type Option func(*Container)

// WithBunDB switches repositories from the in-memory defaults to bun-backed
// SQL repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB wraps an opened *sql.DB in a bun.DB using the dialect matching
// the configured Storage.Driver. Ignored when WithBunDB is also supplied.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// WithCache supplies an explicit repository cache. Without it the container
// builds a default cache when config enables one and a bun.DB is present.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the logger provider built from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDocumentService replaces the default document service, typically for
// decorating it in tests.
func WithDocumentService(svc document.Service) Option {
	return func(c *Container) {
		c.documentService = svc
	}
}

// WithPayloadSchemas registers JSON schemas validated against document
// payloads on create and publish.
func WithPayloadSchemas(schemas map[document.Kind]map[string]any) Option {
	return func(c *Container) {
		c.payloadSchemas = schemas
	}
}

// NewContainer builds the dependency graph for the module. Construction is
// eager: every wiring problem, from an invalid config to an uncompilable
// payload schema, surfaces here rather than on first use.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}

	c.memoryLocaleRepo = document.NewMemoryLocaleRepository()
	c.documentRepo = document.NewMemoryDocumentRepository()
	c.groupRepo = document.NewMemoryGroupRepository()
	c.localeRepo = c.memoryLocaleRepo
	c.seedLocales()

	for _, opt := range opts {
		opt(c)
	}

	if c.bunDB == nil && c.sqlDB != nil {
		db, err := storage.NewDB(c.sqlDB, cfg.Storage.Driver)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureCacheDefaults(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	c.configureNavigation()
	if err := c.configureServices(); err != nil {
		return nil, err
	}

	return c, nil
}

// seedLocales populates the in-memory locale repository from the configured
// locale list. SQL deployments seed locales through migrations instead, so
// configureRepositories drops this repository when a bun.DB takes over.
func (c *Container) seedLocales() {
	defaultLocale := strings.ToLower(strings.TrimSpace(c.config.DefaultLocale))
	now := time.Now()
	for _, code := range c.config.SupportedLocales() {
		c.memoryLocaleRepo.Put(&document.Locale{
			ID:        identity.LocaleUUID(code),
			Code:      code,
			Display:   localeDisplayName(code),
			IsDefault: code == defaultLocale,
			IsActive:  true,
			CreatedAt: now,
		})
	}
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.config.Features.Logger {
		return nil
	}

	format := c.config.Logging.Format
	if strings.EqualFold(strings.TrimSpace(c.config.Logging.Provider), "console") && format == "" {
		format = "console"
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.config.Logging.Level,
		Format:    format,
		AddSource: c.config.Logging.AddSource,
		Focus:     c.config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("localenav: logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.config.Cache.Enabled || c.bunDB == nil {
		return nil
	}
	if c.cacheService != nil && c.keySerializer != nil {
		return nil
	}

	cacheCfg := repocache.DefaultConfig()
	if c.config.Cache.DefaultTTL > 0 {
		cacheCfg.TTL = c.config.Cache.DefaultTTL
	}

	service, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		return fmt.Errorf("localenav: cache service: %w", err)
	}
	c.cacheService = service
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	if c.cacheService != nil && c.keySerializer != nil {
		c.documentRepo = document.NewBunDocumentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.groupRepo = document.NewBunGroupRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.localeRepo = document.NewBunLocaleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.documentRepo = document.NewBunDocumentRepository(c.bunDB)
		c.groupRepo = document.NewBunGroupRepository(c.bunDB)
		c.localeRepo = document.NewBunLocaleRepository(c.bunDB)
	}

	// Locale rows now live in SQL; the seeded memory copy is no longer
	// authoritative.
	c.memoryLocaleRepo = nil
}

func (c *Container) configureNavigation() {
	c.pathGenerator = navigation.NewGenerator(c.config.Paths)

	if c.config.Navigation.RouteConfig == nil {
		return
	}
	c.routeManager = urlkit.NewRouteManager(c.config.Navigation.RouteConfig)
	c.urlkitGenerator = navigation.NewURLKitGenerator(navigation.URLKitGeneratorOptions{
		Manager:      c.routeManager,
		LocaleGroups: c.config.Navigation.URLKit.LocaleGroups,
		Routes:       c.config.Navigation.URLKit.Routes,
		SlugParam:    c.config.Navigation.URLKit.SlugParam,
	})
}

func (c *Container) configureServices() error {
	if len(c.payloadSchemas) > 0 {
		registry, err := validation.NewRegistry(c.payloadSchemas)
		if err != nil {
			return fmt.Errorf("localenav: payload schemas: %w", err)
		}
		c.schemaRegistry = registry
	}

	if c.documentService == nil {
		serviceOpts := []document.ServiceOption{}
		if c.loggerProvider != nil {
			serviceOpts = append(serviceOpts, document.WithLogger(logging.DocumentLogger(c.loggerProvider)))
		}
		if c.schemaRegistry != nil {
			serviceOpts = append(serviceOpts, document.WithPayloadValidator(c.schemaRegistry.Validator()))
		}
		c.documentService = document.NewService(c.documentRepo, c.groupRepo, c.localeRepo, serviceOpts...)
	}

	resolverOpts := []translation.ResolverOption{}
	if c.loggerProvider != nil {
		resolverOpts = append(resolverOpts, translation.WithLogger(logging.TranslationLogger(c.loggerProvider)))
	}
	c.resolver = translation.NewResolver(c.documentRepo, c.groupRepo, resolverOpts...)

	checkerOpts := []consistency.CheckerOption{}
	if c.loggerProvider != nil {
		checkerOpts = append(checkerOpts, consistency.WithLogger(logging.ConsistencyLogger(c.loggerProvider)))
	}
	c.checker = consistency.NewChecker(c.documentRepo, c.groupRepo, c.config.DefaultLocale, checkerOpts...)

	if c.config.Features.Markdown {
		importerOpts := []markdown.ImporterOption{}
		if c.loggerProvider != nil {
			importerOpts = append(importerOpts, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
		}
		c.importer = markdown.NewImporter(c.documentRepo, c.groupRepo, importerOpts...)
	}
	return nil
}

// Config returns the validated configuration.
func (c *Container) Config() runtimeconfig.Config { return c.config }

// DB returns the bun database when SQL storage is configured, nil otherwise.
func (c *Container) DB() *bun.DB { return c.bunDB }

// LoggerProvider exposes the configured logger provider, which is nil when
// the logger feature is off and no provider was injected.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Logger returns a named logger, falling back to a no-op implementation.
func (c *Container) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, name)
}

// DocumentRepository exposes the active document repository.
func (c *Container) DocumentRepository() document.DocumentRepository { return c.documentRepo }

// GroupRepository exposes the active translation group repository.
func (c *Container) GroupRepository() document.GroupRepository { return c.groupRepo }

// LocaleRepository exposes the active locale repository.
func (c *Container) LocaleRepository() document.LocaleRepository { return c.localeRepo }

// Documents returns the document service.
func (c *Container) Documents() document.Service { return c.documentService }

// TranslationResolver returns the translation link resolver.
func (c *Container) TranslationResolver() *translation.Resolver { return c.resolver }

// PathGenerator returns the static prefix-table pathname generator.
func (c *Container) PathGenerator() *navigation.Generator { return c.pathGenerator }

// URLKitGenerator returns the urlkit-backed pathname generator, nil when no
// route config was supplied.
func (c *Container) URLKitGenerator() *navigation.URLKitGenerator { return c.urlkitGenerator }

// RouteManager returns the shared urlkit route manager, nil when no route
// config was supplied.
func (c *Container) RouteManager() *urlkit.RouteManager { return c.routeManager }

// ConsistencyChecker returns the orphan and ordering checker.
func (c *Container) ConsistencyChecker() *consistency.Checker { return c.checker }

// ConsistencyScanHandler builds a command handler running consistency scans
// against the active checker. Completed reports are handed to the sink when
// one is supplied.
func (c *Container) ConsistencyScanHandler(sink consistencycmd.ReportSink) *consistencycmd.ScanHandler {
	return consistencycmd.NewScanHandler(c.checker, sink, logging.ConsistencyLogger(c.loggerProvider))
}

// MarkdownImporter returns the seed importer, nil unless the markdown feature
// is enabled.
func (c *Container) MarkdownImporter() *markdown.Importer { return c.importer }

// MarkdownLoader builds a loader over the given filesystem using the
// configured pattern and recursion settings.
func (c *Container) MarkdownLoader(filesystem fs.FS) *markdown.Loader {
	return markdown.NewLoader(filesystem, markdown.LoaderConfig{
		Pattern:   c.config.Markdown.Pattern,
		Recursive: c.config.Markdown.Recursive,
	})
}

// BuildLocaleMap resolves the current translation snapshots and projects them
// into a path-keyed locale map.
func (c *Container) BuildLocaleMap(ctx context.Context) (*navigation.LocaleMap, error) {
	snapshots, err := c.resolver.Snapshots(ctx, c.config.DefaultLocale)
	if err != nil {
		return nil, err
	}
	return navigation.BuildMap(c.pathGenerator, snapshots), nil
}

// Switcher builds a language switcher over a freshly resolved locale map.
func (c *Container) Switcher(ctx context.Context) (*navigation.Switcher, error) {
	localeMap, err := c.BuildLocaleMap(ctx)
	if err != nil {
		return nil, err
	}
	return navigation.NewSwitcher(c.pathGenerator, localeMap, c.config.SupportedLocales()), nil
}

// localeDisplayName maps common locale codes to English display names. Codes
// outside the table fall back to their upper-cased form.
func localeDisplayName(code string) string {
	names := map[string]string{
		"en": "English",
		"fr": "French",
		"es": "Spanish",
		"de": "German",
		"it": "Italian",
		"pt": "Portuguese",
		"nl": "Dutch",
		"ja": "Japanese",
		"zh": "Chinese",
	}
	if name, ok := names[strings.ToLower(code)]; ok {
		return name
	}
	return strings.ToUpper(code)
}
