package localenav

import (
	"context"
	"io/fs"

	"github.com/google/uuid"

	consistencycmd "github.com/goliatone/go-localenav/internal/commands/consistency"
	"github.com/goliatone/go-localenav/internal/consistency"
	"github.com/goliatone/go-localenav/internal/di"
	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/markdown"
	"github.com/goliatone/go-localenav/internal/navigation"
	"github.com/goliatone/go-localenav/internal/translation"
)

// DocumentService exports the document service contract for consumers of the
// localenav package.
type DocumentService = document.Service

// Document exports the stored document record.
type Document = document.Document

// Kind exports the document kind enumeration.
type Kind = document.Kind

// Document kinds supported by the module.
const (
	KindPage         = document.KindPage
	KindArticle      = document.KindArticle
	KindArticleIndex = document.KindArticleIndex
	KindHome         = document.KindHome
	KindSiteSettings = document.KindSiteSettings
)

// Document lifecycle states.
const (
	StatusDraft     = document.StatusDraft
	StatusPublished = document.StatusPublished
)

// Request types accepted by the document service.
type (
	CreateDocumentRequest    = document.CreateDocumentRequest
	CreateTranslationRequest = document.CreateTranslationRequest
	UpdateSlugRequest        = document.UpdateSlugRequest
	ValidateSlugRequest      = document.ValidateSlugRequest
)

// SiblingRef exports the translation sibling projection.
type SiblingRef = document.SiblingRef

// TranslationGroup exports the translation group record.
type TranslationGroup = document.TranslationGroup

// GroupSnapshot exports the resolved view of one translation group.
type GroupSnapshot = translation.GroupSnapshot

// TranslationSet maps locale codes to sibling refs for one group.
type TranslationSet = navigation.TranslationSet

// LocaleMap exports the path-keyed bidirectional locale map.
type LocaleMap = navigation.LocaleMap

// SwitchTarget exports a language switcher destination.
type SwitchTarget = navigation.Target

// Switcher exports the language switcher runtime.
type Switcher = navigation.Switcher

// ConsistencyReport exports the scan report accumulator.
type ConsistencyReport = consistency.Report

// ImportResult exports markdown import counters.
type ImportResult = markdown.ImportResult

// ConsistencyScanCommand exports the scan command message.
type ConsistencyScanCommand = consistencycmd.ScanCommand

// ConsistencyScanHandler exports the scan command handler.
type ConsistencyScanHandler = consistencycmd.ScanHandler

// ErrConsistencyFindings is returned by the scan handler when FailOnFindings
// is set and the scan surfaced inconsistencies.
var ErrConsistencyFindings = consistencycmd.ErrFindings

// Errors surfaced by the document service, re-exported for callers outside
// the module.
var (
	ErrKindInvalid        = document.ErrKindInvalid
	ErrKindNotLocalized   = document.ErrKindNotLocalized
	ErrLocaleRequired     = document.ErrLocaleRequired
	ErrUnknownLocale      = document.ErrUnknownLocale
	ErrSlugRequired       = document.ErrSlugRequired
	ErrSlugInvalid        = document.ErrSlugInvalid
	ErrSlugExists         = document.ErrSlugExists
	ErrTitleRequired      = document.ErrTitleRequired
	ErrTranslationExists  = document.ErrTranslationExists
	ErrSameLocale         = document.ErrSameLocale
	ErrNotDraft           = document.ErrNotDraft
	ErrPayloadInvalid     = document.ErrPayloadInvalid
	ErrLinkedElsewhere    = document.ErrLinkedElsewhere
	ErrDocumentIDRequired = document.ErrDocumentIDRequired
)

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	return document.IsNotFound(err)
}

// Module represents the top level translation navigation runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a localenav module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	return m.container.Documents()
}

// Siblings resolves the sibling list for a document, the document itself
// included. Ungrouped documents yield a singleton list.
func (m *Module) Siblings(ctx context.Context, documentID uuid.UUID) ([]SiblingRef, error) {
	return m.container.TranslationResolver().Siblings(ctx, documentID)
}

// PathFor resolves the absolute localized path for a document. When a urlkit
// route catalogue is configured and covers the document's locale and kind it
// wins; the static prefix table applies otherwise.
func (m *Module) PathFor(doc *Document) (string, error) {
	if doc == nil {
		return "", ErrDocumentIDRequired
	}
	if gen := m.container.URLKitGenerator(); gen != nil {
		path, err := gen.Resolve(doc.Kind, doc.Locale, doc.Slug)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return m.container.PathGenerator().AbsolutePath(doc.Kind, doc.Locale, doc.Slug), nil
}

// LocaleMap resolves the current translation snapshots into a path-keyed
// locale map. The map is a point-in-time projection; rebuild it after
// mutating documents or translations.
func (m *Module) LocaleMap(ctx context.Context) (*LocaleMap, error) {
	return m.container.BuildLocaleMap(ctx)
}

// Switcher builds a language switcher over a freshly resolved locale map.
func (m *Module) Switcher(ctx context.Context) (*Switcher, error) {
	return m.container.Switcher(ctx)
}

// SwitchTargets resolves the switcher destinations for every configured
// locale from the given current path.
func (m *Module) SwitchTargets(ctx context.Context, currentPath string) ([]SwitchTarget, error) {
	switcher, err := m.container.Switcher(ctx)
	if err != nil {
		return nil, err
	}
	return switcher.Targets(currentPath), nil
}

// ConsistencyScan audits documents and translation groups for orphans, stale
// orderings and dangling links.
func (m *Module) ConsistencyScan(ctx context.Context) (*ConsistencyReport, error) {
	report := &ConsistencyReport{}
	if err := m.container.ConsistencyChecker().Scan(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ScanHandler builds a dispatchable consistency scan command handler.
// Completed reports are handed to the sink when one is supplied.
func (m *Module) ScanHandler(sink func(*ConsistencyReport)) *ConsistencyScanHandler {
	return m.container.ConsistencyScanHandler(sink)
}

// SortByEffectiveOrder orders documents for cross-locale list rendering,
// letting each default-locale sibling's sort order win over stale local
// values.
func (m *Module) SortByEffectiveOrder(ctx context.Context, docs []*Document) ([]*Document, error) {
	return m.container.ConsistencyChecker().SortByEffectiveOrder(ctx, docs)
}

// ImportMarkdown loads every markdown seed under dir in the given filesystem
// and upserts the resulting documents. Requires the markdown feature.
func (m *Module) ImportMarkdown(ctx context.Context, filesystem fs.FS, dir string) (*ImportResult, error) {
	importer := m.container.MarkdownImporter()
	if importer == nil {
		return nil, ErrMarkdownFeatureRequired
	}
	seeds, err := m.container.MarkdownLoader(filesystem).LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return importer.Import(ctx, seeds)
}
