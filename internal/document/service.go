package document

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-localenav/internal/logging"
	"github.com/goliatone/go-localenav/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes document management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	CreateTranslation(ctx context.Context, req CreateTranslationRequest) (*Document, error)
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	ListByLocale(ctx context.Context, locale string) ([]*Document, error)
	UpdateSlug(ctx context.Context, req UpdateSlugRequest) (*Document, error)
	ValidateSlug(ctx context.Context, req ValidateSlugRequest) error
	CreateDraft(ctx context.Context, documentID uuid.UUID) (*Document, error)
	PublishDraft(ctx context.Context, draftID uuid.UUID) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Group(ctx context.Context, documentID uuid.UUID) (*TranslationGroup, error)
}

// CreateDocumentRequest captures the information required to create a document.
type CreateDocumentRequest struct {
	Kind      Kind
	Locale    string
	Slug      string
	Title     string
	Payload   map[string]any
	SortOrder *int
	Status    string
}

// CreateTranslationRequest spawns a sibling of an existing document in a new
// locale and links both through a translation group.
type CreateTranslationRequest struct {
	SourceID  uuid.UUID
	Locale    string
	Slug      string
	Title     string
	Payload   map[string]any
	SortOrder *int
}

// UpdateSlugRequest renames a document's slug.
type UpdateSlugRequest struct {
	DocumentID uuid.UUID
	Slug       string
}

// ValidateSlugRequest is the advisory availability check exposed to editors.
// ExcludeID, when set, removes the document's own identifiers (draft and
// published) from the candidate set.
type ValidateSlugRequest struct {
	Kind      Kind
	Locale    string
	Slug      string
	ExcludeID uuid.UUID
}

// PayloadValidator checks a document payload against the kind's schema.
type PayloadValidator func(kind Kind, payload map[string]any) error

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPayloadValidator installs a schema check applied to payloads on create
// and translation.
func WithPayloadValidator(validator PayloadValidator) ServiceOption {
	return func(s *service) {
		if validator != nil {
			s.validatePayload = validator
		}
	}
}

// service implements Service.
type service struct {
	documents       DocumentRepository
	groups          GroupRepository
	locales         LocaleRepository
	now             func() time.Time
	id              IDGenerator
	logger          interfaces.Logger
	validatePayload PayloadValidator
}

// NewService constructs a document service with the required dependencies.
func NewService(documents DocumentRepository, groups GroupRepository, locales LocaleRepository, opts ...ServiceOption) Service {
	s := &service{
		documents: documents,
		groups:    groups,
		locales:   locales,
		now:       time.Now,
		id:        uuid.New,
		logger:    logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create orchestrates creation of a new document in a single locale.
func (s *service) Create(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	if !req.Kind.Valid() {
		return nil, ErrKindInvalid
	}

	locale, err := s.resolveLocale(ctx, req.Kind, req.Locale)
	if err != nil {
		return nil, err
	}

	slug, err := s.prepareSlug(req.Kind, req.Slug, req.Title)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := chooseStatus(req.Status)
	if status != StatusDraft && status != StatusPublished {
		return nil, ErrStatusInvalid
	}

	if s.validatePayload != nil {
		if err := s.validatePayload(req.Kind, req.Payload); err != nil {
			return nil, err
		}
	}

	if slug != "" {
		if err := s.checkSlugAvailable(ctx, req.Kind, locale, slug, nil); err != nil {
			return nil, err
		}
	}

	now := s.now()
	record := &Document{
		ID:        s.id(),
		Kind:      req.Kind,
		Locale:    locale,
		Slug:      slug,
		Title:     title,
		Payload:   cloneMap(req.Payload),
		SortOrder: cloneIntPtr(req.SortOrder),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.documents.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.WithDocumentContext(s.logger, locale, slug, req.Kind.String()).
		Info("document created", "document_id", created.ID.String())

	return created, nil
}

// CreateTranslation spawns a sibling document in a new locale and records the
// link in the source's translation group, creating the group if needed.
func (s *service) CreateTranslation(ctx context.Context, req CreateTranslationRequest) (*Document, error) {
	if req.SourceID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	source, err := s.documents.GetByID(ctx, req.SourceID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}

	if !source.Kind.Localized() {
		return nil, ErrKindNotLocalized
	}

	locale, err := s.resolveLocale(ctx, source.Kind, req.Locale)
	if err != nil {
		return nil, err
	}
	if locale == source.Locale {
		return nil, ErrSameLocale
	}

	group, err := s.groups.GetByDocument(ctx, req.SourceID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		group = nil
	}
	if group != nil && group.LinkFor(locale) != nil {
		return nil, ErrTranslationExists
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = source.Title
	}

	rawSlug := req.Slug
	if strings.TrimSpace(rawSlug) == "" && !source.Kind.Slugless() {
		rawSlug = title
	}
	slug, err := s.prepareSlug(source.Kind, rawSlug, title)
	if err != nil {
		return nil, err
	}

	if s.validatePayload != nil {
		if err := s.validatePayload(source.Kind, req.Payload); err != nil {
			return nil, err
		}
	}

	if slug != "" {
		if err := s.checkSlugAvailable(ctx, source.Kind, locale, slug, nil); err != nil {
			return nil, err
		}
	}

	now := s.now()
	record := &Document{
		ID:        s.id(),
		Kind:      source.Kind,
		Locale:    locale,
		Slug:      slug,
		Title:     title,
		Payload:   cloneMap(req.Payload),
		SortOrder: cloneIntPtr(req.SortOrder),
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.documents.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if group == nil {
		group, err = s.groups.Create(ctx, &TranslationGroup{
			ID:        s.id(),
			CreatedAt: now,
			UpdatedAt: now,
			Links: []*TranslationLink{
				{
					ID:         s.id(),
					Locale:     source.Locale,
					DocumentID: source.ID,
					CreatedAt:  now,
				},
			},
		})
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.groups.AddLink(ctx, group.ID, locale, created.ID); err != nil {
		return nil, err
	}

	logging.WithDocumentContext(s.logger, locale, slug, source.Kind.String()).
		Info("translation created",
			"document_id", created.ID.String(),
			"source_id", source.ID.String(),
			"group_id", group.ID.String(),
		)

	return created, nil
}

// Get fetches a document by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	if id == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	return s.documents.GetByID(ctx, id)
}

// List returns all live documents.
func (s *service) List(ctx context.Context) ([]*Document, error) {
	return s.documents.List(ctx)
}

// ListByLocale returns all live documents in the locale.
func (s *service) ListByLocale(ctx context.Context, locale string) ([]*Document, error) {
	return s.documents.ListByLocale(ctx, locale)
}

// UpdateSlug renames a document's slug after re-running the availability check
// with the document's own identifiers excluded.
func (s *service) UpdateSlug(ctx context.Context, req UpdateSlugRequest) (*Document, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	record, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	slug, err := s.prepareSlug(record.Kind, req.Slug, record.Title)
	if err != nil {
		return nil, err
	}

	if slug != "" {
		exclude := s.selfExclusionSet(record)
		if err := s.checkSlugAvailable(ctx, record.Kind, record.Locale, slug, exclude); err != nil {
			return nil, err
		}
	}

	record.Slug = slug
	record.UpdatedAt = s.now()

	return s.documents.Update(ctx, record)
}

// ValidateSlug is the advisory availability check. A nil error means the slug
// was free at check time; concurrent writes between check and save are not
// guarded against.
func (s *service) ValidateSlug(ctx context.Context, req ValidateSlugRequest) error {
	if !req.Kind.Valid() {
		return ErrKindInvalid
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return ErrSlugRequired
	}
	if !IsValidSlug(slug) {
		return ErrSlugInvalid
	}

	locale := strings.ToLower(strings.TrimSpace(req.Locale))
	if req.Kind.Localized() && locale == "" {
		return ErrLocaleRequired
	}

	var exclude map[uuid.UUID]struct{}
	if req.ExcludeID != uuid.Nil {
		if record, err := s.documents.GetByID(ctx, req.ExcludeID); err == nil {
			exclude = s.selfExclusionSet(record)
		} else {
			exclude = map[uuid.UUID]struct{}{req.ExcludeID: {}}
		}
	}

	return s.checkSlugAvailable(ctx, req.Kind, locale, slug, exclude)
}

// CreateDraft snapshots a published document into an editable draft copy that
// shadows it via PublishedID.
func (s *service) CreateDraft(ctx context.Context, documentID uuid.UUID) (*Document, error) {
	if documentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	record, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if record.IsDraft() {
		return nil, ErrStatusInvalid
	}

	now := s.now()
	publishedID := record.ID
	draft := &Document{
		ID:          s.id(),
		Kind:        record.Kind,
		Locale:      record.Locale,
		Slug:        record.Slug,
		Title:       record.Title,
		Payload:     cloneMap(record.Payload),
		SortOrder:   cloneIntPtr(record.SortOrder),
		Status:      StatusDraft,
		PublishedID: &publishedID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.documents.Create(ctx, draft)
}

// PublishDraft folds a draft back onto its published record, or promotes a
// standalone draft in place. The draft copy is removed after a successful fold.
func (s *service) PublishDraft(ctx context.Context, draftID uuid.UUID) (*Document, error) {
	if draftID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	draft, err := s.documents.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !draft.IsDraft() {
		return nil, ErrNotDraft
	}

	if draft.Slug != "" {
		exclude := s.selfExclusionSet(draft)
		if err := s.checkSlugAvailable(ctx, draft.Kind, draft.Locale, draft.Slug, exclude); err != nil {
			return nil, err
		}
	}

	now := s.now()

	if draft.PublishedID == nil {
		draft.Status = StatusPublished
		draft.UpdatedAt = now
		return s.documents.Update(ctx, draft)
	}

	published, err := s.documents.GetByID(ctx, *draft.PublishedID)
	if err != nil {
		return nil, err
	}

	published.Slug = draft.Slug
	published.Title = draft.Title
	published.Payload = cloneMap(draft.Payload)
	published.SortOrder = cloneIntPtr(draft.SortOrder)
	published.UpdatedAt = now

	updated, err := s.documents.Update(ctx, published)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Delete(ctx, draft.ID); err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete soft-deletes a document. Translation group links pointing at the id
// stay in place; resolution drops them at read time.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrDocumentIDRequired
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted, translation links retained", "document_id", id.String())
	return nil
}

// Group resolves the translation group containing the document, if any.
func (s *service) Group(ctx context.Context, documentID uuid.UUID) (*TranslationGroup, error) {
	if documentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	return s.groups.GetByDocument(ctx, documentID)
}

// resolveLocale normalizes and checks the locale against the kind's rules:
// localized kinds require a known locale; non-localized kinds reject one.
func (s *service) resolveLocale(ctx context.Context, kind Kind, raw string) (string, error) {
	locale := strings.ToLower(strings.TrimSpace(raw))

	if !kind.Localized() {
		if locale != "" {
			return "", ErrKindNotLocalized
		}
		return "", nil
	}

	if locale == "" {
		return "", ErrLocaleRequired
	}
	if _, err := s.locales.GetByCode(ctx, locale); err != nil {
		return "", ErrUnknownLocale
	}
	return locale, nil
}

// prepareSlug normalizes and validates the slug per the kind's rules. Slugless
// kinds may omit the slug entirely.
func (s *service) prepareSlug(kind Kind, raw, title string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if kind.Slugless() {
			return "", nil
		}
		trimmed = strings.TrimSpace(title)
		if trimmed == "" {
			return "", ErrSlugRequired
		}
	}

	normalized, err := NormalizeSlug(trimmed)
	if err != nil || normalized == "" {
		return "", ErrSlugInvalid
	}
	if !IsValidSlug(normalized) {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

// checkSlugAvailable enforces slug uniqueness: scoped to the locale for
// localized kinds, global for the rest. The check is advisory; concurrent
// writers racing between check and insert are not serialized here.
func (s *service) checkSlugAvailable(ctx context.Context, kind Kind, locale, slug string, exclude map[uuid.UUID]struct{}) error {
	candidates, err := s.documents.ListBySlug(ctx, slug)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if s.isExcluded(candidate, exclude) {
			continue
		}
		if kind.Localized() {
			if candidate.Kind.Localized() && candidate.Locale == locale {
				return ErrSlugExists
			}
			continue
		}
		return ErrSlugExists
	}
	return nil
}

// selfExclusionSet collects the identifiers a slug check must ignore for a
// document: its own id and, for draft/published pairs, the partner id.
func (s *service) selfExclusionSet(record *Document) map[uuid.UUID]struct{} {
	set := map[uuid.UUID]struct{}{record.ID: {}}
	if record.PublishedID != nil {
		set[*record.PublishedID] = struct{}{}
	}
	return set
}

func (s *service) isExcluded(candidate *Document, exclude map[uuid.UUID]struct{}) bool {
	if len(exclude) == 0 {
		return false
	}
	if _, ok := exclude[candidate.ID]; ok {
		return true
	}
	if candidate.PublishedID != nil {
		if _, ok := exclude[*candidate.PublishedID]; ok {
			return true
		}
	}
	return false
}

func chooseStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return StatusPublished
	}
	return status
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
