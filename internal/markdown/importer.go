package markdown

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/identity"
	"github.com/goliatone/go-localenav/internal/logging"
	"github.com/goliatone/go-localenav/pkg/interfaces"
	"github.com/google/uuid"
)

// ImportResult summarizes one import run.
type ImportResult struct {
	Created int
	Updated int
	Linked  int
	Skipped int
}

// ImporterOption configures the importer.
type ImporterOption func(*Importer)

// WithLogger overrides the importer logger.
func WithLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp imported records.
func WithClock(clock func() time.Time) ImporterOption {
	return func(i *Importer) {
		if clock != nil {
			i.now = clock
		}
	}
}

// Importer writes seed documents straight into the repositories with
// deterministic identifiers, so re-running an import updates records in place
// instead of duplicating them. Seeds sharing a translation_key are linked
// into one translation group derived from that key.
type Importer struct {
	documents document.DocumentRepository
	groups    document.GroupRepository
	logger    interfaces.Logger
	now       func() time.Time
}

// NewImporter constructs an importer over the repositories.
func NewImporter(documents document.DocumentRepository, groups document.GroupRepository, opts ...ImporterOption) *Importer {
	i := &Importer{
		documents: documents,
		groups:    groups,
		logger:    logging.NoOp(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import upserts every seed and wires translation groups. Seeds failing slug
// normalization are skipped and logged rather than aborting the batch.
func (i *Importer) Import(ctx context.Context, seeds []*SeedDocument) (*ImportResult, error) {
	result := &ImportResult{}

	imported := make(map[string][]importedSeed)

	for _, seed := range seeds {
		if seed == nil {
			continue
		}
		record, created, err := i.upsert(ctx, seed)
		if err != nil {
			i.logger.Warn("skipping seed document",
				"path", seed.Path,
				"error", err,
			)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		if seed.TranslationKey != "" {
			imported[seed.TranslationKey] = append(imported[seed.TranslationKey], importedSeed{
				locale:     record.Locale,
				documentID: record.ID,
			})
		}
	}

	for key, members := range imported {
		linked, err := i.linkGroup(ctx, key, members)
		if err != nil {
			return nil, err
		}
		result.Linked += linked
	}

	return result, nil
}

type importedSeed struct {
	locale     string
	documentID uuid.UUID
}

// warnOnSlugCollision flags seeds whose locale and slug are already held by a
// routable document of another kind. Seeds write through the repositories
// without the service's uniqueness validator, so such pairs can end up behind
// overlapping localized paths; the import proceeds but leaves a trace.
func (i *Importer) warnOnSlugCollision(ctx context.Context, seed *SeedDocument, slug string, id uuid.UUID) {
	if slug == "" || !seed.Kind.Routable() {
		return
	}
	others, err := i.documents.ListBySlug(ctx, slug)
	if err != nil {
		return
	}
	for _, other := range others {
		if other == nil || other.ID == id {
			continue
		}
		if other.Locale == seed.Locale && other.Kind != seed.Kind && other.Kind.Routable() {
			i.logger.Warn("seed slug already held by another document kind",
				"path", seed.Path,
				"slug", slug,
				"locale", seed.Locale,
				"kind", seed.Kind.String(),
				"existing_kind", other.Kind.String(),
			)
		}
	}
}

func (i *Importer) upsert(ctx context.Context, seed *SeedDocument) (*document.Document, bool, error) {
	if seed.Title == "" {
		return nil, false, document.ErrTitleRequired
	}
	if seed.Kind.Localized() && seed.Locale == "" {
		return nil, false, document.ErrLocaleRequired
	}

	slug := seed.Slug
	if slug == "" && !seed.Kind.Slugless() {
		slug = seed.Title
	}
	if slug != "" {
		normalized, err := document.NormalizeSlug(slug)
		if err != nil || normalized == "" {
			return nil, false, document.ErrSlugInvalid
		}
		slug = normalized
	}

	status := strings.ToLower(strings.TrimSpace(seed.Status))
	if status == "" {
		status = document.StatusPublished
	}
	if status != document.StatusDraft && status != document.StatusPublished {
		return nil, false, document.ErrStatusInvalid
	}

	id := identity.DocumentUUID(seed.Kind.String(), seed.Locale, slug)
	if id == uuid.Nil {
		return nil, false, fmt.Errorf("markdown: cannot derive id for %s", seed.Path)
	}

	i.warnOnSlugCollision(ctx, seed, slug, id)

	now := i.now()

	existing, err := i.documents.GetByID(ctx, id)
	if err == nil {
		existing.Title = seed.Title
		existing.Slug = slug
		existing.Payload = seed.Payload
		existing.SortOrder = seed.SortOrder
		existing.Status = status
		existing.UpdatedAt = now
		updated, err := i.documents.Update(ctx, existing)
		return updated, false, err
	}
	if !document.IsNotFound(err) {
		return nil, false, err
	}

	record := &document.Document{
		ID:        id,
		Kind:      seed.Kind,
		Locale:    seed.Locale,
		Slug:      slug,
		Title:     seed.Title,
		Payload:   seed.Payload,
		SortOrder: seed.SortOrder,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := i.documents.Create(ctx, record)
	return created, true, err
}

func (i *Importer) linkGroup(ctx context.Context, key string, members []importedSeed) (int, error) {
	groupID := identity.TranslationGroupUUID(key)

	group, err := i.groups.GetByID(ctx, groupID)
	if err != nil {
		if !document.IsNotFound(err) {
			return 0, err
		}
		now := i.now()
		group, err = i.groups.Create(ctx, &document.TranslationGroup{
			ID:        groupID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return 0, err
		}
	}

	linked := 0
	for _, member := range members {
		if existing := group.LinkFor(member.locale); existing != nil {
			if existing.DocumentID != member.documentID {
				i.logger.Warn("translation key locale already linked to another document",
					"translation_key", key,
					"locale", member.locale,
					"document_id", member.documentID.String(),
				)
			}
			continue
		}
		if _, err := i.groups.AddLink(ctx, group.ID, member.locale, member.documentID); err != nil {
			return linked, err
		}
		linked++
		group, err = i.groups.GetByID(ctx, group.ID)
		if err != nil {
			return linked, err
		}
	}
	return linked, nil
}
