package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunDocumentRepository struct {
	repo repository.Repository[*Document]
}

func NewBunDocumentRepository(db *bun.DB) *BunDocumentRepository {
	return NewBunDocumentRepositoryWithCache(db, nil, nil)
}

// NewBunDocumentRepositoryWithCache constructs a DocumentRepository with optional caching.
func NewBunDocumentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunDocumentRepository {
	base := NewDocumentRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunDocumentRepository{repo: wrapped}
}

func (r *BunDocumentRepository) Create(ctx context.Context, record *Document) (*Document, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return created, nil
}

func (r *BunDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.id = ?", id).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return records[0], nil
}

func (r *BunDocumentRepository) Update(ctx context.Context, record *Document) (*Document, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("slug", "title", "payload", "sort_order", "status", "published_id", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", record.ID.String())
	}
	return updated, nil
}

// Delete soft-deletes the document. Translation links pointing at the id are
// left in place; sibling resolution tolerates the dangling reference.
func (r *BunDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	record.DeletedAt = &now
	_, err = r.repo.Update(ctx, record,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("deleted_at"),
	)
	if err != nil {
		return mapRepositoryError(err, "document", id.String())
	}
	return nil
}

func (r *BunDocumentRepository) List(ctx context.Context) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.deleted_at IS NULL").
				Order("created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

func (r *BunDocumentRepository) ListBySlug(ctx context.Context, slug string) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.slug = ?", slug).
				Where("?TableAlias.deleted_at IS NULL")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

func (r *BunDocumentRepository) ListByLocale(ctx context.Context, locale string) ([]*Document, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.locale = ?", locale).
				Where("?TableAlias.deleted_at IS NULL").
				Order("created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	return records, nil
}

type BunGroupRepository struct {
	groups repository.Repository[*TranslationGroup]
	links  repository.Repository[*TranslationLink]
}

func NewBunGroupRepository(db *bun.DB) *BunGroupRepository {
	return NewBunGroupRepositoryWithCache(db, nil, nil)
}

// NewBunGroupRepositoryWithCache constructs a GroupRepository with optional
// caching. Links are queried through their own repository rather than a bun
// relation so cache invalidation stays per-table.
func NewBunGroupRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunGroupRepository {
	groups := wrapWithCache(NewTranslationGroupRepository(db), cacheService, keySerializer)
	links := wrapWithCache(NewTranslationLinkRepository(db), cacheService, keySerializer)
	return &BunGroupRepository{groups: groups, links: links}
}

func (r *BunGroupRepository) Create(ctx context.Context, record *TranslationGroup) (*TranslationGroup, error) {
	seedLinks := record.Links
	record.Links = nil

	created, err := r.groups.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("translation_group repository error: %w", err)
	}

	for _, link := range seedLinks {
		if link == nil {
			continue
		}
		link.GroupID = created.ID
		storedLink, err := r.links.Create(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("translation_link repository error: %w", err)
		}
		created.Links = append(created.Links, storedLink)
	}
	return created, nil
}

func (r *BunGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*TranslationGroup, error) {
	group, err := r.groups.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "translation_group", id.String())
	}
	return r.attachLinks(ctx, group)
}

func (r *BunGroupRepository) GetByDocument(ctx context.Context, documentID uuid.UUID) (*TranslationGroup, error) {
	links, _, err := r.links.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.document_id = ?", documentID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("translation_link repository error: %w", err)
	}
	if len(links) == 0 {
		return nil, &NotFoundError{Resource: "translation_group", Key: documentID.String()}
	}
	return r.GetByID(ctx, links[0].GroupID)
}

func (r *BunGroupRepository) AddLink(ctx context.Context, groupID uuid.UUID, locale string, documentID uuid.UUID) (*TranslationLink, error) {
	existing, _, err := r.links.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.document_id = ?", documentID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("translation_link repository error: %w", err)
	}
	if len(existing) > 0 {
		if existing[0].GroupID == groupID {
			return existing[0], nil
		}
		return nil, ErrLinkedElsewhere
	}

	link := &TranslationLink{
		ID:         uuid.New(),
		GroupID:    groupID,
		Locale:     strings.ToLower(strings.TrimSpace(locale)),
		DocumentID: documentID,
	}
	created, err := r.links.Create(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("translation_link repository error: %w", err)
	}
	return created, nil
}

func (r *BunGroupRepository) List(ctx context.Context) ([]*TranslationGroup, error) {
	groups, _, err := r.groups.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("translation_group repository error: %w", err)
	}
	for i, group := range groups {
		attached, err := r.attachLinks(ctx, group)
		if err != nil {
			return nil, err
		}
		groups[i] = attached
	}
	return groups, nil
}

func (r *BunGroupRepository) attachLinks(ctx context.Context, group *TranslationGroup) (*TranslationGroup, error) {
	links, _, err := r.links.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.group_id = ?", group.ID).
				Order("created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("translation_link repository error: %w", err)
	}
	group.Links = links
	return group, nil
}

type BunLocaleRepository struct {
	repo repository.Repository[*Locale]
}

func NewBunLocaleRepository(db *bun.DB) *BunLocaleRepository {
	return NewBunLocaleRepositoryWithCache(db, nil, nil)
}

// NewBunLocaleRepositoryWithCache constructs a LocaleRepository with optional caching.
func NewBunLocaleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLocaleRepository {
	base := NewLocaleRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLocaleRepository{repo: wrapped}
}

func (r *BunLocaleRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	result, err := r.repo.GetByIdentifier(ctx, strings.ToLower(code))
	if err != nil {
		return nil, mapRepositoryError(err, "locale", code)
	}
	return result, nil
}

func (r *BunLocaleRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.deleted_at IS NULL").
				Order("is_default DESC", "code ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("locale repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
