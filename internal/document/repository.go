package document

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DocumentRepository abstracts storage operations for documents.
type DocumentRepository interface {
	Create(ctx context.Context, record *Document) (*Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	Update(ctx context.Context, record *Document) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Document, error)
	ListBySlug(ctx context.Context, slug string) ([]*Document, error)
	ListByLocale(ctx context.Context, locale string) ([]*Document, error)
}

// GroupRepository abstracts storage for translation groups and their links.
type GroupRepository interface {
	Create(ctx context.Context, record *TranslationGroup) (*TranslationGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TranslationGroup, error)
	GetByDocument(ctx context.Context, documentID uuid.UUID) (*TranslationGroup, error)
	AddLink(ctx context.Context, groupID uuid.UUID, locale string, documentID uuid.UUID) (*TranslationLink, error)
	List(ctx context.Context) ([]*TranslationGroup, error)
}

// LocaleRepository resolves locales by code.
type LocaleRepository interface {
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
}

func NewLocaleRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord: func() *Document { return &Document{} },
		GetID: func(d *Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(d *Document) string {
			if d == nil {
				return ""
			}
			return d.ID.String()
		},
	})
}

func NewTranslationGroupRepository(db *bun.DB) repository.Repository[*TranslationGroup] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationGroup]{
		NewRecord: func() *TranslationGroup { return &TranslationGroup{} },
		GetID: func(g *TranslationGroup) uuid.UUID {
			return g.ID
		},
		SetID: func(g *TranslationGroup, id uuid.UUID) {
			g.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(g *TranslationGroup) string {
			if g == nil {
				return ""
			}
			return g.ID.String()
		},
	})
}

func NewTranslationLinkRepository(db *bun.DB) repository.Repository[*TranslationLink] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationLink]{
		NewRecord: func() *TranslationLink { return &TranslationLink{} },
		GetID: func(l *TranslationLink) uuid.UUID {
			return l.ID
		},
		SetID: func(l *TranslationLink, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(l *TranslationLink) string {
			if l == nil {
				return ""
			}
			return l.ID.String()
		},
	})
}
