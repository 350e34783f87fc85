package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Locale represents a supported language for the site.
type Locale struct {
	bun.BaseModel `bun:"table:locales,alias:l"`

	ID         uuid.UUID      `bun:",pk,type:uuid"         json:"id"`
	Code       string         `bun:"code,notnull"          json:"code"`
	Display    string         `bun:"display_name,notnull"  json:"display_name"`
	NativeName *string        `bun:"native_name"           json:"native_name,omitempty"`
	IsActive   bool           `bun:"is_active,notnull,default:true"  json:"is_active"`
	IsDefault  bool           `bun:"is_default,notnull,default:false" json:"is_default"`
	Metadata   map[string]any `bun:"metadata,type:jsonb"   json:"metadata,omitempty"`
	DeletedAt  *time.Time     `bun:"deleted_at,nullzero"   json:"deleted_at,omitempty"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Document is one version of one piece of content in one locale. The locale
// code is immutable after creation; the service exposes no update path for it.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Kind        Kind           `bun:"kind,notnull" json:"kind"`
	Locale      string         `bun:"locale" json:"locale,omitempty"`
	Slug        string         `bun:"slug,notnull" json:"slug"`
	Title       string         `bun:"title,notnull" json:"title"`
	Payload     map[string]any `bun:"payload,type:jsonb" json:"payload,omitempty"`
	SortOrder   *int           `bun:"sort_order" json:"sort_order,omitempty"`
	Status      string         `bun:"status,notnull,default:'published'" json:"status"`
	PublishedID *uuid.UUID     `bun:"published_id,type:uuid,nullzero" json:"published_id,omitempty"`
	DeletedAt   *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsDraft reports whether the record is a draft copy of a published document.
func (d *Document) IsDraft() bool {
	return d != nil && d.Status == StatusDraft
}

// Document status values. Drafts carry PublishedID when they shadow a
// published record so slug checks can exclude both identifiers.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// TranslationGroup links sibling documents representing the same logical
// content across locales. Links are never removed automatically when a
// document is deleted; dangling links are tolerated and dropped at read time.
type TranslationGroup struct {
	bun.BaseModel `bun:"table:translation_groups,alias:tg"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Links []*TranslationLink `bun:"rel:has-many,join:id=group_id" json:"links,omitempty"`
}

// LinkFor returns the group's link for the given locale code, if present.
func (g *TranslationGroup) LinkFor(locale string) *TranslationLink {
	if g == nil {
		return nil
	}
	for _, link := range g.Links {
		if link != nil && link.Locale == locale {
			return link
		}
	}
	return nil
}

// TranslationLink associates one document with one locale slot of a group.
// A document id appears in at most one group.
type TranslationLink struct {
	bun.BaseModel `bun:"table:translation_links,alias:tl"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	GroupID    uuid.UUID `bun:"group_id,notnull,type:uuid" json:"group_id"`
	Locale     string    `bun:"locale,notnull" json:"locale"`
	DocumentID uuid.UUID `bun:"document_id,notnull,type:uuid" json:"document_id"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// SiblingRef is the projection of a sibling document surfaced by translation
// resolution and consumed by the locale map builder.
type SiblingRef struct {
	DocumentID uuid.UUID `json:"document_id"`
	Locale     string    `json:"locale"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Kind       Kind      `json:"kind"`
}
