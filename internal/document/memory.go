package document

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDocumentRepository is an in-memory implementation for scaffolding and tests.
type MemoryDocumentRepository struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*Document
}

// NewMemoryDocumentRepository creates an empty in-memory document repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{
		documents: make(map[uuid.UUID]*Document),
	}
}

// Create inserts the supplied document.
func (m *MemoryDocumentRepository) Create(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneDocument(record)
	m.documents[copied.ID] = copied
	return cloneDocument(copied), nil
}

// GetByID retrieves a document by identifier.
func (m *MemoryDocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.documents[id]
	if !ok || rec.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(rec), nil
}

// Update replaces the stored record.
func (m *MemoryDocumentRepository) Update(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "document", Key: record.ID.String()}
	}
	copied := cloneDocument(record)
	m.documents[copied.ID] = copied
	return cloneDocument(copied), nil
}

// Delete removes the record. Translation links pointing at the id are left in
// place; sibling resolution tolerates the dangling reference.
func (m *MemoryDocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.documents[id]
	if !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	now := time.Now()
	rec.DeletedAt = &now
	return nil
}

// List returns all live documents ordered by creation time.
func (m *MemoryDocumentRepository) List(_ context.Context) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Document, 0, len(m.documents))
	for _, rec := range m.documents {
		if rec.DeletedAt != nil {
			continue
		}
		out = append(out, cloneDocument(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListBySlug returns all live documents holding the slug, across locales.
func (m *MemoryDocumentRepository) ListBySlug(_ context.Context, slug string) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Document{}
	for _, rec := range m.documents {
		if rec.DeletedAt != nil {
			continue
		}
		if rec.Slug == slug {
			out = append(out, cloneDocument(rec))
		}
	}
	return out, nil
}

// ListByLocale returns all live documents for the locale code.
func (m *MemoryDocumentRepository) ListByLocale(_ context.Context, locale string) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locale = strings.ToLower(strings.TrimSpace(locale))
	out := []*Document{}
	for _, rec := range m.documents {
		if rec.DeletedAt != nil {
			continue
		}
		if rec.Locale == locale {
			out = append(out, cloneDocument(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneDocument(src *Document) *Document {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Payload = cloneMap(src.Payload)
	copied.SortOrder = cloneIntPtr(src.SortOrder)
	if src.PublishedID != nil {
		id := *src.PublishedID
		copied.PublishedID = &id
	}
	return &copied
}

// MemoryGroupRepository stores translation groups and links in-memory.
type MemoryGroupRepository struct {
	mu     sync.RWMutex
	groups map[uuid.UUID]*TranslationGroup
	byDoc  map[uuid.UUID]uuid.UUID
}

// NewMemoryGroupRepository constructs the repository.
func NewMemoryGroupRepository() *MemoryGroupRepository {
	return &MemoryGroupRepository{
		groups: make(map[uuid.UUID]*TranslationGroup),
		byDoc:  make(map[uuid.UUID]uuid.UUID),
	}
}

// Create inserts a group together with any seed links.
func (m *MemoryGroupRepository) Create(_ context.Context, record *TranslationGroup) (*TranslationGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneGroup(record)
	m.groups[copied.ID] = copied
	for _, link := range copied.Links {
		m.byDoc[link.DocumentID] = copied.ID
	}
	return cloneGroup(copied), nil
}

// GetByID fetches a group with its links.
func (m *MemoryGroupRepository) GetByID(_ context.Context, id uuid.UUID) (*TranslationGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.groups[id]
	if !ok {
		return nil, &NotFoundError{Resource: "translation_group", Key: id.String()}
	}
	return cloneGroup(rec), nil
}

// GetByDocument resolves the group containing the document id, returning
// NotFoundError for unlinked documents.
func (m *MemoryGroupRepository) GetByDocument(_ context.Context, documentID uuid.UUID) (*TranslationGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	groupID, ok := m.byDoc[documentID]
	if !ok {
		return nil, &NotFoundError{Resource: "translation_group", Key: documentID.String()}
	}
	return cloneGroup(m.groups[groupID]), nil
}

// AddLink appends a locale entry to an existing group.
func (m *MemoryGroupRepository) AddLink(_ context.Context, groupID uuid.UUID, locale string, documentID uuid.UUID) (*TranslationLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	group, ok := m.groups[groupID]
	if !ok {
		return nil, &NotFoundError{Resource: "translation_group", Key: groupID.String()}
	}
	if existing, ok := m.byDoc[documentID]; ok && existing != groupID {
		return nil, ErrLinkedElsewhere
	}

	link := &TranslationLink{
		ID:         uuid.New(),
		GroupID:    groupID,
		Locale:     strings.ToLower(strings.TrimSpace(locale)),
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}
	group.Links = append(group.Links, link)
	group.UpdatedAt = link.CreatedAt
	m.byDoc[documentID] = groupID

	copied := *link
	return &copied, nil
}

// List returns every group with links attached.
func (m *MemoryGroupRepository) List(_ context.Context) ([]*TranslationGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*TranslationGroup, 0, len(m.groups))
	for _, rec := range m.groups {
		out = append(out, cloneGroup(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneGroup(src *TranslationGroup) *TranslationGroup {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Links) > 0 {
		copied.Links = make([]*TranslationLink, len(src.Links))
		for i, link := range src.Links {
			if link == nil {
				continue
			}
			local := *link
			copied.Links[i] = &local
		}
	}
	return &copied
}

// MemoryLocaleRepository stores locales by code.
type MemoryLocaleRepository struct {
	mu      sync.RWMutex
	locales map[string]*Locale
}

// NewMemoryLocaleRepository constructs the repository.
func NewMemoryLocaleRepository() *MemoryLocaleRepository {
	return &MemoryLocaleRepository{
		locales: make(map[string]*Locale),
	}
}

// Put inserts or replaces a locale.
func (m *MemoryLocaleRepository) Put(locale *Locale) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *locale
	m.locales[strings.ToLower(locale.Code)] = &copied
}

// GetByCode resolves a locale by code (case-insensitive).
func (m *MemoryLocaleRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locales[strings.ToLower(code)]
	if !ok {
		return nil, &NotFoundError{Resource: "locale", Key: code}
	}
	copied := *loc
	return &copied, nil
}

// List returns all locales, default first, then by code.
func (m *MemoryLocaleRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Locale, 0, len(m.locales))
	for _, loc := range m.locales {
		copied := *loc
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}
