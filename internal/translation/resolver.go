package translation

import (
	"context"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/logging"
	"github.com/goliatone/go-localenav/pkg/interfaces"
	"github.com/google/uuid"
)

// GroupSnapshot is the flat projection the locale map builder consumes: one
// entry per default-locale document with every resolvable sibling attached.
type GroupSnapshot struct {
	GroupID uuid.UUID
	Refs    []document.SiblingRef
}

// ResolverOption configures the resolver at construction time.
type ResolverOption func(*Resolver)

// WithLogger overrides the resolver logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver walks translation groups and surfaces sibling references. Dangling
// links (deleted or missing documents) are dropped and logged, never surfaced
// as errors: a deleted sibling must not break navigation for the rest of the
// group.
type Resolver struct {
	documents document.DocumentRepository
	groups    document.GroupRepository
	logger    interfaces.Logger
}

// NewResolver constructs a resolver over the document and group repositories.
func NewResolver(documents document.DocumentRepository, groups document.GroupRepository, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		documents: documents,
		groups:    groups,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Siblings returns the sibling references for the document, including the
// document itself. A document outside any translation group yields a
// singleton list.
func (r *Resolver) Siblings(ctx context.Context, documentID uuid.UUID) ([]document.SiblingRef, error) {
	if documentID == uuid.Nil {
		return nil, document.ErrDocumentIDRequired
	}

	record, err := r.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	group, err := r.groups.GetByDocument(ctx, documentID)
	if err != nil {
		if document.IsNotFound(err) {
			return []document.SiblingRef{refOf(record)}, nil
		}
		return nil, err
	}

	return r.resolveGroup(ctx, group), nil
}

// Snapshots produces one GroupSnapshot per live default-locale document.
// Grouped documents carry their full sibling set; ungrouped documents become
// singleton snapshots keyed by their own id so they still receive map
// entries. Draft copies are skipped, their published counterpart represents
// the group.
func (r *Resolver) Snapshots(ctx context.Context, defaultLocale string) ([]GroupSnapshot, error) {
	records, err := r.documents.ListByLocale(ctx, defaultLocale)
	if err != nil {
		return nil, err
	}

	snapshots := make([]GroupSnapshot, 0, len(records))
	for _, record := range records {
		if record == nil || record.IsDraft() {
			continue
		}

		group, err := r.groups.GetByDocument(ctx, record.ID)
		if err != nil {
			if !document.IsNotFound(err) {
				return nil, err
			}
			snapshots = append(snapshots, GroupSnapshot{
				GroupID: record.ID,
				Refs:    []document.SiblingRef{refOf(record)},
			})
			continue
		}

		refs := r.resolveGroup(ctx, group)
		if len(refs) == 0 {
			continue
		}
		snapshots = append(snapshots, GroupSnapshot{
			GroupID: group.ID,
			Refs:    refs,
		})
	}
	return snapshots, nil
}

// resolveGroup loads every linked document, dropping links whose target no
// longer resolves.
func (r *Resolver) resolveGroup(ctx context.Context, group *document.TranslationGroup) []document.SiblingRef {
	refs := make([]document.SiblingRef, 0, len(group.Links))
	for _, link := range group.Links {
		if link == nil {
			continue
		}
		sibling, err := r.documents.GetByID(ctx, link.DocumentID)
		if err != nil {
			if document.IsNotFound(err) {
				r.logger.Warn("dropping dangling translation link",
					"group_id", group.ID.String(),
					"locale", link.Locale,
					"document_id", link.DocumentID.String(),
				)
				continue
			}
			r.logger.Error("sibling lookup failed",
				"group_id", group.ID.String(),
				"document_id", link.DocumentID.String(),
				"error", err,
			)
			continue
		}
		if sibling.IsDraft() {
			continue
		}
		refs = append(refs, refOf(sibling))
	}
	return refs
}

func refOf(record *document.Document) document.SiblingRef {
	return document.SiblingRef{
		DocumentID: record.ID,
		Locale:     record.Locale,
		Slug:       record.Slug,
		Title:      record.Title,
		Kind:       record.Kind,
	}
}
