package consistency

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/logging"
	"github.com/goliatone/go-localenav/pkg/interfaces"
	"github.com/google/uuid"
)

// ErrNilReport indicates Scan was invoked without a report accumulator.
var ErrNilReport = errors.New("consistency: report accumulator is required")

// OrphanFinding records a non-default-locale document with no resolvable
// default-locale sibling.
type OrphanFinding struct {
	DocumentID uuid.UUID `json:"document_id"`
	Locale     string    `json:"locale"`
	Slug       string    `json:"slug"`
	Kind       string    `json:"kind"`
}

// OrderingFinding records a document whose own sort order disagrees with the
// effective order inherited from its default-locale sibling.
type OrderingFinding struct {
	DocumentID     uuid.UUID `json:"document_id"`
	Locale         string    `json:"locale"`
	Slug           string    `json:"slug"`
	OwnOrder       int       `json:"own_order"`
	EffectiveOrder int       `json:"effective_order"`
}

// DanglingLinkFinding records a translation link whose target document no
// longer resolves.
type DanglingLinkFinding struct {
	GroupID    uuid.UUID `json:"group_id"`
	Locale     string    `json:"locale"`
	DocumentID uuid.UUID `json:"document_id"`
}

// Report accumulates scan findings. Callers construct one, pass it to Scan,
// and read the results back; the checker keeps no counters of its own.
type Report struct {
	StartedAt        time.Time             `json:"started_at"`
	FinishedAt       time.Time             `json:"finished_at"`
	ScannedDocuments int                   `json:"scanned_documents"`
	Orphans          []OrphanFinding       `json:"orphans,omitempty"`
	StaleOrderings   []OrderingFinding     `json:"stale_orderings,omitempty"`
	DanglingLinks    []DanglingLinkFinding `json:"dangling_links,omitempty"`
}

// Clean reports whether the scan surfaced no findings.
func (r *Report) Clean() bool {
	return len(r.Orphans) == 0 && len(r.StaleOrderings) == 0 && len(r.DanglingLinks) == 0
}

// CheckerOption configures the checker at construction time.
type CheckerOption func(*Checker)

// WithClock overrides the clock used to stamp reports.
func WithClock(clock func() time.Time) CheckerOption {
	return func(c *Checker) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithLogger overrides the checker logger.
func WithLogger(logger interfaces.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Checker audits translation groups for orphaned documents, stale orderings,
// and dangling links. The default locale is threaded in explicitly; nothing
// here consults an ambient locale constant.
type Checker struct {
	documents     document.DocumentRepository
	groups        document.GroupRepository
	defaultLocale string
	now           func() time.Time
	logger        interfaces.Logger
}

// NewChecker constructs a checker for the given default locale.
func NewChecker(documents document.DocumentRepository, groups document.GroupRepository, defaultLocale string, opts ...CheckerOption) *Checker {
	c := &Checker{
		documents:     documents,
		groups:        groups,
		defaultLocale: strings.ToLower(strings.TrimSpace(defaultLocale)),
		now:           time.Now,
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsOrphaned reports whether the document is a non-default-locale record with
// no resolvable default-locale sibling. Default-locale documents are never
// orphans.
func (c *Checker) IsOrphaned(ctx context.Context, doc *document.Document) (bool, error) {
	if doc == nil {
		return false, document.ErrDocumentIDRequired
	}
	if !doc.Kind.Localized() || doc.Locale == c.defaultLocale {
		return false, nil
	}

	sibling, err := c.defaultSibling(ctx, doc)
	if err != nil {
		return false, err
	}
	return sibling == nil, nil
}

// EffectiveOrder resolves the sort order used for cross-locale list
// rendering: the default-locale sibling's order wins when it resolves, the
// document's own order applies otherwise. A translation carrying order 2
// whose default sibling carries 5 sorts at 5; the stale local value is
// reported by Scan rather than honored here.
func (c *Checker) EffectiveOrder(ctx context.Context, doc *document.Document) (int, error) {
	if doc == nil {
		return 0, document.ErrDocumentIDRequired
	}

	if doc.Kind.Localized() && doc.Locale != c.defaultLocale {
		sibling, err := c.defaultSibling(ctx, doc)
		if err != nil {
			return 0, err
		}
		if sibling != nil && sibling.SortOrder != nil {
			return *sibling.SortOrder, nil
		}
	}

	if doc.SortOrder != nil {
		return *doc.SortOrder, nil
	}
	return 0, nil
}

// SortByEffectiveOrder returns the documents ordered by their effective
// order, stable across records sharing a value.
func (c *Checker) SortByEffectiveOrder(ctx context.Context, docs []*document.Document) ([]*document.Document, error) {
	type ordered struct {
		doc   *document.Document
		order int
	}

	items := make([]ordered, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		order, err := c.EffectiveOrder(ctx, doc)
		if err != nil {
			return nil, err
		}
		items = append(items, ordered{doc: doc, order: order})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].order < items[j].order
	})

	out := make([]*document.Document, len(items))
	for i, item := range items {
		out[i] = item.doc
	}
	return out, nil
}

// Scan walks every live document and every translation group, appending
// findings to the supplied report.
func (c *Checker) Scan(ctx context.Context, report *Report) error {
	if report == nil {
		return ErrNilReport
	}
	report.StartedAt = c.now()

	docs, err := c.documents.List(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc == nil || doc.IsDraft() {
			continue
		}
		report.ScannedDocuments++

		orphaned, err := c.IsOrphaned(ctx, doc)
		if err != nil {
			return err
		}
		if orphaned {
			report.Orphans = append(report.Orphans, OrphanFinding{
				DocumentID: doc.ID,
				Locale:     doc.Locale,
				Slug:       doc.Slug,
				Kind:       doc.Kind.String(),
			})
		}

		if doc.SortOrder != nil {
			effective, err := c.EffectiveOrder(ctx, doc)
			if err != nil {
				return err
			}
			if effective != *doc.SortOrder {
				report.StaleOrderings = append(report.StaleOrderings, OrderingFinding{
					DocumentID:     doc.ID,
					Locale:         doc.Locale,
					Slug:           doc.Slug,
					OwnOrder:       *doc.SortOrder,
					EffectiveOrder: effective,
				})
			}
		}
	}

	groups, err := c.groups.List(ctx)
	if err != nil {
		return err
	}
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, link := range group.Links {
			if link == nil {
				continue
			}
			if _, err := c.documents.GetByID(ctx, link.DocumentID); err != nil {
				if document.IsNotFound(err) {
					report.DanglingLinks = append(report.DanglingLinks, DanglingLinkFinding{
						GroupID:    group.ID,
						Locale:     link.Locale,
						DocumentID: link.DocumentID,
					})
					continue
				}
				return err
			}
		}
	}

	report.FinishedAt = c.now()
	c.logger.Info("consistency scan finished",
		"scanned", report.ScannedDocuments,
		"orphans", len(report.Orphans),
		"stale_orderings", len(report.StaleOrderings),
		"dangling_links", len(report.DanglingLinks),
	)
	return nil
}

// defaultSibling resolves the live default-locale document of doc's group, or
// nil when the document is ungrouped, the group has no default-locale slot,
// or the slot dangles.
func (c *Checker) defaultSibling(ctx context.Context, doc *document.Document) (*document.Document, error) {
	group, err := c.groups.GetByDocument(ctx, doc.ID)
	if err != nil {
		if document.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	link := group.LinkFor(c.defaultLocale)
	if link == nil {
		return nil, nil
	}

	sibling, err := c.documents.GetByID(ctx, link.DocumentID)
	if err != nil {
		if document.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if sibling.IsDraft() {
		return nil, nil
	}
	return sibling, nil
}
