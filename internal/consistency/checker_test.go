package consistency_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-localenav/internal/consistency"
	"github.com/goliatone/go-localenav/internal/document"
	"github.com/google/uuid"
)

type fixture struct {
	svc     document.Service
	checker *consistency.Checker
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	docs := document.NewMemoryDocumentRepository()
	groups := document.NewMemoryGroupRepository()
	locales := document.NewMemoryLocaleRepository()
	locales.Put(&document.Locale{ID: uuid.New(), Code: "en", Display: "English", IsDefault: true, IsActive: true})
	locales.Put(&document.Locale{ID: uuid.New(), Code: "fr", Display: "French", IsActive: true})

	svc := document.NewService(docs, groups, locales, document.WithClock(func() time.Time {
		return time.Unix(1700000000, 0)
	}))
	checker := consistency.NewChecker(docs, groups, "en", consistency.WithClock(func() time.Time {
		return time.Unix(1700000100, 0)
	}))
	return fixture{svc: svc, checker: checker}
}

func intPtr(v int) *int { return &v }

func TestCheckerOrphanDetection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A fr document with no translation group is an orphan.
	orphan, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "fr", Slug: "seul", Title: "Seul",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.checker.IsOrphaned(ctx, orphan)
	if err != nil {
		t.Fatalf("IsOrphaned: %v", err)
	}
	if !got {
		t.Fatalf("expected ungrouped fr document to be orphaned")
	}

	// Linking it to an en sibling clears the finding.
	source, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "alone", Title: "Alone",
	})
	if err != nil {
		t.Fatalf("create en: %v", err)
	}
	linked, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "ensemble", Title: "Ensemble",
	})
	if err != nil {
		t.Fatalf("translation: %v", err)
	}

	got, err = f.checker.IsOrphaned(ctx, linked)
	if err != nil {
		t.Fatalf("IsOrphaned linked: %v", err)
	}
	if got {
		t.Fatalf("expected linked fr document not to be orphaned")
	}

	// Default-locale documents are never orphans.
	got, err = f.checker.IsOrphaned(ctx, source)
	if err != nil {
		t.Fatalf("IsOrphaned default: %v", err)
	}
	if got {
		t.Fatalf("default-locale document must not be orphaned")
	}
}

func TestCheckerEffectiveOrderPrefersDefaultSibling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	source, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
		SortOrder: intPtr(5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sibling, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
		SortOrder: intPtr(2),
	})
	if err != nil {
		t.Fatalf("translation: %v", err)
	}

	// The stale local value 2 loses to the default sibling's 5.
	order, err := f.checker.EffectiveOrder(ctx, sibling)
	if err != nil {
		t.Fatalf("EffectiveOrder: %v", err)
	}
	if order != 5 {
		t.Fatalf("expected effective order 5, got %d", order)
	}
}

func TestCheckerEffectiveOrderFallsBackToOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "fr", Slug: "solo", Title: "Solo",
		SortOrder: intPtr(3),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	order, err := f.checker.EffectiveOrder(ctx, doc)
	if err != nil {
		t.Fatalf("EffectiveOrder: %v", err)
	}
	if order != 3 {
		t.Fatalf("expected own order 3, got %d", order)
	}
}

func TestCheckerSortByEffectiveOrderIsUniform(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "first", Title: "First",
		SortOrder: intPtr(1),
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "second", Title: "Second",
		SortOrder: intPtr(5),
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// A fr translation of "second" carrying a stale lower order must still
	// sort after "first"'s translation set.
	frSecond, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: second.ID, Locale: "fr", Slug: "deuxieme", Title: "Deuxieme",
		SortOrder: intPtr(0),
	})
	if err != nil {
		t.Fatalf("translate second: %v", err)
	}
	frFirst, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: first.ID, Locale: "fr", Slug: "premier", Title: "Premier",
		SortOrder: intPtr(1),
	})
	if err != nil {
		t.Fatalf("translate first: %v", err)
	}

	sorted, err := f.checker.SortByEffectiveOrder(ctx, []*document.Document{frSecond, frFirst})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if sorted[0].ID != frFirst.ID || sorted[1].ID != frSecond.ID {
		t.Fatalf("expected default-locale ordering to win, got %q then %q", sorted[0].Slug, sorted[1].Slug)
	}
}

func TestCheckerScanAccumulatesFindings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Orphan: ungrouped fr page.
	if _, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "fr", Slug: "seul", Title: "Seul",
	}); err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	// Stale ordering: fr translation carrying 2 against the default's 5.
	source, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
		SortOrder: intPtr(5),
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	if _, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
		SortOrder: intPtr(2),
	}); err != nil {
		t.Fatalf("translation: %v", err)
	}

	// Dangling link: delete a linked sibling.
	other, err := f.svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "team", Title: "Team",
	})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	dangling, err := f.svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: other.ID, Locale: "fr", Slug: "equipe", Title: "Equipe",
	})
	if err != nil {
		t.Fatalf("translate other: %v", err)
	}
	if err := f.svc.Delete(ctx, dangling.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var report consistency.Report
	if err := f.checker.Scan(ctx, &report); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if report.Clean() {
		t.Fatalf("expected findings in report")
	}
	if len(report.Orphans) != 1 || report.Orphans[0].Slug != "seul" {
		t.Fatalf("unexpected orphan findings: %+v", report.Orphans)
	}
	if len(report.StaleOrderings) != 1 || report.StaleOrderings[0].OwnOrder != 2 || report.StaleOrderings[0].EffectiveOrder != 5 {
		t.Fatalf("unexpected ordering findings: %+v", report.StaleOrderings)
	}
	if len(report.DanglingLinks) != 1 || report.DanglingLinks[0].DocumentID != dangling.ID {
		t.Fatalf("unexpected dangling findings: %+v", report.DanglingLinks)
	}
	if report.FinishedAt.IsZero() {
		t.Fatalf("expected finished timestamp")
	}
}

func TestCheckerScanRequiresReport(t *testing.T) {
	f := newFixture(t)

	if err := f.checker.Scan(context.Background(), nil); err != consistency.ErrNilReport {
		t.Fatalf("expected ErrNilReport, got %v", err)
	}
}
