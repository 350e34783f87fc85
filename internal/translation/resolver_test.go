package translation_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/translation"
	"github.com/google/uuid"
)

func newFixture(t *testing.T) (document.Service, *translation.Resolver) {
	t.Helper()

	docs := document.NewMemoryDocumentRepository()
	groups := document.NewMemoryGroupRepository()
	locales := document.NewMemoryLocaleRepository()
	locales.Put(&document.Locale{ID: uuid.New(), Code: "en", Display: "English", IsDefault: true, IsActive: true})
	locales.Put(&document.Locale{ID: uuid.New(), Code: "fr", Display: "French", IsActive: true})

	svc := document.NewService(docs, groups, locales, document.WithClock(func() time.Time {
		return time.Unix(1700000000, 0)
	}))
	return svc, translation.NewResolver(docs, groups)
}

func TestResolverSiblingsIncludesSelf(t *testing.T) {
	svc, resolver := newFixture(t)
	ctx := context.Background()

	source, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sibling, err := svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
	})
	if err != nil {
		t.Fatalf("translation: %v", err)
	}

	refs, err := resolver.Siblings(ctx, source.ID)
	if err != nil {
		t.Fatalf("siblings: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}

	byLocale := map[string]document.SiblingRef{}
	for _, ref := range refs {
		byLocale[ref.Locale] = ref
	}
	if byLocale["en"].DocumentID != source.ID {
		t.Fatalf("expected self in sibling set")
	}
	if byLocale["fr"].DocumentID != sibling.ID {
		t.Fatalf("expected fr sibling in set")
	}
}

func TestResolverSiblingsSingletonWhenUngrouped(t *testing.T) {
	svc, resolver := newFixture(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "about", Title: "About",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	refs, err := resolver.Siblings(ctx, doc.ID)
	if err != nil {
		t.Fatalf("siblings: %v", err)
	}
	if len(refs) != 1 || refs[0].DocumentID != doc.ID {
		t.Fatalf("expected singleton self ref, got %+v", refs)
	}
}

func TestResolverDropsDanglingLinks(t *testing.T) {
	svc, resolver := newFixture(t)
	ctx := context.Background()

	source, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sibling, err := svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
	})
	if err != nil {
		t.Fatalf("translation: %v", err)
	}

	if err := svc.Delete(ctx, sibling.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	refs, err := resolver.Siblings(ctx, source.ID)
	if err != nil {
		t.Fatalf("siblings after delete: %v", err)
	}
	if len(refs) != 1 || refs[0].Locale != "en" {
		t.Fatalf("expected dangling fr link dropped, got %+v", refs)
	}
}

func TestResolverSnapshotsCoverUngroupedDocuments(t *testing.T) {
	svc, resolver := newFixture(t)
	ctx := context.Background()

	grouped, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
	})
	if err != nil {
		t.Fatalf("create grouped: %v", err)
	}
	if _, err := svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: grouped.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
	}); err != nil {
		t.Fatalf("translation: %v", err)
	}

	standalone, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "imprint", Title: "Imprint",
	})
	if err != nil {
		t.Fatalf("create standalone: %v", err)
	}

	snapshots, err := resolver.Snapshots(ctx, "en")
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	var sawGrouped, sawStandalone bool
	for _, snap := range snapshots {
		switch {
		case len(snap.Refs) == 2:
			sawGrouped = true
		case len(snap.Refs) == 1 && snap.Refs[0].DocumentID == standalone.ID:
			sawStandalone = true
		}
	}
	if !sawGrouped || !sawStandalone {
		t.Fatalf("missing snapshot coverage: grouped=%v standalone=%v", sawGrouped, sawStandalone)
	}
}
