package navigation_test

import (
	"testing"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/navigation"
	"github.com/goliatone/go-localenav/internal/translation"
	"github.com/google/uuid"
)

func newSwitcher(snapshots ...translation.GroupSnapshot) *navigation.Switcher {
	gen := newGenerator()
	m := navigation.BuildMap(gen, snapshots)
	return navigation.NewSwitcher(gen, m, []string{"en", "fr"})
}

func TestSwitcherMappedPathWithSibling(t *testing.T) {
	s := newSwitcher(articleSnapshot())

	target := s.ResolveTarget("/en/blog/guide", "fr")
	if target.Path != "/fr/blogue/guide-complet" {
		t.Fatalf("expected sibling path, got %q", target.Path)
	}
	if target.Missing {
		t.Fatalf("expected resolvable target")
	}

	back := s.ResolveTarget("/fr/blogue/guide-complet", "en")
	if back.Path != "/en/blog/guide" {
		t.Fatalf("expected round trip back to en path, got %q", back.Path)
	}
}

func TestSwitcherUnmappedPathFallsBackToLocaleRoot(t *testing.T) {
	s := newSwitcher(articleSnapshot())

	target := s.ResolveTarget("/en/nowhere", "fr")
	if target.Path != "/fr" {
		t.Fatalf("expected locale root fallback, got %q", target.Path)
	}
	if target.Missing {
		t.Fatalf("unmapped fallback is not a missing translation")
	}
}

func TestSwitcherMissingSiblingRendersCurrentSlugUnderTargetPattern(t *testing.T) {
	snapshot := translation.GroupSnapshot{
		GroupID: uuid.New(),
		Refs: []document.SiblingRef{
			{DocumentID: uuid.New(), Locale: "en", Slug: "guide", Kind: document.KindArticle},
		},
	}
	s := newSwitcher(snapshot)

	// No fr sibling exists: the en slug renders under the fr pattern. The
	// destination may 404, surfacing the missing translation.
	target := s.ResolveTarget("/en/blog/guide", "fr")
	if target.Path != "/fr/blogue/guide" {
		t.Fatalf("expected current slug under target pattern, got %q", target.Path)
	}
	if !target.Missing {
		t.Fatalf("expected target flagged missing")
	}
}

func TestSwitcherTargetsCoversEveryLocale(t *testing.T) {
	s := newSwitcher(articleSnapshot())

	targets := s.Targets("/en/blog/guide")
	if len(targets) != 2 {
		t.Fatalf("expected a target per locale, got %d", len(targets))
	}
	if targets[0].Locale != "en" || targets[1].Locale != "fr" {
		t.Fatalf("expected configured locale order, got %+v", targets)
	}
	if targets[0].Path != "/en/blog/guide" || targets[1].Path != "/fr/blogue/guide-complet" {
		t.Fatalf("unexpected target paths: %+v", targets)
	}
}
