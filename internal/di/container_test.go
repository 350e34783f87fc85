package di_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-localenav/internal/di"
	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/runtimeconfig"
)

func mustContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	c, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return c
}

func bilingualConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = []string{"en", "fr"}
	cfg.Paths.Prefixes = map[string]map[string]string{
		"article":       {"en": "blog", "fr": "blogue"},
		"article_index": {"en": "blog", "fr": "blogue"},
	}
	return cfg
}

func TestNewContainerSeedsConfiguredLocales(t *testing.T) {
	c := mustContainer(t, bilingualConfig())

	locales, err := c.LocaleRepository().List(context.Background())
	if err != nil {
		t.Fatalf("list locales: %v", err)
	}
	if len(locales) != 2 {
		t.Fatalf("expected 2 seeded locales, got %d", len(locales))
	}
	if !locales[0].IsDefault || locales[0].Code != "en" {
		t.Fatalf("expected default en first, got %+v", locales[0])
	}
	if locales[1].Code != "fr" || locales[1].Display != "French" {
		t.Fatalf("unexpected second locale: %+v", locales[1])
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	if _, err := di.NewContainer(runtimeconfig.Config{}); err != runtimeconfig.ErrDefaultLocaleRequired {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestContainerDocumentAndNavigationFlow(t *testing.T) {
	ctx := context.Background()
	c := mustContainer(t, bilingualConfig())
	svc := c.Documents()

	source, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateTranslation(ctx, document.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
	}); err != nil {
		t.Fatalf("create translation: %v", err)
	}

	localeMap, err := c.BuildLocaleMap(ctx)
	if err != nil {
		t.Fatalf("build locale map: %v", err)
	}
	set, ok := localeMap.Lookup("/en/blog/guide")
	if !ok {
		t.Fatalf("expected locale map entry for the en path")
	}
	if set["fr"].Slug != "guide-complet" {
		t.Fatalf("expected fr sibling, got %+v", set)
	}

	switcher, err := c.Switcher(ctx)
	if err != nil {
		t.Fatalf("switcher: %v", err)
	}
	target := switcher.ResolveTarget("/en/blog/guide", "fr")
	if target.Path != "/fr/blogue/guide-complet" || target.Missing {
		t.Fatalf("unexpected switch target: %+v", target)
	}
}

func TestContainerWithDocumentServiceOverride(t *testing.T) {
	cfg := bilingualConfig()
	injected := mustContainer(t, cfg).Documents()

	c := mustContainer(t, cfg, di.WithDocumentService(injected))
	if c.Documents() != injected {
		t.Fatalf("expected injected document service to be kept")
	}
}

func TestContainerMarkdownWiringFollowsFeatureFlag(t *testing.T) {
	cfg := bilingualConfig()
	if mustContainer(t, cfg).MarkdownImporter() != nil {
		t.Fatalf("expected no importer without the markdown feature")
	}

	cfg.Features.Markdown = true
	if mustContainer(t, cfg).MarkdownImporter() == nil {
		t.Fatalf("expected importer when the markdown feature is on")
	}
}
