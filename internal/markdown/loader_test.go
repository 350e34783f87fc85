package markdown_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/markdown"
)

func seedFS() fstest.MapFS {
	return fstest.MapFS{
		"content/en/guide.md": &fstest.MapFile{Data: []byte(`---
title: Guide
slug: guide
locale: en
kind: article
sort_order: 5
translation_key: guide
summary: A short guide
---
# Heading

Body **text**.
`)},
		"content/fr/guide.md": &fstest.MapFile{Data: []byte(`---
title: Guide complet
slug: guide-complet
locale: fr
kind: article
translation_key: guide
---
Contenu.
`)},
		"content/notes.txt": &fstest.MapFile{Data: []byte("not markdown")},
	}
}

func TestLoaderParsesFrontMatterAndRendersBody(t *testing.T) {
	loader := markdown.NewLoader(seedFS(), markdown.LoaderConfig{Recursive: true})

	seed, err := loader.LoadFile(context.Background(), "content/en/guide.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if seed.Kind != document.KindArticle || seed.Locale != "en" || seed.Slug != "guide" {
		t.Fatalf("unexpected seed metadata: %+v", seed)
	}
	if seed.SortOrder == nil || *seed.SortOrder != 5 {
		t.Fatalf("expected sort order 5, got %v", seed.SortOrder)
	}
	if seed.TranslationKey != "guide" {
		t.Fatalf("expected translation key, got %q", seed.TranslationKey)
	}

	body, _ := seed.Payload["body_html"].(string)
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "<strong>text</strong>") {
		t.Fatalf("expected rendered html body, got %q", body)
	}
	if seed.Payload["summary"] != "A short guide" {
		t.Fatalf("expected summary carried into payload")
	}
}

func TestLoaderDirectoryMatchesPatternOnly(t *testing.T) {
	loader := markdown.NewLoader(seedFS(), markdown.LoaderConfig{Recursive: true})

	seeds, err := loader.LoadDirectory(context.Background(), "content")
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 markdown seeds, got %d", len(seeds))
	}
	if seeds[0].Path > seeds[1].Path {
		t.Fatalf("expected stable path order")
	}
}

func TestLoaderRejectsUnknownKind(t *testing.T) {
	fs := fstest.MapFS{
		"bad.md": &fstest.MapFile{Data: []byte(`---
title: Bad
locale: en
kind: banner
---
Body.
`)},
	}
	loader := markdown.NewLoader(fs, markdown.LoaderConfig{})

	if _, err := loader.LoadFile(context.Background(), "bad.md"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
