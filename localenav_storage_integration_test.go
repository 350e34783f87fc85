package localenav_test

import (
	"context"
	"io/fs"
	"sort"
	"testing"
	"time"

	localenav "github.com/goliatone/go-localenav"
	"github.com/goliatone/go-localenav/internal/di"
	"github.com/goliatone/go-localenav/internal/identity"
	"github.com/goliatone/go-localenav/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newMigratedDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	migrations := localenav.GetMigrationsFS()
	entries, err := fs.ReadDir(migrations, "data/sql/migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := fs.ReadFile(migrations, "data/sql/migrations/"+name)
		if err != nil {
			t.Fatalf("read migration %s: %v", name, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			t.Fatalf("apply migration %s: %v", name, err)
		}
	}

	seedSQLLocales(t, db)
	return db
}

func seedSQLLocales(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()

	for _, row := range []struct {
		code      string
		display   string
		isDefault bool
	}{
		{"en", "English", true},
		{"fr", "French", false},
	} {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO locales (id, code, display_name, is_active, is_default, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			identity.LocaleUUID(row.code).String(), row.code, row.display, true, row.isDefault, time.Now(),
		); err != nil {
			t.Fatalf("seed locale %s: %v", row.code, err)
		}
	}
}

func TestModule_SQLiteBackedFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := bilingualConfig()
	cfg.Storage.Provider = "bun"
	cfg.Cache.Enabled = true
	cfg.Cache.DefaultTTL = 50 * time.Millisecond

	module, err := localenav.New(cfg, di.WithBunDB(newMigratedDB(t)))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	docs := module.Documents()

	source, err := docs.Create(ctx, localenav.CreateDocumentRequest{
		Kind: localenav.KindArticle, Locale: "en", Slug: "guide", Title: "Guide",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sibling, err := docs.CreateTranslation(ctx, localenav.CreateTranslationRequest{
		SourceID: source.ID, Locale: "fr", Slug: "guide-complet", Title: "Guide complet",
	})
	if err != nil {
		t.Fatalf("create translation: %v", err)
	}

	localeMap, err := module.LocaleMap(ctx)
	if err != nil {
		t.Fatalf("locale map: %v", err)
	}
	set, ok := localeMap.Lookup("/en/blog/guide")
	if !ok || set["fr"].DocumentID != sibling.ID {
		t.Fatalf("expected fr sibling through SQL storage, got %+v", set)
	}

	// Locale-scoped uniqueness holds end to end.
	if _, err := docs.Create(ctx, localenav.CreateDocumentRequest{
		Kind: localenav.KindArticle, Locale: "en", Slug: "guide", Title: "Duplicate",
	}); err != localenav.ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	report, err := module.ConsistencyScan(ctx)
	if err != nil {
		t.Fatalf("consistency scan: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected clean report, got %+v", report)
	}

	info, err := module.Locales().ResolveByCode(ctx, "fr")
	if err != nil {
		t.Fatalf("resolve locale: %v", err)
	}
	if info.Display != "French" {
		t.Fatalf("unexpected locale info: %+v", info)
	}
}
