package di_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-localenav/internal/di"
	"github.com/goliatone/go-localenav/internal/document"
	"github.com/goliatone/go-localenav/internal/identity"
	"github.com/goliatone/go-localenav/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newStorageDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	models := []any{
		(*document.Locale)(nil),
		(*document.Document)(nil),
		(*document.TranslationGroup)(nil),
		(*document.TranslationLink)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}

	for _, code := range []string{"en", "fr"} {
		locale := &document.Locale{
			ID:        identity.LocaleUUID(code),
			Code:      code,
			Display:   code,
			IsDefault: code == "en",
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if _, err := db.NewInsert().Model(locale).Exec(ctx); err != nil {
			t.Fatalf("seed locale %s: %v", code, err)
		}
	}
	return db
}

func TestContainerWithBunDBUsesSQLRepositories(t *testing.T) {
	ctx := context.Background()
	cfg := bilingualConfig()
	cfg.Storage.Provider = "bun"

	c := mustContainer(t, cfg, di.WithBunDB(newStorageDB(t)))
	svc := c.Documents()

	created, err := svc.Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "about", Title: "About",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two reads exercise the cache wrapper configured from Cache.Enabled.
	for i := 0; i < 2; i++ {
		fetched, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if fetched.Slug != "about" {
			t.Fatalf("unexpected slug: %s", fetched.Slug)
		}
	}

	if _, err := svc.Get(ctx, uuid.New()); !document.IsNotFound(err) {
		t.Fatalf("expected not-found mapping through bun repositories, got %v", err)
	}
}

func TestContainerWithSQLDBWrapsConfiguredDriver(t *testing.T) {
	ctx := context.Background()
	cfg := bilingualConfig()
	cfg.Cache.Enabled = false

	// The container wraps the raw handle itself; the tables just need to
	// exist on the same connection pool first.
	bunDB := newStorageDB(t)

	c := mustContainer(t, cfg, di.WithSQLDB(bunDB.DB))
	if c.DB() == nil {
		t.Fatalf("expected bun.DB derived from the raw handle")
	}

	if _, err := c.Documents().Create(ctx, document.CreateDocumentRequest{
		Kind: document.KindPage, Locale: "en", Slug: "contact", Title: "Contact",
	}); err != nil {
		t.Fatalf("create through wrapped handle: %v", err)
	}

	cfg.Storage.Driver = "oracle"
	if _, err := di.NewContainer(cfg, di.WithSQLDB(bunDB.DB)); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestContainerLocaleLookupAgainstSQL(t *testing.T) {
	ctx := context.Background()
	cfg := bilingualConfig()
	cfg.Cache.Enabled = false

	c := mustContainer(t, cfg, di.WithBunDB(newStorageDB(t)))

	locale, err := c.LocaleRepository().GetByCode(ctx, "fr")
	if err != nil {
		t.Fatalf("get locale: %v", err)
	}
	if locale.ID != identity.LocaleUUID("fr") {
		t.Fatalf("expected deterministic locale id, got %s", locale.ID)
	}
}
