package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitecms/internal/docstore/bunstore"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/pkg/testsupport"
)

func TestOpenSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig()
	cfg.Store.Provider = runtimeconfig.StoreSQLite
	cfg.Store.DSN = testsupport.SQLiteDSN("di_open")

	container, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Close(ctx); err != nil {
			t.Fatalf("close: %v", err)
		}
	})

	if _, ok := container.Store().(*bunstore.Store); !ok {
		t.Fatalf("expected bun store, got %T", container.Store())
	}

	general := container.Site().General
	value := general.Defaults()
	value.WebsiteName = "Sqlite Site"
	if _, err := general.Update(ctx, value); err != nil {
		t.Fatalf("update general: %v", err)
	}
	got, err := general.Get(ctx)
	if err != nil {
		t.Fatalf("get general: %v", err)
	}
	if got.WebsiteName != "Sqlite Site" {
		t.Fatalf("expected persisted name, got %q", got.WebsiteName)
	}
}

func TestCacheDisabledSkipsCacheService(t *testing.T) {
	cfg := newTestConfig()
	cfg.Cache.Enabled = false
	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.cacheService != nil || container.keySerializer != nil {
		t.Fatal("expected no cache when disabled")
	}

	cached, err := NewContainer(newTestConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if cached.cacheService == nil || cached.keySerializer == nil {
		t.Fatal("expected default cache service when enabled")
	}
}

func TestWithBunDBUsesSharedConnection(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewSQLiteBunDB(t, "di_bun")
	store := bunstore.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	container, err := NewContainer(newTestConfig(), WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.Store().(*bunstore.Store); !ok {
		t.Fatalf("expected bun store, got %T", container.Store())
	}
	if _, err := container.Site().Testimonials.List(ctx); err != nil {
		t.Fatalf("list testimonials: %v", err)
	}
}
