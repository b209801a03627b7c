package bunstore

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/docstore/storetest"
	"github.com/goliatone/go-sitecms/pkg/testsupport"
)

func TestBunStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) docstore.Store {
		return newTestStore(t)
	})
}

func TestBunStoreCommitSkipsEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	if err := store.Commit(context.Background(), docstore.NewBatch()); err != nil {
		t.Fatalf("expected empty batch to be a no-op, got %v", err)
	}
}

func TestBunStoreKeepsTimestampsOrderable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"x", "y", "z"} {
		data := map[string]any{"createdAt": base.Add(time.Duration(3-i) * time.Microsecond)}
		if err := store.Set(ctx, "testimonials", id, data, false); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	docs, err := store.ListOrdered(ctx, "testimonials", docstore.Asc("createdAt"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if docs[0].ID != "z" || docs[2].ID != "x" {
		t.Fatalf("unexpected order %s %s %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testsupport.NewSQLiteBunDB(t, "bunstore_test")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}
