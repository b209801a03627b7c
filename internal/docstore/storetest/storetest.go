// Package storetest holds behaviour checks shared by every docstore backend.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/docstore"
)

// Run exercises store semantics against a fresh store from factory.
func Run(t *testing.T, factory func(t *testing.T) docstore.Store) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		store := factory(t)
		if _, err := store.Get(context.Background(), "settings", "general"); !errors.Is(err, docstore.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("merge write keeps absent fields", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		mustSet(t, store, "settings", "email", map[string]any{
			"smtp_host": "smtp.example.com",
			"smtp_port": float64(587),
			"nested":    map[string]any{"a": "1", "b": "2"},
		}, false)
		mustSet(t, store, "settings", "email", map[string]any{
			"smtp_host": "mail.internal",
			"nested":    map[string]any{"b": "3"},
		}, true)

		doc, err := store.Get(ctx, "settings", "email")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if doc.Data["smtp_host"] != "mail.internal" {
			t.Fatalf("expected host overwritten, got %v", doc.Data["smtp_host"])
		}
		if doc.Data["smtp_port"] != float64(587) {
			t.Fatalf("expected port kept, got %#v", doc.Data["smtp_port"])
		}
		nested, _ := doc.Data["nested"].(map[string]any)
		if nested["a"] != "1" || nested["b"] != "3" {
			t.Fatalf("expected nested merge, got %v", nested)
		}
	})

	t.Run("overwrite replaces document", func(t *testing.T) {
		store := factory(t)
		mustSet(t, store, "pages", "home", map[string]any{"a": "1", "b": "2"}, false)
		mustSet(t, store, "pages", "home", map[string]any{"a": "x"}, false)
		doc, err := store.Get(context.Background(), "pages", "home")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if _, ok := doc.Data["b"]; ok {
			t.Fatalf("expected field b removed, got %v", doc.Data)
		}
	})

	t.Run("ordered listing", func(t *testing.T) {
		store := factory(t)
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mustSet(t, store, "services", "c", map[string]any{"displayOrder": float64(2), "createdAt": base}, false)
		mustSet(t, store, "services", "a", map[string]any{"displayOrder": float64(1), "createdAt": base.Add(time.Minute)}, false)
		mustSet(t, store, "services", "b", map[string]any{"displayOrder": float64(1), "createdAt": base}, false)

		docs, err := store.ListOrdered(context.Background(), "services", docstore.Asc("displayOrder"), docstore.Asc("createdAt"))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		assertIDs(t, docs, "b", "a", "c")

		docs, err = store.ListOrdered(context.Background(), "services", docstore.Desc("createdAt"))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		assertIDs(t, docs, "a", "b", "c")
	})

	t.Run("batch commit", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		mustSet(t, store, "faqs", "old-1", map[string]any{"question": "q1"}, false)
		mustSet(t, store, "faqs", "old-2", map[string]any{"question": "q2"}, false)

		batch := docstore.NewBatch().
			Delete("faqs", "old-1").
			Delete("faqs", "old-2").
			Set("faqs", "new-1", map[string]any{"question": "n1"}, false).
			Set("pages/why-choose-us/features", "f1", map[string]any{"title": "Fast"}, false)
		if err := store.Commit(ctx, batch); err != nil {
			t.Fatalf("commit: %v", err)
		}

		docs, err := store.List(ctx, "faqs")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		assertIDs(t, docs, "new-1")

		features, err := store.List(ctx, "pages/why-choose-us/features")
		if err != nil {
			t.Fatalf("list features: %v", err)
		}
		assertIDs(t, features, "f1")
	})

	t.Run("invalid paths", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		if err := store.Set(ctx, "", "x", map[string]any{}, false); !errors.Is(err, docstore.ErrCollectionRequired) {
			t.Fatalf("expected ErrCollectionRequired, got %v", err)
		}
		if err := store.Set(ctx, "pages/home", "x", map[string]any{}, false); !errors.Is(err, docstore.ErrCollectionRequired) {
			t.Fatalf("expected document path rejected as collection, got %v", err)
		}
		if _, err := store.Get(ctx, "pages", " "); !errors.Is(err, docstore.ErrIDRequired) {
			t.Fatalf("expected ErrIDRequired, got %v", err)
		}
	})
}

func mustSet(t *testing.T, store docstore.Store, collection, id string, data map[string]any, merge bool) {
	t.Helper()
	if err := store.Set(context.Background(), collection, id, data, merge); err != nil {
		t.Fatalf("set %s/%s: %v", collection, id, err)
	}
}

func assertIDs(t *testing.T, docs []docstore.Document, ids ...string) {
	t.Helper()
	if len(docs) != len(ids) {
		t.Fatalf("expected %d documents, got %d", len(ids), len(docs))
	}
	for i, id := range ids {
		if docs[i].ID != id {
			got := make([]string, len(docs))
			for j, doc := range docs {
				got[j] = doc.ID
			}
			t.Fatalf("expected order %v, got %v", ids, got)
		}
	}
}
