package docstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/docstore/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) docstore.Store {
		return docstore.NewMemoryStore()
	})
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	data := map[string]any{"items": []any{"a"}}
	if err := store.Set(ctx, "skills", "s1", data, false); err != nil {
		t.Fatalf("set: %v", err)
	}
	data["items"].([]any)[0] = "mutated"

	doc, err := store.Get(ctx, "skills", "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Data["items"].([]any)[0] != "a" {
		t.Fatal("expected stored data to be isolated from caller")
	}
}

func TestMemoryStoreFailWith(t *testing.T) {
	store := docstore.NewMemoryStore()
	boom := errors.New("unavailable")
	store.FailWith(boom)
	if _, err := store.List(context.Background(), "faqs"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	store.FailWith(nil)
	if _, err := store.List(context.Background(), "faqs"); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
}

func TestMergeDataReplacesArrays(t *testing.T) {
	merged := docstore.MergeData(
		map[string]any{"features": []any{"a", "b"}, "keep": "yes"},
		map[string]any{"features": []any{"c"}},
	)
	if len(merged["features"].([]any)) != 1 || merged["keep"] != "yes" {
		t.Fatalf("unexpected merge result %v", merged)
	}
}

func TestEncodeDecode(t *testing.T) {
	type faq struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	data, err := docstore.Encode(faq{Question: "q", Answer: "a"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out faq
	if err := docstore.Decode(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Question != "q" || out.Answer != "a" {
		t.Fatalf("unexpected decode %+v", out)
	}
}
