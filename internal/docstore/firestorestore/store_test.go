package firestorestore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/docstore/storetest"
)

// Runs only against the Firestore emulator (FIRESTORE_EMULATOR_HOST).
func TestFirestoreStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	store, err := Open(ctx, "sitecms-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	storetest.Run(t, func(t *testing.T) docstore.Store {
		for _, collection := range []string{"settings", "pages", "services", "faqs", "skills", "pages/why-choose-us/features"} {
			docs, err := store.List(ctx, collection)
			if err != nil {
				t.Fatalf("list %s: %v", collection, err)
			}
			for _, doc := range docs {
				if err := store.Delete(ctx, collection, doc.ID); err != nil {
					t.Fatalf("reset %s/%s: %v", collection, doc.ID, err)
				}
			}
		}
		return store
	})
}

func TestCommitRejectsOversizedBatch(t *testing.T) {
	store := &Store{}
	batch := docstore.NewBatch()
	for i := 0; i <= MaxBatchWrites; i++ {
		batch.Delete("faqs", "doc")
	}
	if err := store.Commit(context.Background(), batch); !errors.Is(err, docstore.ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
}

func TestSetOptions(t *testing.T) {
	if len(setOptions(false)) != 0 {
		t.Fatal("expected overwrite without options")
	}
	if len(setOptions(true)) != 1 {
		t.Fatal("expected MergeAll for merge writes")
	}
}
