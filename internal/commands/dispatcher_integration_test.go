package commands_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-sitecms/internal/commands/sitecmd"
	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

const faqSnapshot = `{"faqs": [{"id": "f1", "question": "Do you host?", "answer": "Yes, on request."}]}`

// flakyStore fails the first failures commits.
type flakyStore struct {
	*docstore.MemoryStore
	failures int32
	commits  atomic.Int32
}

func (s *flakyStore) Commit(ctx context.Context, batch *docstore.Batch) error {
	if s.commits.Add(1) <= s.failures {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Commit(ctx, batch)
}

func TestDispatchedImportRetriesTransientStoreFailure(t *testing.T) {
	store := &flakyStore{MemoryStore: docstore.NewMemoryStore(), failures: 1}
	handler := sitecmd.NewImportSiteHandler(transfer.NewService(store), nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), sitecmd.ImportSiteCommand{Snapshot: []byte(faqSnapshot)}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if got := store.commits.Load(); got != 2 {
		t.Fatalf("expected 2 commits (initial + retry), got %d", got)
	}
	if _, err := store.Get(context.Background(), "faqs", "f1"); err != nil {
		t.Fatalf("expected imported faq: %v", err)
	}
}

func TestDispatchedImportExhaustsRetries(t *testing.T) {
	store := &flakyStore{MemoryStore: docstore.NewMemoryStore(), failures: 100}
	handler := sitecmd.NewImportSiteHandler(transfer.NewService(store), nil)

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), sitecmd.ImportSiteCommand{Snapshot: []byte(faqSnapshot)})
	if err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if got := store.commits.Load(); got != 3 {
		t.Fatalf("expected 3 commits (initial + 2 retries), got %d", got)
	}
}

func TestDispatchedRevalidateReachesSinks(t *testing.T) {
	recorder := revalidate.NewRecorder(0)
	handler := sitecmd.NewRevalidateHandler(revalidate.NewDispatcher(revalidate.WithSink(recorder)), nil)

	sub := dispatcher.SubscribeCommand(handler)
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), sitecmd.RevalidateCommand{ContentType: revalidate.Testimonials}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	events := recorder.Events()
	if len(events) != 1 || events[0].ContentType != revalidate.Testimonials {
		t.Fatalf("expected one testimonials event, got %+v", events)
	}
}
