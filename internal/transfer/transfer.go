// Package transfer exports and imports the managed collections as one JSON
// snapshot.
package transfer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Managed lists the top level collections covered by export and import.
var Managed = []string{
	"contact_submissions",
	"faqs",
	"legal_pages",
	"orders",
	"pages",
	"page_seo",
	"portfolio_items",
	"pricing_plans",
	"services",
	"settings",
	"skills",
	"testimonials",
	"webSettings",
}

// Nested subcollections exported next to Managed.
var Nested = []string{"pages/why-choose-us/features"}

const pagesPrefix = "pages/"

// Snapshot maps a collection path to its documents, each carrying its id.
type Snapshot map[string][]map[string]any

// Report describes what an import wrote and skipped.
type Report struct {
	Collections map[string]int `json:"collections"`
	Skipped     []string       `json:"skipped,omitempty"`
}

type Option func(*Service)

func WithNotifier(notifier revalidate.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type Service struct {
	store    docstore.Store
	notifier revalidate.Notifier
	logger   interfaces.Logger
}

func NewService(store docstore.Store, opts ...Option) *Service {
	if store == nil {
		panic(ErrStoreRequired)
	}
	s := &Service{store: store, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// IsManaged reports whether a snapshot key may be imported.
func IsManaged(collection string) bool {
	if strings.HasPrefix(collection, pagesPrefix) {
		return true
	}
	for _, name := range Managed {
		if name == collection {
			return true
		}
	}
	return false
}

// Export reads every managed collection. It has no side effects.
func (s *Service) Export(ctx context.Context) (Snapshot, error) {
	snapshot := Snapshot{}
	for _, collection := range append(append([]string{}, Managed...), Nested...) {
		docs, err := s.store.List(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("transfer: export %s: %w", collection, err)
		}
		items := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			item := docstore.CloneData(doc.Data)
			if item == nil {
				item = map[string]any{}
			}
			item["id"] = doc.ID
			items = append(items, item)
		}
		snapshot[collection] = items
	}
	s.logger.Info("transfer.export.done", "collections", len(snapshot))
	return snapshot, nil
}

// Import replaces each managed collection present in raw with the provided
// documents under their original ids. Every delete and insert is committed
// in one batch; a parse or schema failure writes nothing.
func (s *Service) Import(ctx context.Context, raw []byte) (Report, error) {
	report := Report{Collections: map[string]int{}}
	doc, err := decodeSnapshot(raw)
	if err != nil {
		return report, err
	}
	if err := validateSnapshot(doc); err != nil {
		return report, &ImportError{Stage: StageValidate, Err: err}
	}
	data := doc.(map[string]any)

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	batch := docstore.NewBatch()
	for _, collection := range keys {
		if !IsManaged(collection) {
			s.logger.Warn("transfer.import.skipped", "collection", collection, "reason", "unmanaged")
			report.Skipped = append(report.Skipped, collection)
			continue
		}
		items, ok := data[collection].([]any)
		if !ok {
			s.logger.Warn("transfer.import.skipped", "collection", collection, "reason", "not an array")
			report.Skipped = append(report.Skipped, collection)
			continue
		}
		if err := docstore.CheckCollection(collection); err != nil {
			return report, &ImportError{Stage: collection, Err: err}
		}

		existing, err := s.store.List(ctx, collection)
		if err != nil {
			return report, &ImportError{Stage: collection, Err: err}
		}
		for _, current := range existing {
			batch.Delete(collection, current.ID)
		}
		for _, entry := range items {
			item := docstore.CloneData(entry.(map[string]any))
			id := item["id"].(string)
			delete(item, "id")
			batch.Set(collection, id, item, false)
		}
		report.Collections[collection] = len(items)
	}

	if batch.Len() > 0 {
		if err := s.store.Commit(ctx, batch); err != nil {
			s.logger.Error("transfer.import.failed", "error", err)
			return report, &ImportError{Stage: "commit", Err: err}
		}
	}
	s.logger.Info("transfer.import.done", "collections", len(report.Collections), "skipped", len(report.Skipped), "ops", batch.Len())
	if s.notifier != nil {
		s.notifier.Notify(ctx, revalidate.Import)
	}
	return report, nil
}
