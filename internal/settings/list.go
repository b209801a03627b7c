package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	FieldDisplayOrder = "displayOrder"
	FieldCreatedAt    = fieldCreatedAt
)

// DefaultListOrder sorts by explicit display order, then creation time.
var DefaultListOrder = []docstore.OrderBy{docstore.Asc(FieldDisplayOrder), docstore.Asc(FieldCreatedAt)}

// ListConfig describes a collection that is saved as a whole.
type ListConfig[T any] struct {
	ContentType string
	Collection  string
	// Defaults seeds an empty collection on read. Nil leaves it empty.
	Defaults func() []T
	Order    []docstore.OrderBy
	Targets  []revalidate.Target
	Migrate  func(map[string]any)
	// Normalize receives the position of the item in the read result.
	Normalize func(index int, item *T)
	// Skip drops submitted items before they are validated or written.
	Skip func(item T) bool
}

// List implements replace-all collections: every save deletes the stored
// documents and inserts the submitted items with fresh ids in one batch.
type List[T any] struct {
	store docstore.Store
	cfg   ListConfig[T]
	rt    runtime
}

func NewList[T any](store docstore.Store, cfg ListConfig[T], opts ...Option) *List[T] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if err := docstore.CheckCollection(cfg.Collection); err != nil {
		panic(err)
	}
	if len(cfg.Order) == 0 {
		cfg.Order = DefaultListOrder
	}
	return &List[T]{store: store, cfg: cfg, rt: newRuntime(opts)}
}

func (l *List[T]) ContentType() string { return l.cfg.ContentType }

func (l *List[T]) Collection() string { return l.cfg.Collection }

// Defaults returns the items seeded into an empty collection.
func (l *List[T]) Defaults() []T {
	if l.cfg.Defaults == nil {
		return []T{}
	}
	items := l.cfg.Defaults()
	for i := range items {
		if l.cfg.Normalize != nil {
			l.cfg.Normalize(i, &items[i])
		}
	}
	return items
}

// Get returns the ordered items. An empty collection with defaults is seeded
// and read again once.
func (l *List[T]) Get(ctx context.Context) ([]T, error) {
	items, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 || l.cfg.Defaults == nil {
		return items, nil
	}
	if err := l.seed(ctx); err != nil {
		return nil, err
	}
	return l.read(ctx)
}

// GetOrDefault returns the defaults when the store cannot be read.
func (l *List[T]) GetOrDefault(ctx context.Context) []T {
	items, err := l.Get(ctx)
	if err != nil {
		l.logger(ctx).Warn("settings.read.fallback", "error", err)
		return l.Defaults()
	}
	return items
}

// Replace swaps the whole collection for items.
func (l *List[T]) Replace(ctx context.Context, items []T) ([]T, error) {
	batch := docstore.NewBatch()
	saved, err := l.stage(ctx, batch, items)
	if err != nil {
		return nil, err
	}
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, storeError(l.cfg.ContentType, "replace", err)
	}
	l.logger(ctx).Info("settings.collection.replaced", "count", len(saved))
	l.rt.notify(ctx, l.cfg.ContentType, l.cfg.Targets)
	return saved, nil
}

// Validate checks every item, prefixing issues with "items.<index>".
func (l *List[T]) Validate(items []T) error {
	issues := map[string]string{}
	for i := range items {
		err := validate(l.cfg.ContentType, &items[i])
		if err == nil {
			continue
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			return err
		}
		PrefixIssues(fmt.Sprintf("items.%d", i), verr, issues)
	}
	if len(issues) > 0 {
		return &ValidationError{ContentType: l.cfg.ContentType, Issues: issues}
	}
	return nil
}

func (l *List[T]) stage(ctx context.Context, batch *docstore.Batch, items []T) ([]T, error) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if l.cfg.Skip != nil && l.cfg.Skip(item) {
			continue
		}
		kept = append(kept, item)
	}
	if err := l.Validate(kept); err != nil {
		return nil, err
	}
	existing, err := l.store.List(ctx, l.cfg.Collection)
	if err != nil {
		return nil, storeError(l.cfg.ContentType, "replace", err)
	}
	for _, doc := range existing {
		batch.Delete(l.cfg.Collection, doc.ID)
	}
	if err := l.stageInserts(batch, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// stageInserts assigns fresh ids and creation times. Items created in the same
// save are a microsecond apart so submission order breaks display order ties.
func (l *List[T]) stageInserts(batch *docstore.Batch, items []T) error {
	base := l.rt.now()
	for i := range items {
		id := l.rt.newID()
		created := base.Add(time.Duration(i) * time.Microsecond)
		data, err := encodeItem(items[i], created)
		if err != nil {
			return err
		}
		batch.Set(l.cfg.Collection, id, data, false)
		if stamped, ok := any(&items[i]).(Stamped); ok {
			meta := stamped.Stamp()
			meta.ID = id
			meta.CreatedAt = created
		}
	}
	return nil
}

func (l *List[T]) seed(ctx context.Context) error {
	batch := docstore.NewBatch()
	if err := l.stageInserts(batch, l.cfg.Defaults()); err != nil {
		return err
	}
	if err := l.store.Commit(ctx, batch); err != nil {
		return storeError(l.cfg.ContentType, "seed", err)
	}
	l.logger(ctx).Info("settings.collection.seeded", "count", batch.Len())
	return nil
}

func (l *List[T]) read(ctx context.Context) ([]T, error) {
	docs, err := l.store.ListOrdered(ctx, l.cfg.Collection, l.cfg.Order...)
	if err != nil {
		return nil, storeError(l.cfg.ContentType, "list", err)
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeItem[T](doc, l.cfg.Migrate)
		if err != nil {
			return nil, err
		}
		if l.cfg.Normalize != nil {
			l.cfg.Normalize(len(items), &item)
		}
		items = append(items, item)
	}
	return items, nil
}

func (l *List[T]) logger(ctx context.Context) interfaces.Logger {
	return logging.WithDocument(l.rt.logger, l.cfg.ContentType, l.cfg.Collection).WithContext(ctx)
}
