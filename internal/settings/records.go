package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// NewestFirst orders records by creation time, latest first.
var NewestFirst = []docstore.OrderBy{docstore.Desc(FieldCreatedAt)}

// RecordsConfig describes a collection of independently edited documents.
type RecordsConfig[T any] struct {
	ContentType string
	Collection  string
	Order       []docstore.OrderBy
	// Defaults seeds an empty collection on List.
	Defaults func() []T
	Targets  []revalidate.Target
	Migrate  func(map[string]any)
}

type Records[T any] struct {
	store docstore.Store
	cfg   RecordsConfig[T]
	rt    runtime
}

func NewRecords[T any](store docstore.Store, cfg RecordsConfig[T], opts ...Option) *Records[T] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if err := docstore.CheckCollection(cfg.Collection); err != nil {
		panic(err)
	}
	if len(cfg.Order) == 0 {
		cfg.Order = NewestFirst
	}
	return &Records[T]{store: store, cfg: cfg, rt: newRuntime(opts)}
}

func (r *Records[T]) ContentType() string { return r.cfg.ContentType }

func (r *Records[T]) Collection() string { return r.cfg.Collection }

// Create validates and stores value under a new id.
func (r *Records[T]) Create(ctx context.Context, value T) (T, error) {
	if err := validate(r.cfg.ContentType, &value); err != nil {
		return value, err
	}
	id := r.rt.newID()
	created := r.rt.now()
	data, err := encodeItem(value, created)
	if err != nil {
		return value, err
	}
	if err := r.store.Set(ctx, r.cfg.Collection, id, data, false); err != nil {
		return value, storeError(r.cfg.ContentType, "create", err)
	}
	if stamped, ok := any(&value).(Stamped); ok {
		meta := stamped.Stamp()
		meta.ID = id
		meta.CreatedAt = created
	}
	r.logger(ctx, id).Info("settings.record.created")
	r.rt.notify(ctx, r.cfg.ContentType, r.cfg.Targets)
	return value, nil
}

func (r *Records[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrRecordIDRequired
	}
	doc, err := r.store.Get(ctx, r.cfg.Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return zero, &NotFoundError{ContentType: r.cfg.ContentType, Key: id}
	}
	if err != nil {
		return zero, storeError(r.cfg.ContentType, "get", err)
	}
	return decodeItem[T](doc, r.cfg.Migrate)
}

// Update merges value into an existing record. The creation time is kept.
func (r *Records[T]) Update(ctx context.Context, id string, value T) (T, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return value, err
	}
	if err := validate(r.cfg.ContentType, &value); err != nil {
		return value, err
	}
	data, err := encodeItem(value, timeZero)
	if err != nil {
		return value, err
	}
	delete(data, fieldCreatedAt)
	if err := r.store.Set(ctx, r.cfg.Collection, id, data, true); err != nil {
		return value, storeError(r.cfg.ContentType, "update", err)
	}
	r.logger(ctx, id).Info("settings.record.updated")
	r.rt.notify(ctx, r.cfg.ContentType, r.cfg.Targets)
	return r.Get(ctx, id)
}

func (r *Records[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, r.cfg.Collection, id); err != nil {
		return storeError(r.cfg.ContentType, "delete", err)
	}
	r.logger(ctx, id).Info("settings.record.deleted")
	r.rt.notify(ctx, r.cfg.ContentType, r.cfg.Targets)
	return nil
}

// List returns the records in the configured order. An empty collection with
// defaults is seeded and read again once.
func (r *Records[T]) List(ctx context.Context) ([]T, error) {
	items, err := r.read(ctx)
	if err != nil || len(items) > 0 || r.cfg.Defaults == nil {
		return items, err
	}
	for _, value := range r.cfg.Defaults() {
		data, err := encodeItem(value, r.rt.now())
		if err != nil {
			return nil, err
		}
		if err := r.store.Set(ctx, r.cfg.Collection, r.rt.newID(), data, false); err != nil {
			return nil, storeError(r.cfg.ContentType, "seed", err)
		}
	}
	r.logger(ctx, "").Info("settings.collection.seeded")
	return r.read(ctx)
}

// Count returns the number of stored records without seeding.
func (r *Records[T]) Count(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, r.cfg.Collection)
	if err != nil {
		return 0, storeError(r.cfg.ContentType, "count", err)
	}
	return len(docs), nil
}

func (r *Records[T]) read(ctx context.Context) ([]T, error) {
	docs, err := r.store.ListOrdered(ctx, r.cfg.Collection, r.cfg.Order...)
	if err != nil {
		return nil, storeError(r.cfg.ContentType, "list", err)
	}
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeItem[T](doc, r.cfg.Migrate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Records[T]) logger(ctx context.Context, id string) interfaces.Logger {
	path := r.cfg.Collection
	if id != "" {
		path += "/" + id
	}
	return logging.WithDocument(r.rt.logger, r.cfg.ContentType, path).WithContext(ctx)
}
