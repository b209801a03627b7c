package settings

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// KeyedConfig describes a collection of documents addressed by a well-known
// key, such as page_seo/{page} or legal_pages/{slug}.
type KeyedConfig[T any] struct {
	ContentType string
	Collection  string
	// Defaults holds the value seeded for each known key.
	Defaults func() map[string]T
	// Fallback supplies a default for keys missing from Defaults. When nil,
	// unknown keys that are not stored report NotFoundError.
	Fallback func(key string) T
	// SeedOnList seeds every default when a listing finds the collection empty.
	SeedOnList   bool
	NormalizeKey func(string) string
	Targets      func(key string) []revalidate.Target
	// Patch selects the fields an update writes. Defaults to the whole value.
	Patch func(value T) (map[string]any, error)
}

// Entry pairs a stored value with its key.
type Entry[T any] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
}

type Keyed[T any] struct {
	store docstore.Store
	cfg   KeyedConfig[T]
	rt    runtime
}

func NewKeyed[T any](store docstore.Store, cfg KeyedConfig[T], opts ...Option) *Keyed[T] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if err := docstore.CheckCollection(cfg.Collection); err != nil {
		panic(err)
	}
	if cfg.NormalizeKey == nil {
		cfg.NormalizeKey = strings.TrimSpace
	}
	return &Keyed[T]{store: store, cfg: cfg, rt: newRuntime(opts)}
}

func (k *Keyed[T]) ContentType() string { return k.cfg.ContentType }

// Keys lists the keys that have defaults, sorted.
func (k *Keyed[T]) Keys() []string {
	defaults := k.defaults()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Default returns the seed value for key.
func (k *Keyed[T]) Default(key string) (T, bool) {
	key = k.cfg.NormalizeKey(key)
	if value, ok := k.defaults()[key]; ok {
		return value, true
	}
	if k.cfg.Fallback != nil {
		return k.cfg.Fallback(key), true
	}
	var zero T
	return zero, false
}

// Get reads the document for key, seeding its default when it is missing.
func (k *Keyed[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	key = k.cfg.NormalizeKey(key)
	if key == "" {
		return zero, ErrKeyRequired
	}
	doc, err := k.store.Get(ctx, k.cfg.Collection, key)
	if err == nil {
		return k.decode(key, doc)
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return zero, storeError(k.cfg.ContentType, "get", err)
	}
	value, ok := k.Default(key)
	if !ok {
		return zero, &NotFoundError{ContentType: k.cfg.ContentType, Key: key}
	}
	data, err := docstore.Encode(value)
	if err != nil {
		return zero, err
	}
	if err := k.store.Set(ctx, k.cfg.Collection, key, data, false); err != nil {
		return zero, storeError(k.cfg.ContentType, "seed", err)
	}
	k.logger(ctx, key).Info("settings.document.seeded")
	return k.decode(key, docstore.Document{ID: key, Data: data})
}

// GetOrDefault serves public reads: store failures fall back to the default
// for key. The boolean is false when key has no stored value or default.
func (k *Keyed[T]) GetOrDefault(ctx context.Context, key string) (T, bool) {
	value, err := k.Get(ctx, key)
	if err == nil {
		return value, true
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) || errors.Is(err, ErrKeyRequired) {
		return value, false
	}
	k.logger(ctx, key).Warn("settings.read.fallback", "error", err)
	return k.Default(key)
}

// List returns every stored entry ordered by key.
func (k *Keyed[T]) List(ctx context.Context) ([]Entry[T], error) {
	docs, err := k.store.List(ctx, k.cfg.Collection)
	if err != nil {
		return nil, storeError(k.cfg.ContentType, "list", err)
	}
	if len(docs) == 0 && k.cfg.SeedOnList {
		if err := k.seedAll(ctx); err != nil {
			return nil, err
		}
		if docs, err = k.store.List(ctx, k.cfg.Collection); err != nil {
			return nil, storeError(k.cfg.ContentType, "list", err)
		}
	}
	entries := make([]Entry[T], 0, len(docs))
	for _, doc := range docs {
		value, err := k.decode(doc.ID, doc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry[T]{Key: doc.ID, Value: value})
	}
	return entries, nil
}

// Update merges value into the document for key.
func (k *Keyed[T]) Update(ctx context.Context, key string, value T) (T, error) {
	key = k.cfg.NormalizeKey(key)
	if key == "" {
		return value, ErrKeyRequired
	}
	if err := validate(k.cfg.ContentType, &value); err != nil {
		return value, err
	}
	patch := k.cfg.Patch
	if patch == nil {
		patch = func(v T) (map[string]any, error) { return docstore.Encode(v) }
	}
	data, err := patch(value)
	if err != nil {
		return value, err
	}
	delete(data, fieldID)
	if err := k.store.Set(ctx, k.cfg.Collection, key, data, true); err != nil {
		return value, storeError(k.cfg.ContentType, "update", err)
	}
	k.logger(ctx, key).Info("settings.document.updated")
	var targets []revalidate.Target
	if k.cfg.Targets != nil {
		targets = k.cfg.Targets(key)
	}
	k.rt.notify(ctx, k.cfg.ContentType, targets)
	return k.Get(ctx, key)
}

func (k *Keyed[T]) seedAll(ctx context.Context) error {
	batch := docstore.NewBatch()
	for _, key := range k.Keys() {
		data, err := docstore.Encode(k.defaults()[key])
		if err != nil {
			return err
		}
		delete(data, fieldID)
		batch.Set(k.cfg.Collection, key, data, false)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := k.store.Commit(ctx, batch); err != nil {
		return storeError(k.cfg.ContentType, "seed", err)
	}
	k.logger(ctx, "").Info("settings.collection.seeded", "count", batch.Len())
	return nil
}

func (k *Keyed[T]) decode(key string, doc docstore.Document) (T, error) {
	var value T
	base := map[string]any{}
	if def, ok := k.Default(key); ok {
		encoded, err := docstore.Encode(def)
		if err != nil {
			return value, err
		}
		base = encoded
	}
	merged := docstore.MergeData(base, doc.Data)
	return decodeItem[T](docstore.Document{ID: key, Data: merged}, nil)
}

func (k *Keyed[T]) defaults() map[string]T {
	if k.cfg.Defaults == nil {
		return nil
	}
	return k.cfg.Defaults()
}

func (k *Keyed[T]) logger(ctx context.Context, key string) interfaces.Logger {
	path := k.cfg.Collection
	if key != "" {
		path += "/" + key
	}
	return logging.WithDocument(k.rt.logger, k.cfg.ContentType, path).WithContext(ctx)
}
