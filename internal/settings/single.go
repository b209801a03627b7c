package settings

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// SingleConfig describes one well-known document such as settings/general or
// pages/home.
type SingleConfig[T any] struct {
	ContentType string
	Collection  string
	ID          string
	// Defaults returns a fresh default value on every call.
	Defaults func() T
	// Targets overrides the revalidation route table for this content type.
	Targets []revalidate.Target
	// Migrate rewrites legacy stored fields before decoding.
	Migrate func(map[string]any)
	// Normalize adjusts a decoded value, for example to fill derived fields.
	Normalize func(*T)
	// Prepare runs after validation and before the write. It receives the
	// currently stored value and may return a modified value to persist.
	Prepare func(ctx context.Context, current, next T) (T, error)
}

// Single is the get/update facade over one document with self seeding
// defaults.
type Single[T any] struct {
	store docstore.Store
	cfg   SingleConfig[T]
	rt    runtime
}

func NewSingle[T any](store docstore.Store, cfg SingleConfig[T], opts ...Option) *Single[T] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if err := docstore.CheckPath(cfg.Collection, cfg.ID); err != nil {
		panic(err)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = func() T {
			var zero T
			return zero
		}
	}
	return &Single[T]{store: store, cfg: cfg, rt: newRuntime(opts)}
}

func (s *Single[T]) ContentType() string { return s.cfg.ContentType }

func (s *Single[T]) Collection() string { return s.cfg.Collection }

func (s *Single[T]) DocumentID() string { return s.cfg.ID }

// Defaults returns the value seeded on first read.
func (s *Single[T]) Defaults() T { return s.normalized(s.cfg.Defaults()) }

// Get returns the stored value merged over the defaults. A missing document is
// seeded with the defaults first.
func (s *Single[T]) Get(ctx context.Context) (T, error) {
	doc, err := s.store.Get(ctx, s.cfg.Collection, s.cfg.ID)
	if errors.Is(err, docstore.ErrNotFound) {
		return s.seed(ctx)
	}
	if err != nil {
		var zero T
		return zero, storeError(s.cfg.ContentType, "get", err)
	}
	return s.decode(doc.Data)
}

// GetOrDefault is the public read path: store failures are logged and the
// defaults are returned so pages keep rendering.
func (s *Single[T]) GetOrDefault(ctx context.Context) T {
	value, err := s.Get(ctx)
	if err != nil {
		s.logger(ctx).Warn("settings.read.fallback", "error", err)
		return s.Defaults()
	}
	return value
}

// Update validates value, merges it into the stored document and issues the
// revalidation markers for the content type.
func (s *Single[T]) Update(ctx context.Context, value T) (T, error) {
	next, data, err := s.prepare(ctx, value)
	if err != nil {
		return next, err
	}
	if err := s.store.Set(ctx, s.cfg.Collection, s.cfg.ID, data, true); err != nil {
		return next, storeError(s.cfg.ContentType, "update", err)
	}
	s.logger(ctx).Info("settings.document.updated")
	s.rt.notify(ctx, s.cfg.ContentType, s.cfg.Targets)
	return next, nil
}

// prepare validates value and returns the data to merge into the document.
func (s *Single[T]) prepare(ctx context.Context, value T) (T, map[string]any, error) {
	if err := validate(s.cfg.ContentType, &value); err != nil {
		return value, nil, err
	}
	if s.cfg.Prepare != nil {
		current, err := s.Get(ctx)
		if err != nil {
			return value, nil, err
		}
		value, err = s.cfg.Prepare(ctx, current, value)
		if err != nil {
			return value, nil, err
		}
	}
	data, err := docstore.Encode(value)
	if err != nil {
		return value, nil, err
	}
	return value, data, nil
}

// stage adds the merge write of value to batch, used by Nested.
func (s *Single[T]) stage(ctx context.Context, batch *docstore.Batch, value T) (T, error) {
	next, data, err := s.prepare(ctx, value)
	if err != nil {
		return next, err
	}
	batch.Set(s.cfg.Collection, s.cfg.ID, data, true)
	return next, nil
}

func (s *Single[T]) seed(ctx context.Context) (T, error) {
	value := s.Defaults()
	data, err := docstore.Encode(value)
	if err != nil {
		return value, err
	}
	if err := s.store.Set(ctx, s.cfg.Collection, s.cfg.ID, data, false); err != nil {
		return value, storeError(s.cfg.ContentType, "seed", err)
	}
	s.logger(ctx).Info("settings.document.seeded")
	return value, nil
}

func (s *Single[T]) decode(stored map[string]any) (T, error) {
	var value T
	defaults, err := docstore.Encode(s.cfg.Defaults())
	if err != nil {
		return value, err
	}
	stored = docstore.CloneData(stored)
	if stored == nil {
		stored = map[string]any{}
	}
	if s.cfg.Migrate != nil {
		s.cfg.Migrate(stored)
	}
	if err := docstore.Decode(docstore.MergeData(defaults, stored), &value); err != nil {
		return value, err
	}
	return s.normalized(value), nil
}

func (s *Single[T]) normalized(value T) T {
	if s.cfg.Normalize != nil {
		s.cfg.Normalize(&value)
	}
	return value
}

func (s *Single[T]) logger(ctx context.Context) interfaces.Logger {
	return logging.WithDocument(s.rt.logger, s.cfg.ContentType, s.cfg.Collection+"/"+s.cfg.ID).WithContext(ctx)
}
