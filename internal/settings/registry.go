package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Module is the type erased view of a settings engine used by the admin API
// and the registry.
type Module interface {
	ContentType() string
	Load(ctx context.Context) (any, error)
	LoadOrDefault(ctx context.Context) any
	Save(ctx context.Context, raw json.RawMessage) (any, error)
	Defaults() any
}

// PublicView derives the value exposed on the public site from a module.
type PublicView func(ctx context.Context, module Module) any

// RegisterOption configures a registry entry.
type RegisterOption func(*entry)

// Public exposes the module on the public read API through GetOrDefault.
func Public() RegisterOption {
	return func(e *entry) {
		e.public = func(ctx context.Context, m Module) any { return m.LoadOrDefault(ctx) }
	}
}

// PublicWith exposes a redacted or derived view of the module.
func PublicWith(view PublicView) RegisterOption {
	return func(e *entry) {
		e.public = view
	}
}

type entry struct {
	module Module
	public PublicView
}

// Registry maps module names to engines.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]entry{}}
}

func (r *Registry) Register(name string, module Module, opts ...RegisterOption) error {
	name = strings.TrimSpace(name)
	if name == "" || module == nil {
		return fmt.Errorf("%w: name and module are required", ErrUnknownModule)
	}
	e := entry{module: module}
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, name)
	}
	r.entries[name] = e
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(name string, module Module, opts ...RegisterOption) {
	if err := r.Register(name, module, opts...); err != nil {
		panic(err)
	}
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PublicNames returns the modules readable on the public API, sorted.
func (r *Registry) PublicNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if e.public != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Module(name string) (Module, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.module, nil
}

func (r *Registry) Load(ctx context.Context, name string) (any, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.module.Load(ctx)
}

func (r *Registry) Save(ctx context.Context, name string, raw json.RawMessage) (any, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.module.Save(ctx, raw)
}

// LoadPublic returns the public view of a module. Modules registered without
// a public view report ErrUnknownModule.
func (r *Registry) LoadPublic(ctx context.Context, name string) (any, error) {
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if e.public == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	return e.public(ctx, e.module), nil
}

func (r *Registry) lookup(name string) (entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[strings.TrimSpace(name)]
	if !ok {
		return entry{}, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	return e, nil
}

func decodePayload[T any](contentType string, raw json.RawMessage) (T, error) {
	var value T
	if len(raw) == 0 {
		return value, fmt.Errorf("%w: %s: empty body", ErrInvalidPayload, contentType)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, contentType, err)
	}
	return value, nil
}

type singleModule[T any] struct{ s *Single[T] }

// SingleModule adapts a Single for the registry.
func SingleModule[T any](s *Single[T]) Module { return singleModule[T]{s: s} }

func (m singleModule[T]) ContentType() string { return m.s.ContentType() }
func (m singleModule[T]) Defaults() any       { return m.s.Defaults() }

func (m singleModule[T]) Load(ctx context.Context) (any, error) { return m.s.Get(ctx) }

func (m singleModule[T]) LoadOrDefault(ctx context.Context) any { return m.s.GetOrDefault(ctx) }

func (m singleModule[T]) Save(ctx context.Context, raw json.RawMessage) (any, error) {
	value, err := decodePayload[T](m.s.ContentType(), raw)
	if err != nil {
		return nil, err
	}
	return m.s.Update(ctx, value)
}

type listModule[T any] struct{ l *List[T] }

// ListModule adapts a List for the registry. Save accepts either a JSON array
// or an object with an "items" array.
func ListModule[T any](l *List[T]) Module { return listModule[T]{l: l} }

func (m listModule[T]) ContentType() string { return m.l.ContentType() }
func (m listModule[T]) Defaults() any       { return m.l.Defaults() }

func (m listModule[T]) Load(ctx context.Context) (any, error) { return m.l.Get(ctx) }

func (m listModule[T]) LoadOrDefault(ctx context.Context) any { return m.l.GetOrDefault(ctx) }

func (m listModule[T]) Save(ctx context.Context, raw json.RawMessage) (any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		wrapped, err := decodePayload[struct {
			Items []T `json:"items"`
		}](m.l.ContentType(), raw)
		if err != nil {
			return nil, err
		}
		return m.l.Replace(ctx, wrapped.Items)
	}
	items, err := decodePayload[[]T](m.l.ContentType(), raw)
	if err != nil {
		return nil, err
	}
	return m.l.Replace(ctx, items)
}

type nestedModule[P any, I any] struct{ n *Nested[P, I] }

// NestedModule adapts a Nested for the registry. Payloads use the Composite
// shape {"page": ..., "items": [...]}.
func NestedModule[P any, I any](n *Nested[P, I]) Module { return nestedModule[P, I]{n: n} }

func (m nestedModule[P, I]) ContentType() string { return m.n.ContentType() }
func (m nestedModule[P, I]) Defaults() any       { return m.n.Defaults() }

func (m nestedModule[P, I]) Load(ctx context.Context) (any, error) { return m.n.Get(ctx) }

func (m nestedModule[P, I]) LoadOrDefault(ctx context.Context) any { return m.n.GetOrDefault(ctx) }

func (m nestedModule[P, I]) Save(ctx context.Context, raw json.RawMessage) (any, error) {
	value, err := decodePayload[Composite[P, I]](m.n.ContentType(), raw)
	if err != nil {
		return nil, err
	}
	return m.n.Update(ctx, value)
}
