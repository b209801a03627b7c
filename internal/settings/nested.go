package settings

import (
	"context"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/revalidate"
)

// Composite is a page document together with its owned collection.
type Composite[P any, I any] struct {
	Page  P   `json:"page"`
	Items []I `json:"items"`
}

// Nested writes a page document and its item collection in one batch, for
// example pages/why-choose-us with pages/why-choose-us/features.
type Nested[P any, I any] struct {
	store       docstore.Store
	contentType string
	page        *Single[P]
	items       *List[I]
	targets     []revalidate.Target
	rt          runtime
}

// NewNested combines page and items. Revalidation is issued once per update
// under contentType; the parts' own targets are not used.
func NewNested[P any, I any](store docstore.Store, contentType string, page *Single[P], items *List[I], targets []revalidate.Target, opts ...Option) *Nested[P, I] {
	if store == nil {
		panic(ErrStoreRequired)
	}
	if page == nil || items == nil {
		panic("settings: nested module requires page and items")
	}
	return &Nested[P, I]{
		store:       store,
		contentType: contentType,
		page:        page,
		items:       items,
		targets:     targets,
		rt:          newRuntime(opts),
	}
}

func (n *Nested[P, I]) ContentType() string { return n.contentType }

func (n *Nested[P, I]) Page() *Single[P] { return n.page }

func (n *Nested[P, I]) Items() *List[I] { return n.items }

func (n *Nested[P, I]) Defaults() Composite[P, I] {
	return Composite[P, I]{Page: n.page.Defaults(), Items: n.items.Defaults()}
}

func (n *Nested[P, I]) Get(ctx context.Context) (Composite[P, I], error) {
	page, err := n.page.Get(ctx)
	if err != nil {
		return Composite[P, I]{}, err
	}
	items, err := n.items.Get(ctx)
	if err != nil {
		return Composite[P, I]{}, err
	}
	return Composite[P, I]{Page: page, Items: items}, nil
}

func (n *Nested[P, I]) GetOrDefault(ctx context.Context) Composite[P, I] {
	return Composite[P, I]{Page: n.page.GetOrDefault(ctx), Items: n.items.GetOrDefault(ctx)}
}

// Update merges the page document and replaces the items atomically.
func (n *Nested[P, I]) Update(ctx context.Context, value Composite[P, I]) (Composite[P, I], error) {
	batch := docstore.NewBatch()
	page, err := n.page.stage(ctx, batch, value.Page)
	if err != nil {
		return value, err
	}
	items, err := n.items.stage(ctx, batch, value.Items)
	if err != nil {
		return value, err
	}
	if err := n.store.Commit(ctx, batch); err != nil {
		return value, storeError(n.contentType, "update", err)
	}
	n.page.logger(ctx).Info("settings.nested.updated", "items", len(items))
	n.rt.notify(ctx, n.contentType, n.targets)
	return Composite[P, I]{Page: page, Items: items}, nil
}
