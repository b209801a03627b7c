package docstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process. It backs tests and single node
// previews; every read and write copies the data.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
	failWith    error
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string]map[string]any{}}
}

// FailWith makes every subsequent call return err until cleared with nil.
// Tests use it to simulate an unreachable database.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	if err := CheckPath(collection, id); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return Document{}, m.failWith
	}
	data, ok := m.collections[NormalizeCollection(collection)][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: CloneData(data)}, nil
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, data map[string]any, merge bool) error {
	if err := CheckPath(collection, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.apply(Op{Kind: OpSet, Collection: collection, ID: id, Data: data, Merge: merge})
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	if err := CheckPath(collection, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.apply(Op{Kind: OpDelete, Collection: collection, ID: id})
	return nil
}

func (m *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	if err := CheckCollection(collection); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	docs := make([]Document, 0, len(m.collections[NormalizeCollection(collection)]))
	for id, data := range m.collections[NormalizeCollection(collection)] {
		docs = append(docs, Document{ID: id, Data: CloneData(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (m *MemoryStore) ListOrdered(ctx context.Context, collection string, order ...OrderBy) ([]Document, error) {
	docs, err := m.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	SortDocuments(docs, order)
	return docs, nil
}

// Commit applies the batch under a single write lock.
func (m *MemoryStore) Commit(_ context.Context, batch *Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, op := range batch.Ops() {
		m.apply(op)
	}
	return nil
}

func (m *MemoryStore) apply(op Op) {
	collection := NormalizeCollection(op.Collection)
	switch op.Kind {
	case OpDelete:
		delete(m.collections[collection], op.ID)
		if len(m.collections[collection]) == 0 {
			delete(m.collections, collection)
		}
	case OpSet:
		docs := m.collections[collection]
		if docs == nil {
			docs = map[string]map[string]any{}
			m.collections[collection] = docs
		}
		if existing, ok := docs[op.ID]; ok && op.Merge {
			docs[op.ID] = MergeData(existing, op.Data)
			return
		}
		data := CloneData(op.Data)
		if data == nil {
			data = map[string]any{}
		}
		docs[op.ID] = data
	}
}
