package docstore

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("docstore: document not found")
	ErrCollectionRequired = errors.New("docstore: collection is required")
	ErrIDRequired         = errors.New("docstore: document id is required")
	ErrBatchTooLarge      = errors.New("docstore: batch exceeds backend limit")
)

// Document is a stored record addressed by collection and id.
type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// Store is the document database the site content lives in. Collections are
// slash separated paths, so "pages/why-choose-us/features" addresses a
// subcollection of the why-choose-us page.
type Store interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Set writes data. With merge the stored fields absent from data are kept.
	Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error
	Delete(ctx context.Context, collection, id string) error
	// List returns every document of the collection ordered by id.
	List(ctx context.Context, collection string) ([]Document, error)
	ListOrdered(ctx context.Context, collection string, order ...OrderBy) ([]Document, error)
	// Commit applies every operation of the batch atomically.
	Commit(ctx context.Context, batch *Batch) error
}

// OpKind identifies a batched write.
type OpKind string

const (
	OpSet    OpKind = "set"
	OpDelete OpKind = "delete"
)

type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Data       map[string]any
	Merge      bool
}

// Batch collects writes for Store.Commit.
type Batch struct {
	ops []Op
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Set(collection, id string, data map[string]any, merge bool) *Batch {
	b.ops = append(b.ops, Op{Kind: OpSet, Collection: collection, ID: id, Data: data, Merge: merge})
	return b
}

func (b *Batch) Delete(collection, id string) *Batch {
	b.ops = append(b.ops, Op{Kind: OpDelete, Collection: collection, ID: id})
	return b
}

func (b *Batch) Ops() []Op {
	if b == nil {
		return nil
	}
	out := make([]Op, len(b.ops))
	copy(out, b.ops)
	return out
}

func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ops)
}

// Validate checks every operation is addressable.
func (b *Batch) Validate() error {
	for _, op := range b.Ops() {
		if err := CheckPath(op.Collection, op.ID); err != nil {
			return err
		}
	}
	return nil
}

// CheckPath validates a collection/id pair.
func CheckPath(collection, id string) error {
	if err := CheckCollection(collection); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return ErrIDRequired
	}
	return nil
}

func CheckCollection(collection string) error {
	trimmed := strings.Trim(strings.TrimSpace(collection), "/")
	if trimmed == "" {
		return ErrCollectionRequired
	}
	// collection paths alternate collection/document segments, so a
	// collection always has an odd number of segments.
	if len(strings.Split(trimmed, "/"))%2 == 0 {
		return ErrCollectionRequired
	}
	return nil
}

// NormalizeCollection trims surrounding slashes and spaces.
func NormalizeCollection(collection string) string {
	return strings.Trim(strings.TrimSpace(collection), "/")
}
