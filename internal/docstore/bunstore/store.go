package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/identity"
)

const (
	documentNamespace = "record"
	// listLimit bounds a single collection scan.
	listLimit = 10000
)

// Store persists documents in one site_documents table through bun. It
// works against sqlite and postgres.
type Store struct {
	db           *bun.DB
	reads        repository.Repository[*Record]
	scans        repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
	now          func() time.Time
}

var _ docstore.Store = (*Store)(nil)

// Option customises the store.
type Option func(*Store)

// WithCache enables read-through caching of single document reads. The
// cache is cleared after every committed write.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(s *Store) {
		if service == nil || serializer == nil {
			return
		}
		s.reads = repositorycache.New(s.reads, service, serializer)
		s.cacheService = service
		s.cachePrefix = documentNamespace + cache.KeySeparator
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(db *bun.DB, opts ...Option) *Store {
	if db == nil {
		panic("bunstore: database is required")
	}
	base := NewRecordRepository(db)
	store := &Store{
		db:    db,
		reads: base,
		scans: base,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// EnsureSchema creates the documents table and its collection index.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create table: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*Record)(nil)).
		Index("site_documents_collection_idx").
		Column("collection").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: create index: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.CheckPath(collection, id); err != nil {
		return docstore.Document{}, err
	}
	record, err := s.reads.GetByIdentifier(ctx, documentPath(docstore.NormalizeCollection(collection), id))
	if err != nil {
		return docstore.Document{}, mapRepositoryError(err)
	}
	return toDocument(record), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	return s.Commit(ctx, docstore.NewBatch().Set(collection, id, data, merge))
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return s.Commit(ctx, docstore.NewBatch().Delete(collection, id))
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.CheckCollection(collection); err != nil {
		return nil, err
	}
	collection = docstore.NormalizeCollection(collection)
	records, _, err := s.scans.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection).Order("doc_id ASC")
		}),
		repository.SelectPaginate(listLimit, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	docs := make([]docstore.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, toDocument(record))
	}
	return docs, nil
}

func (s *Store) ListOrdered(ctx context.Context, collection string, order ...docstore.OrderBy) ([]docstore.Document, error) {
	docs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	docstore.SortDocuments(docs, order)
	return docs, nil
}

// Commit runs the batch in one transaction. Merge writes read the current
// row inside the transaction before writing the merged data.
func (s *Store) Commit(ctx context.Context, batch *docstore.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return nil
	}
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, op := range batch.Ops() {
			if err := s.apply(ctx, tx, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.invalidate(ctx)
}

func (s *Store) apply(ctx context.Context, tx bun.Tx, op docstore.Op) error {
	collection := docstore.NormalizeCollection(op.Collection)
	rowID := identity.DocumentUUID(collection, op.ID)

	if op.Kind == docstore.OpDelete {
		if _, err := tx.NewDelete().Model((*Record)(nil)).Where("id = ?", rowID).Exec(ctx); err != nil {
			return fmt.Errorf("bunstore: delete %s/%s: %w", collection, op.ID, err)
		}
		return nil
	}

	data := docstore.CloneData(op.Data)
	if op.Merge {
		var existing Record
		err := tx.NewSelect().Model(&existing).Where("id = ?", rowID).Scan(ctx)
		switch {
		case err == nil:
			data = docstore.MergeData(existing.Data, op.Data)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("bunstore: read %s/%s: %w", collection, op.ID, err)
		}
	}
	if data == nil {
		data = map[string]any{}
	}

	now := s.now()
	record := &Record{
		ID:         rowID,
		Path:       documentPath(collection, op.ID),
		Collection: collection,
		DocID:      op.ID,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("bunstore: write %s/%s: %w", collection, op.ID, err)
	}
	return nil
}

func (s *Store) invalidate(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func toDocument(record *Record) docstore.Document {
	if record == nil {
		return docstore.Document{}
	}
	return docstore.Document{ID: record.DocID, Data: docstore.CloneData(record.Data)}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNotFound
	}
	return fmt.Errorf("bunstore: %w", err)
}
