package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goliatone/go-sitecms/internal/docstore"
)

// DefaultCollection is the Mongo collection holding every site document.
const DefaultCollection = "site_documents"

// record is the stored shape: the document path as _id plus its owning
// collection path for scans.
type record struct {
	Path       string         `bson:"_id"`
	Collection string         `bson:"collection"`
	DocID      string         `bson:"doc_id"`
	Data       map[string]any `bson:"data"`
	UpdatedAt  time.Time      `bson:"updated_at"`
}

type Store struct {
	client       *mongo.Client
	coll         *mongo.Collection
	transactions bool
	now          func() time.Time
}

var _ docstore.Store = (*Store)(nil)

type Option func(*Store)

// WithoutTransactions applies batches sequentially. Standalone servers do
// not support multi-document transactions; readers may then observe a
// partially applied batch.
func WithoutTransactions() Option {
	return func(s *Store) { s.transactions = false }
}

func WithCollection(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.coll = s.coll.Database().Collection(name)
		}
	}
}

func New(client *mongo.Client, database string, opts ...Option) *Store {
	if client == nil {
		panic("mongostore: client is required")
	}
	store := &Store{
		client:       client,
		coll:         client.Database(database).Collection(DefaultCollection),
		transactions: true,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Connect dials uri and returns a store over database.
func Connect(ctx context.Context, uri, database string, opts ...Option) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}
	return New(client, database, opts...), nil
}

// EnsureIndexes creates the collection scan index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "collection", Value: 1}, {Key: "doc_id", Value: 1}},
	})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.CheckPath(collection, id); err != nil {
		return docstore.Document{}, err
	}
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": path(collection, id)}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("mongostore: get %s/%s: %w", collection, id, err)
	}
	return toDocument(rec), nil
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
	cursor, err := s.coll.Find(ctx,
		bson.M{"collection": docstore.NormalizeCollection(collection)},
		options.Find().SetSort(bson.D{{Key: "doc_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("mongostore: list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records []record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("mongostore: list %s: %w", collection, err)
	}
	docs := make([]docstore.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, toDocument(rec))
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

// Commit runs the batch inside a session transaction.
func (s *Store) Commit(ctx context.Context, batch *docstore.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return nil
	}
	if !s.transactions {
		return s.applyAll(ctx, batch)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongostore: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, s.applyAll(sessCtx, batch)
	})
	if err != nil {
		return fmt.Errorf("mongostore: commit: %w", err)
	}
	return nil
}

func (s *Store) applyAll(ctx context.Context, batch *docstore.Batch) error {
	for _, op := range batch.Ops() {
		if err := s.apply(ctx, op); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) apply(ctx context.Context, op docstore.Op) error {
	collection := docstore.NormalizeCollection(op.Collection)
	key := path(collection, op.ID)

	if op.Kind == docstore.OpDelete {
		if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
			return fmt.Errorf("mongostore: delete %s: %w", key, err)
		}
		return nil
	}

	data := docstore.CloneData(op.Data)
	if op.Merge {
		var existing record
		err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&existing)
		switch {
		case err == nil:
			data = docstore.MergeData(normalizeMap(existing.Data), op.Data)
		case !errors.Is(err, mongo.ErrNoDocuments):
			return fmt.Errorf("mongostore: read %s: %w", key, err)
		}
	}
	if data == nil {
		data = map[string]any{}
	}

	rec := record{
		Path:       key,
		Collection: collection,
		DocID:      op.ID,
		Data:       data,
		UpdatedAt:  s.now(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongostore: write %s: %w", key, err)
	}
	return nil
}

func path(collection, id string) string {
	return docstore.NormalizeCollection(collection) + "/" + id
}

func toDocument(rec record) docstore.Document {
	return docstore.Document{ID: rec.DocID, Data: normalizeMap(rec.Data)}
}

// normalizeMap converts driver specific values back into plain Go values.
func normalizeMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(v any) any {
	switch typed := v.(type) {
	case primitive.DateTime:
		return typed.Time().UTC()
	case primitive.A:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	case primitive.M:
		return normalizeMap(typed)
	case map[string]any:
		return normalizeMap(typed)
	case primitive.D:
		out := make(map[string]any, len(typed))
		for _, elem := range typed {
			out[elem.Key] = normalizeValue(elem.Value)
		}
		return out
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	default:
		return typed
	}
}
