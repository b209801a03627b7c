package firestorestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goliatone/go-sitecms/internal/docstore"
)

// MaxBatchWrites is the Firestore limit on writes per batch.
const MaxBatchWrites = 500

// Store maps collections and subcollections directly onto Firestore paths.
type Store struct {
	client *firestore.Client
}

var _ docstore.Store = (*Store)(nil)

func New(client *firestore.Client) *Store {
	if client == nil {
		panic("firestorestore: client is required")
	}
	return &Store{client: client}
}

// Open initialises a Firebase app for projectID using application default
// credentials and returns a store over its Firestore client.
func Open(ctx context.Context, projectID string) (*Store, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("firestorestore: init app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestorestore: init firestore: %w", err)
	}
	return New(client), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := docstore.CheckPath(collection, id); err != nil {
		return docstore.Document{}, err
	}
	snap, err := s.doc(collection, id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, fmt.Errorf("firestorestore: get %s/%s: %w", collection, id, err)
	}
	return docstore.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, data map[string]any, merge bool) error {
	if err := docstore.CheckPath(collection, id); err != nil {
		return err
	}
	if _, err := s.doc(collection, id).Set(ctx, payload(data), setOptions(merge)...); err != nil {
		return fmt.Errorf("firestorestore: set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := docstore.CheckPath(collection, id); err != nil {
		return err
	}
	if _, err := s.doc(collection, id).Delete(ctx); err != nil {
		return fmt.Errorf("firestorestore: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if err := docstore.CheckCollection(collection); err != nil {
		return nil, err
	}
	iter := s.client.Collection(docstore.NormalizeCollection(collection)).Documents(ctx)
	defer iter.Stop()

	var docs []docstore.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestorestore: list %s: %w", collection, err)
		}
		docs = append(docs, docstore.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	docstore.SortDocuments(docs, nil)
	return docs, nil
}

// ListOrdered sorts in process. A Firestore OrderBy query would drop
// documents lacking the field, which the settings modules rely on keeping.
func (s *Store) ListOrdered(ctx context.Context, collection string, order ...docstore.OrderBy) ([]docstore.Document, error) {
	docs, err := s.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	docstore.SortDocuments(docs, order)
	return docs, nil
}

func (s *Store) Commit(ctx context.Context, batch *docstore.Batch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	if batch.Len() == 0 {
		return nil
	}
	if batch.Len() > MaxBatchWrites {
		return fmt.Errorf("%w: %d writes, limit %d", docstore.ErrBatchTooLarge, batch.Len(), MaxBatchWrites)
	}
	wb := s.client.Batch()
	for _, op := range batch.Ops() {
		ref := s.doc(op.Collection, op.ID)
		switch op.Kind {
		case docstore.OpDelete:
			wb.Delete(ref)
		case docstore.OpSet:
			wb.Set(ref, payload(op.Data), setOptions(op.Merge)...)
		}
	}
	if _, err := wb.Commit(ctx); err != nil {
		return fmt.Errorf("firestorestore: commit: %w", err)
	}
	return nil
}

func (s *Store) doc(collection, id string) *firestore.DocumentRef {
	return s.client.Collection(docstore.NormalizeCollection(collection)).Doc(id)
}

func setOptions(merge bool) []firestore.SetOption {
	if merge {
		return []firestore.SetOption{firestore.MergeAll}
	}
	return nil
}

func payload(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}
