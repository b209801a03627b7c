package di

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/docstore/bunstore"
	"github.com/goliatone/go-sitecms/internal/docstore/firestorestore"
	"github.com/goliatone/go-sitecms/internal/docstore/mongostore"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
)

// Open connects to the configured store and token verifier, then builds the
// container. Options passed by the caller take precedence. Call Close to
// release the connections.
func Open(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	all := append([]Option{}, backend.options...)

	if cfg.Auth.Provider == runtimeconfig.AuthFirebase {
		verifier, err := auth.OpenFirebase(ctx, cfg.Auth.FirebaseProject)
		if err != nil {
			backend.close(ctx)
			return nil, err
		}
		all = append(all, WithTokenVerifier(verifier))
	}
	all = append(all, opts...)

	container, err := NewContainer(cfg, all...)
	if err != nil {
		backend.close(ctx)
		return nil, err
	}
	if store, ok := container.Store().(*bunstore.Store); ok {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = container.Close(ctx)
			return nil, fmt.Errorf("di: ensure schema: %w", err)
		}
	}
	return container, nil
}

type backend struct {
	options []Option
	closer  func(context.Context) error
}

func (b backend) close(ctx context.Context) {
	if b.closer != nil {
		_ = b.closer(ctx)
	}
}

func openBackend(ctx context.Context, cfg runtimeconfig.StoreConfig) (backend, error) {
	switch cfg.Provider {
	case runtimeconfig.StoreSQLite:
		return openSQL("sqlite3", cfg.DSN, func(sqldb *sql.DB) *bun.DB { return bun.NewDB(sqldb, sqlitedialect.New()) })
	case runtimeconfig.StorePostgres:
		return openSQL("postgres", cfg.DSN, func(sqldb *sql.DB) *bun.DB { return bun.NewDB(sqldb, pgdialect.New()) })
	case runtimeconfig.StoreFirestore:
		store, err := firestorestore.Open(ctx, cfg.FirestoreProject)
		if err != nil {
			return backend{}, err
		}
		closer := func(context.Context) error { return store.Close() }
		return backend{options: []Option{WithStore(store), withCloser(closer)}, closer: closer}, nil
	case runtimeconfig.StoreMongo:
		mongoOpts := []mongostore.Option{}
		if !cfg.MongoTransactions {
			mongoOpts = append(mongoOpts, mongostore.WithoutTransactions())
		}
		store, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, mongoOpts...)
		if err != nil {
			return backend{}, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return backend{}, fmt.Errorf("di: mongo indexes: %w", err)
		}
		return backend{options: []Option{WithStore(store), withCloser(store.Close)}, closer: store.Close}, nil
	default:
		return backend{}, nil
	}
}

func openSQL(driver, dsn string, wrap func(*sql.DB) *bun.DB) (backend, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return backend{}, fmt.Errorf("di: open %s: %w", driver, err)
	}
	db := wrap(sqldb)
	closer := func(context.Context) error { return db.Close() }
	return backend{options: []Option{WithBunDB(db), withCloser(closer)}, closer: closer}, nil
}
