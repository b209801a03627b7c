// Package testsupport opens throwaway SQLite databases for storage tests.
package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var counter atomic.Int64

// SQLiteDSN returns a shared-cache in-memory DSN unique to this process.
func SQLiteDSN(prefix string) string {
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", prefix, counter.Add(1))
}

// NewSQLiteBunDB opens a fresh in-memory database closed with the test.
func NewSQLiteBunDB(tb testing.TB, prefix string) *bun.DB {
	tb.Helper()
	sqldb, err := sql.Open("sqlite3", SQLiteDSN(prefix))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	tb.Cleanup(func() { _ = db.Close() })
	return db
}
