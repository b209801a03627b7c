package bunstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is one document row. Path is "collection/id" and the row id is
// derived from it, so writes to the same path always hit the same row.
type Record struct {
	bun.BaseModel `bun:"table:site_documents,alias:sd"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Path       string         `bun:"path,notnull,unique" json:"path"`
	Collection string         `bun:"collection,notnull" json:"collection"`
	DocID      string         `bun:"doc_id,notnull" json:"doc_id"`
	Data       map[string]any `bun:"data,type:jsonb,notnull" json:"data"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func documentPath(collection, id string) string {
	return collection + "/" + id
}
