package settings

import (
	"time"

	"github.com/goliatone/go-sitecms/internal/docstore"
)

const (
	fieldID        = "id"
	fieldCreatedAt = "createdAt"
)

var timeZero time.Time

// Meta is embedded by collection items. ID is the document id and never
// stored inside the document data.
type Meta struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stamp exposes the embedded Meta to the engine.
func (m *Meta) Stamp() *Meta { return m }

// Stamped is implemented by pointers to types embedding Meta.
type Stamped interface {
	Stamp() *Meta
}

func encodeItem(item any, created time.Time) (map[string]any, error) {
	data, err := docstore.Encode(item)
	if err != nil {
		return nil, err
	}
	delete(data, fieldID)
	if !created.IsZero() {
		data[fieldCreatedAt] = created
	}
	return data, nil
}

func decodeItem[T any](doc docstore.Document, migrate func(map[string]any)) (T, error) {
	var item T
	data := docstore.CloneData(doc.Data)
	if data == nil {
		data = map[string]any{}
	}
	if migrate != nil {
		migrate(data)
	}
	if raw, ok := data[fieldCreatedAt]; ok {
		if ts, ok := docstore.TimeValue(raw); ok {
			data[fieldCreatedAt] = ts
		} else {
			delete(data, fieldCreatedAt)
		}
	}
	delete(data, fieldID)
	if err := docstore.Decode(data, &item); err != nil {
		return item, err
	}
	if stamped, ok := any(&item).(Stamped); ok {
		stamped.Stamp().ID = doc.ID
	}
	return item, nil
}
