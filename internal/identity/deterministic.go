package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid. The
// key is normalized first, so keys differing only by case share an id.
//
// Callers must prefix keys by entity type so that keys cannot collide.
func UUID(key string) uuid.UUID {
	return derive(key, true)
}

// DocumentUUID is the row id of the document stored at collection/id.
// Document ids are case sensitive, so no normalization is applied.
func DocumentUUID(collection, id string) uuid.UUID {
	return derive("sitecms:document:"+strings.Trim(collection, "/")+"/"+strings.TrimSpace(id), false)
}

func derive(key string, normalize bool) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	var (
		uid uuid.UUID
		err error
	)
	if normalize {
		uid, err = hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	} else {
		uid, err = hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256))
	}
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}
