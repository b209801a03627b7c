package docstore

import (
	"testing"
	"time"
)

func TestSortDocumentsMixedValues(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []Document{
		{ID: "late", Data: map[string]any{"createdAt": base.Add(time.Hour).Format(time.RFC3339Nano)}},
		{ID: "missing", Data: map[string]any{}},
		{ID: "early", Data: map[string]any{"createdAt": base}},
		{ID: "exported", Data: map[string]any{"createdAt": map[string]any{"seconds": float64(base.Add(time.Minute).Unix()), "nanoseconds": float64(0)}}},
	}
	SortDocuments(docs, []OrderBy{Asc("createdAt")})

	want := []string{"missing", "early", "exported", "late"}
	for i, id := range want {
		if docs[i].ID != id {
			t.Fatalf("position %d: expected %s got %s", i, id, docs[i].ID)
		}
	}
}

func TestSortDocumentsNumbersAndTies(t *testing.T) {
	docs := []Document{
		{ID: "b", Data: map[string]any{"displayOrder": 2}},
		{ID: "c", Data: map[string]any{"displayOrder": float64(1)}},
		{ID: "a", Data: map[string]any{"displayOrder": int64(1)}},
	}
	SortDocuments(docs, []OrderBy{Asc("displayOrder")})
	if docs[0].ID != "a" || docs[1].ID != "c" || docs[2].ID != "b" {
		t.Fatalf("unexpected order %s %s %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
}

func TestCheckCollection(t *testing.T) {
	if err := CheckCollection("pages/why-choose-us/features"); err != nil {
		t.Fatalf("expected subcollection path accepted, got %v", err)
	}
	if err := CheckCollection("pages/why-choose-us"); err == nil {
		t.Fatal("expected document path rejected")
	}
}
