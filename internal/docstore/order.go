package docstore

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"
	"time"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

type OrderBy struct {
	Field     string
	Direction Direction
}

func Asc(field string) OrderBy  { return OrderBy{Field: field, Direction: Ascending} }
func Desc(field string) OrderBy { return OrderBy{Field: field, Direction: Descending} }

// SortDocuments orders docs in place. Missing fields sort before present
// ones and ties fall back to the document id.
func SortDocuments(docs []Document, order []OrderBy) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		for _, o := range order {
			c := compareValues(a.Data[o.Field], b.Data[o.Field])
			if o.Direction == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	case rankTime:
		ta, _ := toTime(a)
		tb, _ := toTime(b)
		return ta.Compare(tb)
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

const (
	rankNull = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

func rank(v any) int {
	if v == nil {
		return rankNull
	}
	if _, ok := v.(bool); ok {
		return rankBool
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	if _, ok := toTime(v); ok {
		return rankTime
	}
	if _, ok := v.(string); ok {
		return rankString
	}
	return rankOther
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// TimeValue reads a timestamp from document data. Besides time values it
// accepts RFC 3339 strings, which is how JSON backends return them, and
// {seconds, nanoseconds} objects found in exported Firestore snapshots.
func TimeValue(v any) (time.Time, bool) {
	return toTime(v)
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	case map[string]any:
		return timestampObject(t)
	}
	return time.Time{}, false
}

func timestampObject(m map[string]any) (time.Time, bool) {
	if len(m) > 2 {
		return time.Time{}, false
	}
	seconds, ok := toFloat(m["seconds"])
	if !ok {
		if seconds, ok = toFloat(m["_seconds"]); !ok {
			return time.Time{}, false
		}
	}
	nanos, ok := toFloat(m["nanoseconds"])
	if !ok {
		nanos, _ = toFloat(m["_nanoseconds"])
	}
	return time.Unix(int64(seconds), int64(nanos)).UTC(), true
}
