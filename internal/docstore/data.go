package docstore

import (
	"encoding/json"
	"fmt"
)

// Encode converts a typed value into document data.
func Encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("docstore: encode: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("docstore: encode: %w", err)
	}
	return data, nil
}

// Decode fills out from document data.
func Decode(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("docstore: decode: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("docstore: decode: %w", err)
	}
	return nil
}

// MergeData returns base with patch applied. Nested maps merge key by key,
// every other value in patch replaces the stored one.
func MergeData(base, patch map[string]any) map[string]any {
	out := CloneData(base)
	if out == nil {
		out = make(map[string]any, len(patch))
	}
	for key, value := range patch {
		incoming, ok := value.(map[string]any)
		if !ok {
			out[key] = cloneValue(value)
			continue
		}
		if existing, ok := out[key].(map[string]any); ok {
			out[key] = MergeData(existing, incoming)
			continue
		}
		out[key] = CloneData(incoming)
	}
	return out
}

// CloneData deep copies maps and slices of document data.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return CloneData(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = CloneData(item)
		}
		return out
	default:
		return typed
	}
}
