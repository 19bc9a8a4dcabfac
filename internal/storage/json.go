package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON reads the document at key into out. Returns false (and leaves out
// untouched) when the key is absent.
func GetJSON[T any](ctx context.Context, s KeyValueStore, key string, out *T) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and replaces the document at key.
func SetJSON(ctx context.Context, s KeyValueStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(b))
}
