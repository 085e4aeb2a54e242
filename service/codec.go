package service

import (
	"context"
	"encoding/json"
	"fmt"

	"myregistry/interfaces"
)

// readRecord loads the JSON record stored at key and unmarshals it into T.
// Returns:
// 1) (item, true, nil) when the key exists and unmarshals cleanly;
// 2) (zero, false, nil) when the key is absent;
// 3) (zero, false, internal_server_error) on a storage or unmarshal failure.
func readRecord[T any](ctx context.Context, store interfaces.Store, key string) (T, bool, error) {
	var zero T

	data, found, err := store.Get(ctx, key)
	if err != nil {
		return zero, false, NewInternalServerError("store read error", fmt.Errorf("can't read record (key='%s'), err: %w", key, err))
	}
	if !found {
		return zero, false, nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return zero, false, NewInternalServerError("store unmarshal error", fmt.Errorf("can't unmarshal record of type %T (key='%s'), err: %w", item, key, err))
	}

	return item, true, nil
}

// writeRecord marshals item as JSON and stores it at key.
func writeRecord[T any](ctx context.Context, store interfaces.Store, key string, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return NewInternalServerError("store marshal error", fmt.Errorf("can't marshal record of type %T (key='%s'), err: %w", item, key, err))
	}

	if err := store.Set(ctx, key, data); err != nil {
		return NewInternalServerError("store write error", fmt.Errorf("can't write record of type %T (key='%s'), err: %w", item, key, err))
	}

	return nil
}
