package myredis

import (
	"context"
	"errors"
	"fmt"

	"myregistry/service"

	"github.com/go-redis/redis/v8"
)

type redisStore struct {
	client redis.UniversalClient
}

// NewStore creates the redis implementation of interfaces.Store. Keys are
// written without TTLs: expiry is the registry's garbage collector's job,
// driven by record timestamps, not by the store.
func NewStore(client redis.UniversalClient) *redisStore {
	return &redisStore{
		client: client,
	}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, service.NewInternalServerError("Redis read key error", fmt.Errorf("can't read key '%s' from redis, err: %w", key, err))
	}
	return data, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write key '%s' to redis, err: %w", key, err))
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete key '%s' from redis, err: %w", key, err))
	}
	return nil
}

func (r *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, service.NewInternalServerError("Redis exists key error", fmt.Errorf("can't check key '%s' in redis, err: %w", key, err))
	}
	return n > 0, nil
}

func (r *redisStore) FlushAll(ctx context.Context) error {
	err := r.client.FlushAll(ctx).Err()
	if err != nil {
		return service.NewInternalServerError("Redis flush error", fmt.Errorf("can't flush redis, err: %w", err))
	}
	return nil
}
