package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"myregistry/interfaces/mock"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transient store failures must surface as internal_server_error on every
// path, with the store's error preserved in the chain. The mocked store
// stands in for a flaky backend; the mocked clock pins now.

func fixedClock() *mock.TimeProviderMock {
	return &mock.TimeProviderMock{
		NowFunc: func() time.Time { return testStart },
	}
}

func failingRegistry(store *mock.StoreMock) *Registry {
	return NewRegistry(store, fixedClock(), Config{
		SweepInterval:   testSweepInterval,
		InstanceTimeout: testInstanceTimeout,
		MutexTimeout:    testMutexTimeout,
	}, metrics.NewSet())
}

func TestMutex_AcquireStoreReadError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	store := &mock.StoreMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, storeErr
		},
	}
	m := newMutex(store, fixedClock(), testMutexTimeout)

	err := m.Acquire(ctx, groupKey("g1"))
	assert.True(t, IsInternalServerError(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, store.GetCalls(), 1)
}

func TestMutex_ReleaseStoreDeleteError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	store := &mock.StoreMock{
		DeleteFunc: func(ctx context.Context, key string) error {
			return storeErr
		},
	}
	m := newMutex(store, fixedClock(), testMutexTimeout)

	err := m.Release(ctx, groupKey("g1"))
	assert.True(t, IsInternalServerError(err))
	assert.ErrorIs(t, err, storeErr)
}

func TestRegistry_UpsertIndexCheckStoreError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	store := &mock.StoreMock{
		// Lock key is absent, so the mutex claims it straight away.
		GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, nil
		},
		SetFunc: func(ctx context.Context, key string, value []byte) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			return nil
		},
		ExistsFunc: func(ctx context.Context, key string) (bool, error) {
			return false, storeErr
		},
	}
	registry := failingRegistry(store)

	_, err := registry.UpsertInstance(ctx, "g1", "a", nil)
	assert.True(t, IsInternalServerError(err))
	assert.ErrorIs(t, err, storeErr)
	// The group lock was released on the error path.
	require.NotEmpty(t, store.DeleteCalls())
	assert.Equal(t, mutexKey(groupKey("g1")), store.DeleteCalls()[0].Key)
}

func TestRegistry_RemoveRecordDeleteStoreError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	index, err := json.Marshal([]string{"a", "b"})
	require.NoError(t, err)

	store := &mock.StoreMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
			if key == groupIndexKey("g1") {
				return index, true, nil
			}
			return nil, false, nil
		},
		SetFunc: func(ctx context.Context, key string, value []byte) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			if key == instanceKey("g1", "a") {
				return storeErr
			}
			return nil
		},
	}
	registry := failingRegistry(store)

	err = registry.RemoveInstance(ctx, "g1", "a")
	assert.True(t, IsInternalServerError(err))
	assert.ErrorIs(t, err, storeErr)
}

func TestRegistry_ListGroupsSweepGateStoreError(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection reset")
	// A fresh registry's local gate is open, so listing consults the shared
	// last-sweep timestamp first and the read failure propagates.
	store := &mock.StoreMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, bool, error) {
			return nil, false, storeErr
		},
	}
	registry := failingRegistry(store)

	_, err := registry.ListGroups(ctx)
	assert.True(t, IsInternalServerError(err))
	assert.ErrorIs(t, err, storeErr)
	require.NotEmpty(t, store.GetCalls())
	assert.Equal(t, lastSweepKey, store.GetCalls()[0].Key)
}
