package service

import (
	"context"
	"testing"
	"time"

	"myregistry/adapters/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutex_AcquireFreeLock(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	m := newMutex(store, clock, testMutexTimeout)

	err := m.Acquire(ctx, globalListKey)
	require.NoError(t, err)

	value, found, err := store.Get(ctx, mutexKey(globalListKey))
	require.NoError(t, err)
	require.True(t, found)
	heldAt, err := parseTimestamp(value)
	require.NoError(t, err)
	assert.Equal(t, testStart, heldAt)
}

func TestMutex_ReleaseDeletesKey(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	m := newMutex(store, clock, testMutexTimeout)

	require.NoError(t, m.Acquire(ctx, globalListKey))
	require.NoError(t, m.Release(ctx, globalListKey))

	found, err := store.Exists(ctx, mutexKey(globalListKey))
	require.NoError(t, err)
	assert.False(t, found)

	// Releasing an unheld lock is a no-op.
	require.NoError(t, m.Release(ctx, globalListKey))
}

func TestMutex_AcquireWaitsForRelease(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	// Real time here: the waiter has to observe the release during polling.
	m := newMutex(store, NewTimeProvider(time.Now), 50*time.Millisecond)

	require.NoError(t, m.Acquire(ctx, "group:g1"))

	acquired := make(chan error, 1)
	go func() {
		acquired <- m.Acquire(ctx, "group:g1")
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while the lock was held")
	case <-time.After(10 * time.Millisecond):
	}

	require.NoError(t, m.Release(ctx, "group:g1"))

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second acquire did not complete after release")
	}
}

func TestMutex_ClaimsAbandonedLock(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	m := newMutex(store, clock, testMutexTimeout)

	require.NoError(t, m.Acquire(ctx, "group:g1"))

	// Exactly at the timeout the lock still counts as held.
	clock.Advance(testMutexTimeout)
	blocked, blockedCancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer blockedCancel()
	err := m.Acquire(blocked, "group:g1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// One tick past the timeout the holder is judged dead and the lock is
	// claimed by overwrite.
	clock.Advance(time.Nanosecond)
	require.NoError(t, m.Acquire(ctx, "group:g1"))

	value, found, err := store.Get(ctx, mutexKey("group:g1"))
	require.NoError(t, err)
	require.True(t, found)
	heldAt, err := parseTimestamp(value)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), heldAt)
}

func TestMutex_ClaimsUnreadableLock(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	m := newMutex(store, clock, testMutexTimeout)

	require.NoError(t, store.Set(ctx, mutexKey("group:g1"), []byte("not a timestamp")))
	require.NoError(t, m.Acquire(ctx, "group:g1"))
}

func TestMutex_AcquireHonorsContextCancellation(t *testing.T) {
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	m := newMutex(store, clock, testMutexTimeout)

	require.NoError(t, m.Acquire(context.Background(), "group:g1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Acquire(ctx, "group:g1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2026, 2, 21, 12, 0, 0, 123456789, time.UTC)
	got, err := parseTimestamp(formatTimestamp(at))
	require.NoError(t, err)
	assert.Equal(t, at, got)

	_, err = parseTimestamp([]byte("garbage"))
	require.Error(t, err)
}
