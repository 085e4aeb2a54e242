package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"myregistry/interfaces"
)

// pollDivisor sets the poll interval to timeout/25, which bounds worst-case
// acquisition latency to roughly one timeout while keeping poll frequency bounded.
const pollDivisor = 25

// mutex is the advisory lock primitive over plain store keys. A lock is one
// key holding its acquisition timestamp; acquisition is optimistic because
// the store protocol has no compare-and-swap. Two callers racing an
// abandoned lock can therefore both claim it — last writer wins. This is a
// documented property of the design, not something callers may assume away:
// holding a lock does not physically block writes to the guarded keys, all
// writers honor the protocol voluntarily.
type mutex struct {
	store   interfaces.Store
	clock   interfaces.TimeProvider
	timeout time.Duration
}

func newMutex(store interfaces.Store, clock interfaces.TimeProvider, timeout time.Duration) *mutex {
	return &mutex{
		store:   store,
		clock:   clock,
		timeout: timeout,
	}
}

// Acquire claims the named lock, polling until the lock key is absent or its
// holder's timestamp is older than the configured timeout (an abandoned lock
// is claimed by overwrite). There is no acquisition deadline of its own: the
// loop runs until it wins the lock, a store call fails, or ctx is cancelled.
func (m *mutex) Acquire(ctx context.Context, name string) error {
	key := mutexKey(name)

	for {
		value, found, err := m.store.Get(ctx, key)
		if err != nil {
			return NewInternalServerError("mutex read error", fmt.Errorf("can't read lock key '%s', err: %w", key, err))
		}

		now := m.clock.Now()
		if !found {
			return m.claim(ctx, key, now)
		}

		heldAt, err := parseTimestamp(value)
		if err != nil || now.Sub(heldAt) > m.timeout {
			// Unreadable or abandoned entry. Claiming it is not atomic: a
			// concurrent claimant may win the same lock.
			return m.claim(ctx, key, now)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.timeout / pollDivisor):
		}
	}
}

// Release frees the named lock by deleting its key unconditionally.
// Releasing a lock that is not held is a no-op.
func (m *mutex) Release(ctx context.Context, name string) error {
	key := mutexKey(name)
	if err := m.store.Delete(ctx, key); err != nil {
		return NewInternalServerError("mutex release error", fmt.Errorf("can't delete lock key '%s', err: %w", key, err))
	}
	return nil
}

func (m *mutex) claim(ctx context.Context, key string, now time.Time) error {
	if err := m.store.Set(ctx, key, formatTimestamp(now)); err != nil {
		return NewInternalServerError("mutex claim error", fmt.Errorf("can't write lock key '%s', err: %w", key, err))
	}
	return nil
}

// Mutex and sweep timestamps are stored as bare unix-nanosecond strings, not
// JSON records.

func formatTimestamp(t time.Time) []byte {
	return strconv.AppendInt(nil, t.UnixNano(), 10)
}

func parseTimestamp(value []byte) (time.Time, error) {
	nanos, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("can't parse timestamp value '%s', err: %w", value, err)
	}
	return time.Unix(0, nanos).UTC(), nil
}
