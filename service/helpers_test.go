package service

import (
	"sync"
	"time"

	"myregistry/adapters/memstore"

	"github.com/VictoriaMetrics/metrics"
)

// testClock is a steppable clock for deterministic liveness, expiry-boundary
// and lock-abandonment tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var testStart = time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)

const (
	testSweepInterval   = time.Minute
	testInstanceTimeout = 5 * time.Minute
	testMutexTimeout    = 100 * time.Millisecond
)

func newTestRegistry(clock *testClock) (*Registry, *memstore.Store, *metrics.Set) {
	store := memstore.NewStore()
	set := metrics.NewSet()
	registry := NewRegistry(store, clock, Config{
		SweepInterval:   testSweepInterval,
		InstanceTimeout: testInstanceTimeout,
		MutexTimeout:    testMutexTimeout,
	}, set)
	return registry, store, set
}
