package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"myregistry/domain"
	"myregistry/interfaces"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sync/errgroup"
)

// collector is the lazy garbage collector. It is not driven by a background
// timer: read-heavy registry operations call maybeSweep first, and a sweep
// actually runs only when both the process-local last-sweep time and the
// shared store-resident one are at least one interval old. The local gate
// spares a store round-trip on every request, the shared gate spares
// redundant sweeps across processes.
type collector struct {
	store           interfaces.Store
	clock           interfaces.TimeProvider
	locks           *mutex
	groups          *groupIndex
	interval        time.Duration
	instanceTimeout time.Duration

	mu        sync.Mutex
	lastSweep time.Time // process-local gate

	sweeps *metrics.Counter // injected, so tests assert on it without process-wide state
}

func newCollector(store interfaces.Store, clock interfaces.TimeProvider, locks *mutex, groups *groupIndex, interval, instanceTimeout time.Duration, set *metrics.Set) *collector {
	return &collector{
		store:           store,
		clock:           clock,
		locks:           locks,
		groups:          groups,
		interval:        interval,
		instanceTimeout: instanceTimeout,
		sweeps:          set.NewCounter("registry_gc_sweeps_total"),
	}
}

// sweepDue reports whether a sweep should start: both the process-local and
// the shared last-sweep timestamps must be at least one interval old. Pure,
// so the gating logic is testable without executing a sweep.
func sweepDue(now, localLast, sharedLast time.Time, interval time.Duration) bool {
	return !now.Before(localLast.Add(interval)) && !now.Before(sharedLast.Add(interval))
}

// maybeSweep runs the gate and, when it opens, a full sweep. When another
// process swept recently the local gate is advanced to the shared timestamp
// so subsequent requests skip the store read too.
func (c *collector) maybeSweep(ctx context.Context) error {
	now := c.clock.Now()

	c.mu.Lock()
	local := c.lastSweep
	c.mu.Unlock()
	if now.Before(local.Add(c.interval)) {
		return nil
	}

	shared, err := c.readSharedTimestamp(ctx)
	if err != nil {
		return err
	}
	if !sweepDue(now, local, shared, c.interval) {
		c.mu.Lock()
		if shared.After(c.lastSweep) {
			c.lastSweep = shared
		}
		c.mu.Unlock()
		return nil
	}

	return c.sweep(ctx)
}

// sweep expires every instance past its liveness deadline and prunes groups
// left empty, while holding the global-list lock and every group's lock. All
// locks are released on the way out even when individual deletions no-op;
// releases use a non-cancellable context so a caller timeout cannot leave a
// lock behind.
func (c *collector) sweep(ctx context.Context) error {
	c.sweeps.Inc()

	// Announce sweep start to other processes' gates before taking any lock.
	now := c.clock.Now()
	if err := c.writeSharedTimestamp(ctx, now); err != nil {
		return err
	}

	if err := c.locks.Acquire(ctx, globalListKey); err != nil {
		return err
	}
	var (
		heldMu sync.Mutex
		held   []string
	)
	defer func() {
		rctx := context.WithoutCancel(ctx)
		heldMu.Lock()
		for _, name := range held {
			_ = c.locks.Release(rctx, name)
		}
		heldMu.Unlock()
		_ = c.locks.Release(rctx, globalListKey)
	}()

	groupIDs, err := c.groups.list(ctx)
	if err != nil {
		return err
	}

	var (
		emptyMu sync.Mutex
		empty   []string
	)
	eg, ectx := errgroup.WithContext(ctx)
	for _, groupID := range groupIDs {
		groupID := groupID
		eg.Go(func() error {
			if err := c.locks.Acquire(ectx, groupKey(groupID)); err != nil {
				return err
			}
			heldMu.Lock()
			held = append(held, groupKey(groupID))
			heldMu.Unlock()

			kept, err := c.sweepGroup(ectx, groupID, now)
			if err != nil {
				return err
			}
			if kept == 0 {
				emptyMu.Lock()
				empty = append(empty, groupID)
				emptyMu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(empty) > 0 {
		if err := c.groups.removeAll(ctx, empty); err != nil {
			return err
		}
	}

	// Announce completion and advance the local gate.
	end := c.clock.Now()
	if err := c.writeSharedTimestamp(ctx, end); err != nil {
		return err
	}
	c.mu.Lock()
	c.lastSweep = end
	c.mu.Unlock()
	return nil
}

// sweepGroup evaluates one group's instances concurrently and writes the
// pruned index back, returning how many instances survived. An instance is
// expired when its record is gone or updated-at plus the liveness timeout is
// at or before now (inclusive boundary). A group whose index vanished
// mid-sweep counts as empty.
func (c *collector) sweepGroup(ctx context.Context, groupID string, now time.Time) (int, error) {
	ids, found, err := readRecord[[]string](ctx, c.store, groupIndexKey(groupID))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}

	expired := make([]bool, len(ids)) // index-aligned, each slot owned by one goroutine
	eg, ectx := errgroup.WithContext(ctx)
	for i, instanceID := range ids {
		i, instanceID := i, instanceID
		eg.Go(func() error {
			record, found, err := readRecord[domain.Instance](ectx, c.store, instanceKey(groupID, instanceID))
			if err != nil {
				return err
			}
			if found && record.UpdatedAt.Add(c.instanceTimeout).After(now) {
				return nil
			}
			expired[i] = true
			if err := c.store.Delete(ectx, instanceKey(groupID, instanceID)); err != nil {
				return NewInternalServerError("store delete error", fmt.Errorf("can't delete expired instance (group='%s', instance='%s'), err: %w", groupID, instanceID, err))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	kept := make([]string, 0, len(ids))
	for i, instanceID := range ids {
		if !expired[i] {
			kept = append(kept, instanceID)
		}
	}
	if len(kept) == 0 {
		// The caller removes the group; its index goes with it.
		return 0, nil
	}
	return len(kept), writeRecord(ctx, c.store, groupIndexKey(groupID), kept)
}

// readSharedTimestamp reads the store-resident last-sweep marker. Absent
// means no sweep has ever run, which reads as the zero time.
func (c *collector) readSharedTimestamp(ctx context.Context) (time.Time, error) {
	value, found, err := c.store.Get(ctx, lastSweepKey)
	if err != nil {
		return time.Time{}, NewInternalServerError("store read error", fmt.Errorf("can't read last-sweep timestamp, err: %w", err))
	}
	if !found {
		return time.Time{}, nil
	}
	at, err := parseTimestamp(value)
	if err != nil {
		// An unreadable marker gates the sweep open rather than wedging it shut.
		return time.Time{}, nil
	}
	return at, nil
}

func (c *collector) writeSharedTimestamp(ctx context.Context, at time.Time) error {
	if err := c.store.Set(ctx, lastSweepKey, formatTimestamp(at)); err != nil {
		return NewInternalServerError("store write error", fmt.Errorf("can't write last-sweep timestamp, err: %w", err))
	}
	return nil
}
