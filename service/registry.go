package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myregistry/domain"
	"myregistry/interfaces"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/sync/errgroup"
)

// Config holds the registry's timing knobs, all durations.
type Config struct {
	// SweepInterval gates the lazy GC: a sweep starts only when the previous
	// one is at least this old, both locally and store-wide.
	SweepInterval time.Duration
	// InstanceTimeout is the liveness deadline: an instance whose last
	// heartbeat plus this timeout is at or before sweep time is expired.
	InstanceTimeout time.Duration
	// MutexTimeout is the abandonment timeout of the advisory locks; it also
	// sets their poll interval (timeout/25).
	MutexTimeout time.Duration
}

// Registry implements interfaces.Registry over a plain key-value store; the
// store is the single source of truth, nothing local is authoritative.
//
// Two lock scopes exist: the global-list lock serializes group creation and
// removal and all edits to the global group list, and one lock per group
// serializes all instance and group-record edits within that group. Whenever
// both are needed they are taken global-first — the same fixed order the GC
// sweep uses — and no call site requests the global lock while holding a
// group lock. Paths that discover mid-operation that they need the global
// lock (last-instance removal, first-instance group creation) drop the group
// lock, re-take both in global-first order and re-check the state they read.
type Registry struct {
	store     interfaces.Store
	clock     interfaces.TimeProvider
	locks     *mutex
	groups    *groupIndex
	instances *instanceSet
	gc        *collector
}

// NewRegistry wires the registry over the given store and clock. The metrics
// set receives the GC sweep counter; pass a dedicated set in tests to assert
// on it without touching process-wide state.
func NewRegistry(store interfaces.Store, clock interfaces.TimeProvider, cfg Config, set *metrics.Set) *Registry {
	locks := newMutex(store, clock, cfg.MutexTimeout)
	groups := newGroupIndex(store, clock)
	return &Registry{
		store:     store,
		clock:     clock,
		locks:     locks,
		groups:    groups,
		instances: newInstanceSet(store, clock),
		gc:        newCollector(store, clock, locks, groups, cfg.SweepInterval, cfg.InstanceTimeout, set),
	}
}

// UpsertInstance registers or heartbeats (groupID, instanceID). The fast
// path — the group already exists — runs entirely under the group's lock, so
// the existence read and the subsequent writes cannot lose updates between
// concurrent heartbeats to the same instance. A brand-new group additionally
// needs the global-list lock; see the type comment for the ordering dance.
func (r *Registry) UpsertInstance(ctx context.Context, groupID, instanceID string, meta json.RawMessage) (domain.Instance, error) {
	if groupID == "" {
		return domain.Instance{}, NewBadParameterError("group id is required", nil)
	}
	if instanceID == "" {
		return domain.Instance{}, NewBadParameterError("instance id is required", nil)
	}

	if err := r.locks.Acquire(ctx, groupKey(groupID)); err != nil {
		return domain.Instance{}, err
	}
	exists, err := r.store.Exists(ctx, groupIndexKey(groupID))
	if err == nil && exists {
		record, uerr := r.instances.upsert(ctx, groupID, instanceID, meta)
		if rerr := r.locks.Release(ctx, groupKey(groupID)); uerr == nil {
			uerr = rerr
		}
		return record, uerr
	}
	if rerr := r.locks.Release(ctx, groupKey(groupID)); err == nil {
		err = rerr
	}
	if err != nil {
		return domain.Instance{}, NewInternalServerError("store read error", fmt.Errorf("can't check group index (group='%s'), err: %w", groupID, err))
	}

	// New group: re-take both locks global-first and re-check, since another
	// writer may have created the group in between.
	if err := r.locks.Acquire(ctx, globalListKey); err != nil {
		return domain.Instance{}, err
	}
	defer func() { _ = r.locks.Release(context.WithoutCancel(ctx), globalListKey) }()
	if err := r.locks.Acquire(ctx, groupKey(groupID)); err != nil {
		return domain.Instance{}, err
	}
	defer func() { _ = r.locks.Release(context.WithoutCancel(ctx), groupKey(groupID)) }()

	exists, err = r.store.Exists(ctx, groupIndexKey(groupID))
	if err != nil {
		return domain.Instance{}, NewInternalServerError("store read error", fmt.Errorf("can't check group index (group='%s'), err: %w", groupID, err))
	}
	if exists {
		return r.instances.upsert(ctx, groupID, instanceID, meta)
	}

	var record domain.Instance
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return r.groups.add(ectx, groupID, instanceID)
	})
	eg.Go(func() error {
		var cerr error
		record, cerr = r.instances.create(ectx, groupID, instanceID, meta)
		return cerr
	})
	if err := eg.Wait(); err != nil {
		return domain.Instance{}, err
	}
	return record, nil
}

// RemoveInstance deletes (groupID, instanceID); removing the last instance
// removes the group itself. Returns entity_not_found when the group does not
// exist.
func (r *Registry) RemoveInstance(ctx context.Context, groupID, instanceID string) error {
	if groupID == "" {
		return NewBadParameterError("group id is required", nil)
	}
	if instanceID == "" {
		return NewBadParameterError("instance id is required", nil)
	}

	if err := r.locks.Acquire(ctx, groupKey(groupID)); err != nil {
		return err
	}
	remaining, err := r.instances.remove(ctx, groupID, instanceID)
	if rerr := r.locks.Release(ctx, groupKey(groupID)); err == nil {
		err = rerr
	}
	if err != nil || remaining > 0 {
		return err
	}

	// The group just went empty. Group removal edits the global list, so
	// re-take both locks global-first and re-check: a concurrent heartbeat
	// may have repopulated the group in between.
	if err := r.locks.Acquire(ctx, globalListKey); err != nil {
		return err
	}
	defer func() { _ = r.locks.Release(context.WithoutCancel(ctx), globalListKey) }()
	if err := r.locks.Acquire(ctx, groupKey(groupID)); err != nil {
		return err
	}
	defer func() { _ = r.locks.Release(context.WithoutCancel(ctx), groupKey(groupID)) }()

	// A heartbeat may have recreated the record in the gap between phase one
	// and the re-acquired locks. Delete it again so the removal linearizes
	// after that heartbeat; otherwise removing the group below would strand
	// the record outside any index, where no sweep can ever reach it.
	if derr := r.store.Delete(ctx, instanceKey(groupID, instanceID)); derr != nil {
		return NewInternalServerError("store delete error", fmt.Errorf("can't delete instance record (group='%s', instance='%s'), err: %w", groupID, instanceID, derr))
	}

	ids, found, err := readRecord[[]string](ctx, r.store, groupIndexKey(groupID))
	if err != nil {
		return err
	}
	if found {
		ids = withoutID(ids, instanceID)
		if len(ids) > 0 {
			// A concurrent heartbeat repopulated the group; keep it and just
			// make sure the removed id is out of the index.
			return writeRecord(ctx, r.store, groupIndexKey(groupID), ids)
		}
	}
	return r.groups.removeAll(ctx, []string{groupID})
}

// ListGroups returns every group with its instance count. Runs the lazy GC
// gate first, then reads without locks: listing tolerates the bounded
// staleness of in-flight mutations.
func (r *Registry) ListGroups(ctx context.Context) ([]domain.GroupSummary, error) {
	if err := r.gc.maybeSweep(ctx); err != nil {
		return nil, err
	}

	groupIDs, err := r.groups.list(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.GroupSummary, len(groupIDs))
	eg, ectx := errgroup.WithContext(ctx)
	for i, groupID := range groupIDs {
		i, groupID := i, groupID
		eg.Go(func() error {
			ids, _, err := readRecord[[]string](ectx, r.store, groupIndexKey(groupID))
			if err != nil {
				return err
			}
			summaries[i] = domain.GroupSummary{
				GroupID:       groupID,
				InstanceCount: len(ids),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListInstances returns all instances of one group, entity_not_found when
// the group does not exist. Ids whose record disappeared mid-read are
// skipped, not errors: a batched scan must not abort on concurrent siblings.
func (r *Registry) ListInstances(ctx context.Context, groupID string) ([]domain.Instance, error) {
	if groupID == "" {
		return nil, NewBadParameterError("group id is required", nil)
	}
	if err := r.gc.maybeSweep(ctx); err != nil {
		return nil, err
	}

	ids, found, err := readRecord[[]string](ctx, r.store, groupIndexKey(groupID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, NewEntityNotFoundError(fmt.Sprintf("group '%s' not found", groupID), nil)
	}

	records := make([]domain.Instance, len(ids))
	present := make([]bool, len(ids))
	eg, ectx := errgroup.WithContext(ctx)
	for i, instanceID := range ids {
		i, instanceID := i, instanceID
		eg.Go(func() error {
			record, found, err := readRecord[domain.Instance](ectx, r.store, instanceKey(groupID, instanceID))
			if err != nil {
				return err
			}
			records[i] = record
			present[i] = found
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	instances := make([]domain.Instance, 0, len(ids))
	for i := range records {
		if present[i] {
			instances = append(instances, records[i])
		}
	}
	return instances, nil
}

// Sweep triggers garbage collection explicitly. With force the gate is
// bypassed and a sweep always runs; otherwise it behaves exactly like the
// lazy check the listing operations perform.
func (r *Registry) Sweep(ctx context.Context, force bool) error {
	if force {
		return r.gc.sweep(ctx)
	}
	return r.gc.maybeSweep(ctx)
}

func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
