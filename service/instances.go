package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"myregistry/domain"
	"myregistry/interfaces"

	"golang.org/x/sync/errgroup"
)

// instanceSet maintains individual instance records and each group's
// instance-index. Like groupIndex, it never acquires locks itself: every
// method requires the caller to hold the owning group's lock.
type instanceSet struct {
	store interfaces.Store
	clock interfaces.TimeProvider
}

func newInstanceSet(store interfaces.Store, clock interfaces.TimeProvider) *instanceSet {
	return &instanceSet{
		store: store,
		clock: clock,
	}
}

// upsert creates the record for (groupID, instanceID) or, if one exists,
// heartbeats it: only updated-at is refreshed, the stored payload and
// created-at are preserved regardless of the meta submitted with the
// heartbeat. Either way the owning group's last-updated-at is bumped as part
// of the same logical step. The companion writes are issued concurrently
// with one failure aggregation point; the group lock held by the caller
// guards them.
func (s *instanceSet) upsert(ctx context.Context, groupID, instanceID string, meta json.RawMessage) (domain.Instance, error) {
	now := s.clock.Now()

	existing, found, err := readRecord[domain.Instance](ctx, s.store, instanceKey(groupID, instanceID))
	if err != nil {
		return domain.Instance{}, err
	}

	if found {
		existing.UpdatedAt = now
		eg, ectx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			return writeRecord(ectx, s.store, instanceKey(groupID, instanceID), existing)
		})
		eg.Go(func() error {
			return s.touchGroup(ectx, groupID, now)
		})
		return existing, eg.Wait()
	}

	record := domain.Instance{
		InstanceID: instanceID,
		GroupID:    groupID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Meta:       meta,
	}
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return writeRecord(ectx, s.store, instanceKey(groupID, instanceID), record)
	})
	eg.Go(func() error {
		return s.appendIndex(ectx, groupID, instanceID)
	})
	eg.Go(func() error {
		return s.touchGroup(ectx, groupID, now)
	})
	return record, eg.Wait()
}

// create writes the record for the first instance of a brand-new group. The
// index seeding and group record belong to groupIndex.add, which runs
// alongside this call under both the global-list and the group lock.
func (s *instanceSet) create(ctx context.Context, groupID, instanceID string, meta json.RawMessage) (domain.Instance, error) {
	now := s.clock.Now()
	record := domain.Instance{
		InstanceID: instanceID,
		GroupID:    groupID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Meta:       meta,
	}
	if err := writeRecord(ctx, s.store, instanceKey(groupID, instanceID), record); err != nil {
		return domain.Instance{}, err
	}
	return record, nil
}

// remove deletes the instance record and prunes the id from the group's
// index, returning how many instances remain. When the pruned index is empty
// it is intentionally NOT written back: the caller removes the whole group
// under the global-list lock, and the stale index entry is tolerated by
// readers until then. Returns entity_not_found when the group's index does
// not exist.
func (s *instanceSet) remove(ctx context.Context, groupID, instanceID string) (int, error) {
	ids, found, err := readRecord[[]string](ctx, s.store, groupIndexKey(groupID))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, NewEntityNotFoundError(fmt.Sprintf("group '%s' not found", groupID), nil)
	}

	if err := s.store.Delete(ctx, instanceKey(groupID, instanceID)); err != nil {
		return 0, NewInternalServerError("store delete error", fmt.Errorf("can't delete instance record (group='%s', instance='%s'), err: %w", groupID, instanceID, err))
	}

	pruned := slices.DeleteFunc(slices.Clone(ids), func(existing string) bool { return existing == instanceID })
	if len(pruned) == 0 {
		return 0, nil
	}
	return len(pruned), writeRecord(ctx, s.store, groupIndexKey(groupID), pruned)
}

// appendIndex adds instanceID to the group's index, creating the index when
// absent. Ids already present are not duplicated.
func (s *instanceSet) appendIndex(ctx context.Context, groupID, instanceID string) error {
	ids, _, err := readRecord[[]string](ctx, s.store, groupIndexKey(groupID))
	if err != nil {
		return err
	}
	if slices.Contains(ids, instanceID) {
		return nil
	}
	return writeRecord(ctx, s.store, groupIndexKey(groupID), append(ids, instanceID))
}

// touchGroup bumps the group record's last-updated-at. A missing record is a
// no-op: the group may be mid-removal, and the freshness stamp is display
// metadata, not load-bearing for any later invariant check.
func (s *instanceSet) touchGroup(ctx context.Context, groupID string, now time.Time) error {
	record, found, err := readRecord[domain.Group](ctx, s.store, groupKey(groupID))
	if err != nil || !found {
		return err
	}
	record.UpdatedAt = now
	return writeRecord(ctx, s.store, groupKey(groupID), record)
}
