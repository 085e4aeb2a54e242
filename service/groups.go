package service

import (
	"context"
	"slices"

	"myregistry/domain"
	"myregistry/interfaces"

	"golang.org/x/sync/errgroup"
)

// groupIndex maintains the global group-id list and per-group metadata
// records. Nothing here acquires locks: every method requires the caller to
// hold the global-list lock. State is re-read from the store on every call,
// so staleness is bounded by the caller's lock discipline, not by caching.
type groupIndex struct {
	store interfaces.Store
	clock interfaces.TimeProvider
}

func newGroupIndex(store interfaces.Store, clock interfaces.TimeProvider) *groupIndex {
	return &groupIndex{
		store: store,
		clock: clock,
	}
}

// list returns the global group-id list. A missing list reads as empty; the
// list key itself is never deleted once created.
func (g *groupIndex) list(ctx context.Context) ([]string, error) {
	ids, _, err := readRecord[[]string](ctx, g.store, globalListKey)
	return ids, err
}

// add creates the group record, its instance-index seeded with one id, and
// appends groupID to the global list. The three writes are issued
// concurrently — the global-list lock held by the caller is what guards
// them, not write ordering — and add returns once all complete or any fails.
func (g *groupIndex) add(ctx context.Context, groupID, seedInstanceID string) error {
	now := g.clock.Now()
	record := domain.Group{
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return writeRecord(ectx, g.store, groupKey(groupID), record)
	})
	eg.Go(func() error {
		return writeRecord(ectx, g.store, groupIndexKey(groupID), []string{seedInstanceID})
	})
	eg.Go(func() error {
		return g.alterGlobalList(ectx, []string{groupID}, nil)
	})
	return eg.Wait()
}

// removeAll deletes each group's record and instance-index and drops all of
// them from the global list in one combined alteration. Groups that already
// disappeared delete as no-ops.
func (g *groupIndex) removeAll(ctx context.Context, groupIDs []string) error {
	eg, ectx := errgroup.WithContext(ctx)
	for _, groupID := range groupIDs {
		groupID := groupID
		eg.Go(func() error {
			return g.store.Delete(ectx, groupKey(groupID))
		})
		eg.Go(func() error {
			return g.store.Delete(ectx, groupIndexKey(groupID))
		})
	}
	eg.Go(func() error {
		return g.alterGlobalList(ectx, nil, groupIDs)
	})
	return eg.Wait()
}

// alterGlobalList reads the current list, applies additions then removals,
// and writes the full list back. Additions are processed first, so an id
// present in both slices nets to removed. A missing list is treated as empty.
func (g *groupIndex) alterGlobalList(ctx context.Context, add, remove []string) error {
	ids, _, err := readRecord[[]string](ctx, g.store, globalListKey)
	if err != nil {
		return err
	}

	for _, id := range add {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	for _, id := range remove {
		ids = slices.DeleteFunc(ids, func(existing string) bool { return existing == id })
	}
	if ids == nil {
		ids = []string{}
	}

	return writeRecord(ctx, g.store, globalListKey, ids)
}
