package service

import (
	"context"
	"testing"

	"myregistry/adapters/memstore"
	"myregistry/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupIndex_AlterGlobalList(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing []string // nil means the list key does not exist yet
		add      []string
		remove   []string
		expected []string
	}{
		{
			name:     "add to missing list",
			existing: nil,
			add:      []string{"g1"},
			expected: []string{"g1"},
		},
		{
			name:     "add is idempotent",
			existing: []string{"g1"},
			add:      []string{"g1"},
			expected: []string{"g1"},
		},
		{
			name:     "remove",
			existing: []string{"g1", "g2"},
			remove:   []string{"g1"},
			expected: []string{"g2"},
		},
		{
			name:     "remove absent id is a no-op",
			existing: []string{"g1"},
			remove:   []string{"g2"},
			expected: []string{"g1"},
		},
		{
			name:     "removal wins when an id is both added and removed",
			existing: []string{"g1"},
			add:      []string{"g2"},
			remove:   []string{"g2"},
			expected: []string{"g1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewStore()
			if tt.existing != nil {
				require.NoError(t, writeRecord(ctx, store, globalListKey, tt.existing))
			}
			g := newGroupIndex(store, newTestClock(testStart))

			require.NoError(t, g.alterGlobalList(ctx, tt.add, tt.remove))

			ids, found, err := readRecord[[]string](ctx, store, globalListKey)
			require.NoError(t, err)
			require.True(t, found, "the global list persists even when it nets to empty")
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestGroupIndex_Add(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	clock := newTestClock(testStart)
	g := newGroupIndex(store, clock)

	require.NoError(t, g.add(ctx, "g1", "a"))

	record, found, err := readRecord[domain.Group](ctx, store, groupKey("g1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "g1", record.GroupID)
	assert.Equal(t, testStart, record.CreatedAt)
	assert.Equal(t, testStart, record.UpdatedAt)

	index, found, err := readRecord[[]string](ctx, store, groupIndexKey("g1"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a"}, index)

	ids, err := g.list(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)
}

func TestGroupIndex_RemoveAll(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	g := newGroupIndex(store, newTestClock(testStart))

	require.NoError(t, g.add(ctx, "g1", "a"))
	require.NoError(t, g.add(ctx, "g2", "b"))
	require.NoError(t, g.add(ctx, "g3", "c"))

	require.NoError(t, g.removeAll(ctx, []string{"g1", "g3"}))

	ids, err := g.list(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g2"}, ids)

	for _, gone := range []string{"g1", "g3"} {
		found, err := store.Exists(ctx, groupKey(gone))
		require.NoError(t, err)
		assert.False(t, found)
		found, err = store.Exists(ctx, groupIndexKey(gone))
		require.NoError(t, err)
		assert.False(t, found)
	}
}

func TestGroupIndex_RemoveAll_ToleratesVanishedGroup(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	g := newGroupIndex(store, newTestClock(testStart))

	// g1 is in the list but its record and index are already gone.
	require.NoError(t, writeRecord(ctx, store, globalListKey, []string{"g1"}))

	require.NoError(t, g.removeAll(ctx, []string{"g1"}))

	ids, err := g.list(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGroupIndex_List_MissingListIsEmpty(t *testing.T) {
	ctx := context.Background()
	g := newGroupIndex(memstore.NewStore(), newTestClock(testStart))

	ids, err := g.list(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
