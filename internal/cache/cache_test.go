package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gramshield/dashboard/internal/entity"
)

func keywordCache() *Cache[entity.Keyword] {
	return New(entity.Keyword.RecordID)
}

func TestCacheSnapshot(t *testing.T) {
	c := keywordCache()
	assert.False(t, c.Loaded())
	assert.Empty(t, c.Snapshot())

	c.SetSnapshot([]entity.Keyword{
		{ID: 1, Term: "free followers"},
		{ID: 2, Term: "crypto giveaway"},
	})
	assert.True(t, c.Loaded())
	assert.Equal(t, 2, c.Len())

	snap := c.Snapshot()
	snap[0].Term = "mutated"
	fresh := c.Snapshot()
	assert.Equal(t, "free followers", fresh[0].Term, "handed-out snapshots are copies")
}

func TestCacheSetSnapshotCopiesInput(t *testing.T) {
	c := keywordCache()
	src := []entity.Keyword{{ID: 1, Term: "original"}}
	c.SetSnapshot(src)
	src[0].Term = "mutated"
	assert.Equal(t, "original", c.Snapshot()[0].Term)
}

func TestCachePatching(t *testing.T) {
	c := keywordCache()
	c.SetSnapshot([]entity.Keyword{
		{ID: 1, Term: "one", IsActive: true},
		{ID: 2, Term: "two", IsActive: true},
	})

	t.Run("append", func(t *testing.T) {
		c.Append(entity.Keyword{ID: 3, Term: "three"})
		require.Equal(t, 3, c.Len())
		assert.Equal(t, 3, c.Snapshot()[2].ID)
	})

	t.Run("replace by id", func(t *testing.T) {
		c.Replace(entity.Keyword{ID: 2, Term: "two", IsActive: false})
		snap := c.Snapshot()
		assert.False(t, snap[1].IsActive)
		assert.Equal(t, []int{1, 2, 3}, []int{snap[0].ID, snap[1].ID, snap[2].ID}, "order preserved")
	})

	t.Run("replace of absent id is ignored", func(t *testing.T) {
		c.Replace(entity.Keyword{ID: 99, Term: "ghost"})
		assert.Equal(t, 3, c.Len())
	})

	t.Run("remove", func(t *testing.T) {
		c.Remove(1)
		snap := c.Snapshot()
		require.Len(t, snap, 2)
		assert.Equal(t, 2, snap[0].ID)

		c.Remove(99)
		assert.Equal(t, 2, c.Len())
	})
}
