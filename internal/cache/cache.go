// Package cache holds the last successfully loaded snapshot per entity
// type. Mutations patch the snapshot in place instead of re-fetching:
// the optimistic-update contract. The cache may diverge from the backing
// store under concurrent external writes; there is no reconciliation,
// which is acceptable for a single-operator monitoring tool.
package cache

import "sync"

// Cache owns one entity collection. Snapshots handed out are copies; the
// internal slice is never shared.
type Cache[T any] struct {
	mu     sync.RWMutex
	recs   []T
	loaded bool
	recID  func(T) int
}

// New builds a cache keyed by the given identifier accessor.
func New[T any](recID func(T) int) *Cache[T] {
	return &Cache[T]{recID: recID}
}

// Loaded reports whether a snapshot has been stored since startup.
func (c *Cache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// SetSnapshot replaces the cached collection with the result of a load.
// Concurrent loads are last-write-wins by design.
func (c *Cache[T]) SetSnapshot(recs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append([]T(nil), recs...)
	c.loaded = true
}

// Snapshot returns a copy of the cached collection.
func (c *Cache[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.recs...)
}

// Append adds a freshly created record to the snapshot.
func (c *Cache[T]) Append(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, rec)
}

// Replace swaps the record with the same identifier for the adapter's
// merged result. Records not present are ignored: the view simply picks
// them up on the next full load.
func (c *Cache[T]) Replace(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.recID(rec)
	for i := range c.recs {
		if c.recID(c.recs[i]) == id {
			c.recs[i] = rec
			return
		}
	}
}

// Remove drops the record with the given identifier, if present.
func (c *Cache[T]) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.recs {
		if c.recID(c.recs[i]) == id {
			c.recs = append(c.recs[:i], c.recs[i+1:]...)
			return
		}
	}
}

// Len returns the number of cached records.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recs)
}
