package loom

import "fmt"

// namedCache is a bounded, string-keyed slot store: register once, then
// look up by name or by the dense index handed back at registration.
// Adapted from the teacher's cache.go (SimpleCache[T]), generalized from
// "named prefab cache" to the Scheduler's named-system lookup (see
// scheduler.go's Scheduler.SystemNamed).
type namedCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

func newNamedCache[T any](maxCapacity int) *namedCache[T] {
	return &namedCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: maxCapacity,
	}
}

func (c *namedCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *namedCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *namedCache[T]) Register(key string, item T) (int, error) {
	if c.maxCapacity > 0 && len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *namedCache[T]) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}
