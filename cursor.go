package loom

import "iter"

// Cursor iterates every entity across every archetype matching a Query,
// in archetype-then-row order. Grounded directly on the teacher's
// cursor.go (storageIndex/entityIndex/remaining bookkeeping,
// Initialize/advance/Reset lifecycle), retargeted from
// table.Table.Length()/Entry() at *archetype.Len()/.entities directly.
// A Cursor locks its World for the duration of iteration (see
// World.lock/unlock): Insert/Remove/Despawn refuse to run while any
// Cursor is open, since a swap-remove mid-iteration could silently skip
// or repeat a row.
type Cursor struct {
	query QueryNode
	world *World

	currentArchetype *archetype
	archIndex        int
	entityIndex      int
	remaining        int

	initialized       bool
	matchedArchetypes []*archetype
}

func newCursor(query QueryNode, world *World) *Cursor {
	return &Cursor{query: query, world: world}
}

// Next advances the cursor to the next matching entity, returning false
// once exhausted (at which point the cursor has already Reset itself).
func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.Initialize()
	}
	for c.archIndex < len(c.matchedArchetypes) {
		c.currentArchetype = c.matchedArchetypes[c.archIndex]
		c.remaining = c.currentArchetype.Len()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.archIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities returns a range-over-func sequence of (row, Entity) pairs for
// every matching entity, scoped to one pass (it re-initializes and
// Resets around the loop).
func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		c.Initialize()
		for c.archIndex < len(c.matchedArchetypes) {
			c.currentArchetype = c.matchedArchetypes[c.archIndex]
			c.remaining = c.currentArchetype.Len()
			for c.entityIndex < c.remaining {
				e := c.currentArchetype.entities[c.entityIndex]
				c.entityIndex++
				if !yield(c.entityIndex-1, e) {
					c.Reset()
					return
				}
			}
			c.entityIndex = 0
			c.archIndex++
		}
		c.Reset()
	}
}

// Initialize resolves the set of matching archetypes and locks the
// World against structural mutation. Idempotent.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}
	c.world.lock()
	c.matchedArchetypes = c.matchedArchetypes[:0]
	for _, a := range c.world.archetypesSlice() {
		if c.query.Evaluate(a) {
			c.matchedArchetypes = append(c.matchedArchetypes, a)
		}
	}
	if len(c.matchedArchetypes) > 0 {
		c.archIndex = 0
		c.currentArchetype = c.matchedArchetypes[0]
		c.remaining = c.currentArchetype.Len()
	}
	c.initialized = true
}

// Reset clears cursor state and releases the World's iteration lock.
func (c *Cursor) Reset() {
	c.archIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedArchetypes = nil
	c.initialized = false
	c.world.unlock()
}

// CurrentEntity returns the entity at the cursor's current position.
func (c *Cursor) CurrentEntity() (Entity, bool) {
	if c.currentArchetype == nil || c.entityIndex == 0 {
		return Entity{}, false
	}
	return c.currentArchetype.entities[c.entityIndex-1], true
}

// EntityAtOffset returns the entity offset rows from the current
// position within the current archetype only (no cross-archetype
// wraparound).
func (c *Cursor) EntityAtOffset(offset int) (Entity, bool) {
	if c.currentArchetype == nil {
		return Entity{}, false
	}
	idx := c.entityIndex - 1 + offset
	if idx < 0 || idx >= len(c.currentArchetype.entities) {
		return Entity{}, false
	}
	return c.currentArchetype.entities[idx], true
}

// EntityIndex returns the 1-based count of entities visited so far
// within the current archetype (row+1 of the current entity).
func (c *Cursor) EntityIndex() int { return c.entityIndex }

// RemainingInArchetype reports how many entities are left to visit in
// the current archetype, including the current one.
func (c *Cursor) RemainingInArchetype() int { return c.remaining - c.entityIndex }

// TotalMatched reports the total entity count across every matching
// archetype. Consumes and resets the cursor as a side effect, matching
// the teacher's TotalMatched.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.Initialize()
	}
	total := 0
	for _, a := range c.matchedArchetypes {
		total += a.Len()
	}
	c.Reset()
	return total
}

// row returns the archetype row of the entity at the cursor's current
// position, for use by Col[T] accessors.
func (c *Cursor) row() uint32 {
	return uint32(c.entityIndex - 1)
}
