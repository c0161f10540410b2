package loom

import (
	"github.com/TheBitDrifter/mask"
)

// ArchetypeID is the stable, process-local identity of an archetype within
// a World. IDs are never reused even if an archetype becomes empty.
type ArchetypeID uint32

// archetype is a columnar store for every live entity sharing an exact
// component signature. Rows across all of an archetype's columns and its
// entities slice stay aligned by index — row i of every column belongs to
// entities[i]. Grounded on delaneyj-arche/ecs/archetype.go's Add/Remove/
// extend mechanics and original_source/ecs-complete/src/archetype.rs's
// Column/drop_fn contract.
type archetype struct {
	id        ArchetypeID
	signature []ComponentID // sorted, canonical
	sigMask   mask.Mask
	columns   []*column
	colIndex  map[ComponentID]int
	entities  []Entity
	tick      uint64
}

func newArchetypeFrom(id ArchetypeID, signature []ComponentID) *archetype {
	sig := append([]ComponentID(nil), signature...)
	sortComponentIDs(sig)

	a := &archetype{
		id:        id,
		signature: sig,
		colIndex:  make(map[ComponentID]int, len(sig)),
	}
	for i, cid := range sig {
		a.sigMask.Mark(uint32(cid))
		a.columns = append(a.columns, newColumn(componentInfoFor(cid)))
		a.colIndex[cid] = i
	}
	return a
}

func (a *archetype) ID() ArchetypeID { return a.id }
func (a *archetype) Len() int        { return len(a.entities) }

func (a *archetype) Signature() []ComponentID {
	return a.signature
}

func (a *archetype) hasComponent(id ComponentID) bool {
	_, ok := a.colIndex[id]
	return ok
}

// setTick stamps tick as the most recent world tick at which any row of
// a was written. Called from every write path (pushEntity,
// archSetComponent, copyComponentFrom, archTouch) rather than
// unconditionally from World.Tick, matching spec §3's "a tick field
// that records the current world tick when rows are written".
func (a *archetype) setTick(tick uint64) {
	if tick > a.tick {
		a.tick = tick
	}
}

// pushEntity appends e as a new, uninitialized row (every column grows by
// one) and returns the row index. Callers must populate every column
// before the row is considered valid (Bundle.insertInto does this).
func (a *archetype) pushEntity(e Entity, tick uint64) uint32 {
	row := uint32(len(a.entities))
	a.entities = append(a.entities, e)
	for _, col := range a.columns {
		col.pushUninit(tick)
	}
	a.setTick(tick)
	return row
}

// destroyRow runs each column's destructor-equivalent on row (per the
// binding despawn-drops, migration-doesn't open question), then
// swap-removes the row. Returns the entity that was swapped into row's
// old slot (equal to e if row was already last).
func (a *archetype) destroyRow(row uint32) Entity {
	for _, col := range a.columns {
		col.dropAt(row)
	}
	return a.swapRemoveRaw(row)
}

// migrateOutRow swap-removes row WITHOUT running destructors: the row's
// component values have already been bitwise-copied into a destination
// archetype by the caller (World.Insert/Remove) before this is called.
func (a *archetype) migrateOutRow(row uint32) Entity {
	return a.swapRemoveRaw(row)
}

func (a *archetype) swapRemoveRaw(row uint32) Entity {
	last := uint32(len(a.entities) - 1)
	swapped := a.entities[last]
	a.entities[row] = a.entities[last]
	a.entities = a.entities[:last]
	for _, col := range a.columns {
		col.swapRemoveAt(row)
	}
	return swapped
}

// copyComponentFrom bitwise-copies the value of component id from src's
// row srcRow into this archetype's row dstRow. Used during structural
// migration for every ComponentID present in both the source and
// destination signatures.
func (a *archetype) copyComponentFrom(dstRow uint32, src *archetype, srcRow uint32, id ComponentID, tick uint64) {
	dstIdx, ok := a.colIndex[id]
	if !ok {
		panicInvariant("copyComponentFrom: destination archetype missing component", componentTypeName(id))
	}
	srcIdx, ok := src.colIndex[id]
	if !ok {
		panicInvariant("copyComponentFrom: source archetype missing component", componentTypeName(id))
	}
	a.columns[dstIdx].copyRowFrom(src.columns[srcIdx], srcRow, dstRow, tick)
	a.setTick(tick)
}

func archSetComponent[T any](a *archetype, row uint32, value T, tick uint64) {
	id := ComponentIDFor[T]()
	idx, ok := a.colIndex[id]
	if !ok {
		panicInvariant("archetype missing declared component", componentTypeName(id))
	}
	writeAt[T](a.columns[idx], row, value, tick)
	a.setTick(tick)
}

func archGetComponent[T any](a *archetype, row uint32) (*T, bool) {
	id := ComponentIDFor[T]()
	idx, ok := a.colIndex[id]
	if !ok {
		return nil, false
	}
	return readAt[T](a.columns[idx], row), true
}

func archTakeComponent[T any](a *archetype, row uint32) (T, bool) {
	id := ComponentIDFor[T]()
	idx, ok := a.colIndex[id]
	if !ok {
		var zero T
		return zero, false
	}
	return takeAt[T](a.columns[idx], row), true
}

func archTouch[T any](a *archetype, row uint32, tick uint64) {
	id := ComponentIDFor[T]()
	if idx, ok := a.colIndex[id]; ok {
		a.columns[idx].touch(row, tick)
		a.setTick(tick)
	}
}

// archChangedSince reports whether T at row was written after sinceTick.
// a.tick is the most recent write to ANY row/column of a, so a.tick <=
// sinceTick means no row in the whole archetype changed since sinceTick
// and the per-row changedTicks scan can be skipped entirely.
func archChangedSince[T any](a *archetype, row uint32, sinceTick uint64) bool {
	if a.tick <= sinceTick {
		return false
	}
	id := ComponentIDFor[T]()
	idx, ok := a.colIndex[id]
	if !ok {
		return false
	}
	return a.columns[idx].changedSince(row, sinceTick)
}
