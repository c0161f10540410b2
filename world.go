package loom

import "github.com/rs/zerolog"

// World owns every entity, archetype, resource, and queued command for
// one simulation. It is the spec's orchestrator: Spawn/Despawn/Get/
// Insert/Remove all resolve through entityTable -> archetypeMap ->
// archetype. Grounded primarily on
// original_source/ecs-complete/src/world.rs (spawn/despawn/get/insert/
// remove) and the teacher's storage.go/entity.go AddComponent/
// RemoveComponent flow for the migration order of operations.
type World struct {
	entities   *entityTable
	archetypes *archetypeMap
	resources  *Resources
	commands   CommandBuffer
	tick       uint64
	lockDepth  int
	logger     zerolog.Logger
}

// Option configures a World at construction time.
type Option func(*World)

// WithLogger overrides the World's diagnostic logger (disabled by
// default via Config.logger).
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithInitialEntityCapacity pre-reserves room for n entities.
func WithInitialEntityCapacity(n int) Option {
	return func(w *World) { w.entities.reserve(n) }
}

// NewWorld constructs an empty World, applying Config's defaults first
// and then any explicit Options.
func NewWorld(opts ...Option) *World {
	w := &World{
		entities:   newEntityTable(),
		archetypes: newArchetypeMap(),
		resources:  newResources(),
		logger:     Config.logger,
	}
	w.entities.reserve(Config.initialEntityCapacity)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// EntityInfo describes an entity's current archetype membership, for
// diagnostics and tests.
type EntityInfo struct {
	Archetype  ArchetypeID
	Components []string
}

// Spawn creates a new entity carrying bundle's components, resolving or
// creating the matching archetype. Not guarded by the iteration lock:
// appending a row never invalidates an in-progress cursor's row indices
// the way a swap-remove would.
func (w *World) Spawn(bundle Bundle) Entity {
	ids := bundle.typeIDs()
	arch, created := w.archetypes.getOrCreate(ids)
	if created {
		bundle.initArchetype(arch)
		w.logger.Debug().
			Uint32("archetype", uint32(arch.id)).
			Str("signature", fmtComponentIDs(arch.signature)).
			Msg("archetype created")
	}

	e := w.entities.allocate()
	row := arch.pushEntity(e, w.tick)
	bundle.insertInto(arch, row, w.tick)
	w.entities.setLocation(e, entityLocation{archetype: arch.id, row: row})
	return e
}

// Despawn destroys e, running each of its live components' destructor
// equivalent (zeroing) before removing the row. Returns false if e was
// already dead or the World is currently locked for iteration.
func (w *World) Despawn(e Entity) bool {
	if w.locked() {
		return false
	}
	loc, ok := w.entities.location(e)
	if !ok {
		return false
	}
	arch := w.archetypes.get(loc.archetype)
	swapped := arch.destroyRow(loc.row)
	if swapped != e {
		w.entities.setLocation(swapped, entityLocation{archetype: loc.archetype, row: loc.row})
	}
	w.entities.free(e)
	return true
}

// IsAlive reports whether e refers to a currently live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Get returns a read pointer to e's T component, if present.
func Get[T any](w *World, e Entity) (*T, bool) {
	loc, ok := w.entities.location(e)
	if !ok {
		return nil, false
	}
	return archGetComponent[T](w.archetypes.get(loc.archetype), loc.row)
}

// GetMut returns a write pointer to e's T component, stamping the
// column's changed tick for this row so Col[T].ChangedAtCursor observes
// the write.
func GetMut[T any](w *World, e Entity) (*T, bool) {
	loc, ok := w.entities.location(e)
	if !ok {
		return nil, false
	}
	arch := w.archetypes.get(loc.archetype)
	ptr, ok := archGetComponent[T](arch, loc.row)
	if ok {
		archTouch[T](arch, loc.row, w.tick)
	}
	return ptr, ok
}

// Insert adds or overwrites e's T component. If e already has a T, the
// value is overwritten in place with no archetype migration. Otherwise e
// migrates to the archetype reached by adding T to its current
// signature, resolved (and cached) via the transition graph.
func Insert[T any](w *World, e Entity, value T) error {
	if w.locked() {
		return InvalidOperationError{Reason: "world is locked for iteration"}
	}
	loc, ok := w.entities.location(e)
	if !ok {
		return EntityNotFoundError{Entity: e}
	}

	id := ComponentIDFor[T]()
	fromArch := w.archetypes.get(loc.archetype)

	if fromArch.hasComponent(id) {
		archSetComponent[T](fromArch, loc.row, value, w.tick)
		return nil
	}

	_, toID := w.archetypes.archetypeWithAdded(loc.archetype, id)
	fromID := loc.archetype
	dstArch, srcArch := w.archetypes.getPair(toID, fromID)

	newRow := dstArch.pushEntity(e, w.tick)
	for _, cid := range srcArch.signature {
		dstArch.copyComponentFrom(newRow, srcArch, loc.row, cid, w.tick)
	}
	archSetComponent[T](dstArch, newRow, value, w.tick)

	swapped := srcArch.migrateOutRow(loc.row)
	if swapped != e {
		w.entities.setLocation(swapped, entityLocation{archetype: fromID, row: loc.row})
	}
	w.entities.setLocation(e, entityLocation{archetype: toID, row: newRow})
	return nil
}

// Remove takes e's T component out and migrates e to the archetype
// reached by removing T from its current signature. Returns
// ComponentNotFoundError if e has no T.
func Remove[T any](w *World, e Entity) (T, error) {
	var zero T
	if w.locked() {
		return zero, InvalidOperationError{Reason: "world is locked for iteration"}
	}
	loc, ok := w.entities.location(e)
	if !ok {
		return zero, EntityNotFoundError{Entity: e}
	}

	id := ComponentIDFor[T]()
	fromArch := w.archetypes.get(loc.archetype)
	if !fromArch.hasComponent(id) {
		return zero, ComponentNotFoundError{Entity: e, Component: componentTypeName(id)}
	}

	taken, _ := archTakeComponent[T](fromArch, loc.row)

	_, toID := w.archetypes.archetypeWithRemoved(loc.archetype, id)
	fromID := loc.archetype
	dstArch, srcArch := w.archetypes.getPair(toID, fromID)

	newRow := dstArch.pushEntity(e, w.tick)
	for _, cid := range dstArch.signature {
		dstArch.copyComponentFrom(newRow, srcArch, loc.row, cid, w.tick)
	}

	swapped := srcArch.migrateOutRow(loc.row)
	if swapped != e {
		w.entities.setLocation(swapped, entityLocation{archetype: fromID, row: loc.row})
	}
	w.entities.setLocation(e, entityLocation{archetype: toID, row: newRow})
	return taken, nil
}

// Tick advances the World's logical clock by one. Archetypes record
// their own last-write tick as rows are written (pushEntity,
// archSetComponent, copyComponentFrom, archTouch), not here — Tick only
// owns the monotonic counter itself, mirroring
// original_source/ecs-complete/src/world.rs's tick().
func (w *World) Tick() uint64 {
	w.tick++
	return w.tick
}

// CurrentTick returns the World's logical clock without advancing it.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// Reserve pre-allocates room in the entity table for n additional
// entities, avoiding repeated growth during a large spawn burst.
func (w *World) Reserve(n int) {
	w.entities.reserve(n)
}

// EntityInfo reports e's current archetype and component set.
func (w *World) EntityInfo(e Entity) (EntityInfo, bool) {
	loc, ok := w.entities.location(e)
	if !ok {
		return EntityInfo{}, false
	}
	arch := w.archetypes.get(loc.archetype)
	names := make([]string, len(arch.signature))
	for i, id := range arch.signature {
		names[i] = componentTypeName(id)
	}
	return EntityInfo{Archetype: loc.archetype, Components: names}, true
}

// Commands returns the World's deferred command buffer.
func (w *World) Commands() *CommandBuffer {
	return &w.commands
}

// FlushCommands applies every queued command in order, then clears the
// buffer. Commands referencing entities that died before flush are
// silently dropped.
func (w *World) FlushCommands() {
	w.commands.flush(w)
}

func (w *World) locked() bool { return w.lockDepth > 0 }
func (w *World) lock()        { w.lockDepth++ }
func (w *World) unlock() {
	if w.lockDepth > 0 {
		w.lockDepth--
	}
}

func (w *World) archetypesSlice() []*archetype {
	return w.archetypes.list
}

// NewQuery starts a new composable query against this World.
func (w *World) NewQuery() Query {
	return newQuery()
}

// NewCursor binds a query tree to this World for iteration.
func (w *World) NewCursor(node QueryNode) *Cursor {
	return newCursor(node, w)
}
