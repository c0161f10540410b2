/*
Package loom provides an archetype-based Entity-Component-System (ECS)
runtime for games and simulations.

Loom keeps every live entity's components in columnar storage grouped by
archetype — the exact set of component types an entity carries — so
systems that operate over one component combination iterate a
cache-friendly, contiguous run of values rather than chasing pointers
through a sparse entity table.

Core Concepts:

  - Entity: a lightweight (id, generation) handle into a World.
  - Component: a plain Go struct type, identified process-wide by a
    dense ComponentID the first time ComponentIDFor[T] sees it.
  - Archetype: the columnar store for every entity sharing one exact
    component signature.
  - Bundle: the initial component set a freshly spawned entity carries
    (Bundle1..Bundle4).
  - Query / Cursor: a composable And/Or/Not filter over archetypes, and
    the stateful iterator that walks every entity matching it.
  - Resources: a typed, one-instance-per-type registry for world-global
    state that isn't itself an entity.
  - CommandBuffer: a deferred queue of Spawn/Despawn/Insert/Remove calls,
    for use from inside a Cursor-driven system where structural mutation
    is locked out until the pass completes.
  - Scheduler: orders Systems into stages and packs each stage into
    conflict-free batches that may run concurrently.

Basic Usage:

	world := loom.Factory.NewWorld()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	e := world.Spawn(loom.Bundle2[Position, Velocity]{
		A: Position{X: 0, Y: 0},
		B: Velocity{X: 1, Y: 0},
	})

	pos := loom.FactoryNewComponent[Position]()
	vel := loom.FactoryNewComponent[Velocity]()

	q := world.NewQuery()
	node := q.And(loom.Comp[Position](), loom.Comp[Velocity]())
	cursor := world.NewCursor(node)

	for cursor.Next() {
		p := pos.GetFromCursor(cursor)
		v := vel.GetFromCursor(cursor)
		p.X += v.X
		p.Y += v.Y
	}

	_ = e
*/
package loom
