package loom

// Bundle describes the initial set of components a freshly spawned
// entity carries. Implementations are the generated Bundle1..Bundle4
// below; insertInto MUST match fields to columns by ComponentID, never
// by declaration order, since an archetype's physical column order is
// independent of a bundle's field order (the binding Open Question
// decision recorded in DESIGN.md).
type Bundle interface {
	typeIDs() []ComponentID
	initArchetype(a *archetype)
	insertInto(a *archetype, row uint32, tick uint64)
}

// Bundle1 spawns an entity with a single component. Grounded on
// edwinsyarief-lazyecs's generated Query[T1] arity-by-type-parameter
// idiom and the teacher's FactoryNewComponent[T]() generic constructor.
type Bundle1[A any] struct {
	A A
}

func (b Bundle1[A]) typeIDs() []ComponentID {
	return []ComponentID{ComponentIDFor[A]()}
}

func (b Bundle1[A]) initArchetype(a *archetype) {}

func (b Bundle1[A]) insertInto(a *archetype, row uint32, tick uint64) {
	archSetComponent[A](a, row, b.A, tick)
}

// Bundle2 spawns an entity with two components.
type Bundle2[A, B any] struct {
	A A
	B B
}

func (b Bundle2[A, B]) typeIDs() []ComponentID {
	return []ComponentID{ComponentIDFor[A](), ComponentIDFor[B]()}
}

func (b Bundle2[A, B]) initArchetype(a *archetype) {}

func (b Bundle2[A, B]) insertInto(a *archetype, row uint32, tick uint64) {
	archSetComponent[A](a, row, b.A, tick)
	archSetComponent[B](a, row, b.B, tick)
}

// Bundle3 spawns an entity with three components.
type Bundle3[A, B, C any] struct {
	A A
	B B
	C C
}

func (b Bundle3[A, B, C]) typeIDs() []ComponentID {
	return []ComponentID{ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C]()}
}

func (b Bundle3[A, B, C]) initArchetype(a *archetype) {}

func (b Bundle3[A, B, C]) insertInto(a *archetype, row uint32, tick uint64) {
	archSetComponent[A](a, row, b.A, tick)
	archSetComponent[B](a, row, b.B, tick)
	archSetComponent[C](a, row, b.C, tick)
}

// Bundle4 spawns an entity with four components — the spec's stated
// maximum tuple arity ("tuples up to four are sufficient").
type Bundle4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

func (b Bundle4[A, B, C, D]) typeIDs() []ComponentID {
	return []ComponentID{ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()}
}

func (b Bundle4[A, B, C, D]) initArchetype(a *archetype) {}

func (b Bundle4[A, B, C, D]) insertInto(a *archetype, row uint32, tick uint64) {
	archSetComponent[A](a, row, b.A, tick)
	archSetComponent[B](a, row, b.B, tick)
	archSetComponent[C](a, row, b.C, tick)
	archSetComponent[D](a, row, b.D, tick)
}
