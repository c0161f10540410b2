package loom

// factory implements the teacher's factory-singleton pattern for
// constructing top-level loom values, so call sites read
// loom.Factory.NewWorld(...) the same way warehouse call sites read
// warehouse.Factory.NewStorage(...).
type factory struct{}

// Factory is the package's global construction entry point.
var Factory factory

// NewWorld constructs a new World with the given Options applied on top
// of Config's defaults.
func (f factory) NewWorld(opts ...Option) *World {
	return NewWorld(opts...)
}

// NewQuery starts a new, world-independent Query tree. Bind it to a
// World via World.NewCursor to iterate.
func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor binds a query tree to world for iteration.
func (f factory) NewCursor(query QueryNode, world *World) *Cursor {
	return newCursor(query, world)
}

// FactoryNewComponent returns a Col[T] accessor for component type T, the
// loom equivalent of the teacher's FactoryNewComponent[T]()
// AccessibleComponent[T].
func FactoryNewComponent[T any]() Col[T] {
	return NewCol[T]()
}

// FactoryNewCache creates a namedCache-backed registry of capacity cap
// (0 means unbounded), for holding named systems or other named values
// outside the component/entity model.
func FactoryNewCache[T any](cap int) *namedCache[T] {
	return newNamedCache[T](cap)
}
