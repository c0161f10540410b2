package loom

import (
	"fmt"
	"reflect"
)

// Resources is a typed, single-value-per-type registry external to the
// entity/component/archetype model — world-global state like a delta
// clock, an input snapshot, or a render target. Keyed by reflect.Type
// rather than Rust's TypeId. Grounded on
// original_source/ecs-complete/src/resource.rs's Resources{data:
// HashMap<TypeId,...>} contract; backed directly by a
// map[reflect.Type]any, one slot per resource type.
type Resources struct {
	slots map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{slots: make(map[reflect.Type]any)}
}

func resourceKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// InsertResource stores value as the World's single instance of T,
// overwriting any previous value of the same type.
func InsertResource[T any](w *World, value T) {
	w.resources.slots[resourceKey[T]()] = value
}

// GetResource returns a pointer to the World's T resource and whether it
// was present. The returned pointer is read-only in effect: it points at
// a local copy extracted from the map, so mutating through it is never
// visible to later GetResource[T] calls. Use GetResourceMut to write.
func GetResource[T any](w *World) (*T, bool) {
	key := resourceKey[T]()
	v, ok := w.resources.slots[key]
	if !ok {
		return nil, false
	}
	boxed := v.(T)
	return &boxed, true
}

// GetResourceMut retrieves T, applies fn to a mutable copy, then writes
// the result back — the Go-idiomatic stand-in for Rust's ResMut<T>
// deref-mut guard, since Go cannot hand back a pointer directly into an
// interface{}-typed map slot.
func GetResourceMut[T any](w *World, fn func(*T)) bool {
	key := resourceKey[T]()
	v, ok := w.resources.slots[key]
	if !ok {
		return false
	}
	boxed := v.(T)
	fn(&boxed)
	w.resources.slots[key] = boxed
	return true
}

// RemoveResource deletes the World's T resource, if any.
func RemoveResource[T any](w *World) {
	delete(w.resources.slots, resourceKey[T]())
}

// HasResource reports whether the World currently holds a T resource.
func HasResource[T any](w *World) bool {
	_, ok := w.resources.slots[resourceKey[T]()]
	return ok
}

func (r *Resources) String() string {
	return fmt.Sprintf("Resources(%d types)", len(r.slots))
}
