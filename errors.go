package loom

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// EntityNotFoundError reports that a handle does not refer to a live
// entity in this World (either never allocated, or already despawned).
type EntityNotFoundError struct {
	Entity Entity
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity not found: %v", e.Entity)
}

// ComponentNotFoundError reports that an entity does not carry the
// requested component type.
type ComponentNotFoundError struct {
	Entity    Entity
	Component string
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %s not found on entity %v", e.Component, e.Entity)
}

// ArchetypeNotFoundError reports that a referenced ArchetypeID does not
// exist in this World.
type ArchetypeNotFoundError struct {
	ArchetypeID ArchetypeID
}

func (e ArchetypeNotFoundError) Error() string {
	return fmt.Sprintf("archetype %d not found", e.ArchetypeID)
}

// InvalidOperationError reports a runtime-checked precondition violation
// that is the caller's fault (e.g. calling Insert or Remove while a
// Cursor holds the World locked for iteration) rather than an internal
// invariant break.
type InvalidOperationError struct {
	Reason string
}

func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %s", e.Reason)
}

// panicInvariant aborts on violations of internal invariants that a
// caller cannot have triggered through valid use of the public API
// (corrupted bookkeeping, a row index past an archetype's length, and
// so on). Wrapped with bark.AddTrace exactly as the teacher's entity.go
// and query.go wrap their own invariant panics.
func panicInvariant(msg string, detail any) {
	panic(bark.AddTrace(fmt.Errorf("loom: invariant violation: %s: %v", msg, detail)))
}
