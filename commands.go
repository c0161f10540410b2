package loom

// command is a deferred, tagged operation against a World. Grounded on
// original_source/ecs-complete/src/command.rs's Command enum
// (Spawn/Despawn/Insert/Remove, each a boxed closure) and the teacher's
// operation_queue.go (EntityOperation.Apply(Storage) error, with each
// concrete op re-validating entity liveness before applying).
type command interface {
	apply(w *World)
}

type spawnCommand struct {
	bundle Bundle
}

func (c spawnCommand) apply(w *World) { w.Spawn(c.bundle) }

type despawnCommand struct {
	entity Entity
}

func (c despawnCommand) apply(w *World) { w.Despawn(c.entity) }

// entityCommand wraps an Insert/Remove closure so CommandBuffer can stay
// a plain, non-generic struct (Go methods cannot introduce new type
// parameters, so CommandInsert/CommandRemove are free functions below
// that capture the concrete T in a closure instead).
type entityCommand struct {
	entity Entity
	fn     func(w *World, e Entity)
}

func (c entityCommand) apply(w *World) {
	if !w.IsAlive(c.entity) {
		return
	}
	c.fn(w, c.entity)
}

// CommandBuffer queues Spawn/Despawn/Insert/Remove operations for later,
// atomic application via World.FlushCommands. A command referencing an
// entity that is already dead by the time the buffer is flushed is
// silently dropped rather than erroring.
type CommandBuffer struct {
	queue []command
}

// Spawn queues an entity to be created with the given bundle on flush.
func (b *CommandBuffer) Spawn(bundle Bundle) {
	b.queue = append(b.queue, spawnCommand{bundle: bundle})
}

// Despawn queues e for destruction on flush.
func (b *CommandBuffer) Despawn(e Entity) {
	b.queue = append(b.queue, despawnCommand{entity: e})
}

// CommandInsert queues inserting value as e's T component on flush.
func CommandInsert[T any](b *CommandBuffer, e Entity, value T) {
	b.queue = append(b.queue, entityCommand{
		entity: e,
		fn: func(w *World, e Entity) {
			_ = Insert[T](w, e, value)
		},
	})
}

// CommandRemove queues removing e's T component on flush.
func CommandRemove[T any](b *CommandBuffer, e Entity) {
	b.queue = append(b.queue, entityCommand{
		entity: e,
		fn: func(w *World, e Entity) {
			_, _ = Remove[T](w, e)
		},
	})
}

// Len reports the number of queued, unapplied commands.
func (b *CommandBuffer) Len() int { return len(b.queue) }

// IsEmpty reports whether the buffer has no queued commands.
func (b *CommandBuffer) IsEmpty() bool { return len(b.queue) == 0 }

func (b *CommandBuffer) flush(w *World) {
	for _, cmd := range b.queue {
		cmd.apply(w)
	}
	b.queue = b.queue[:0]
}
