package loom

import "testing"

func TestCommandBufferSpawnDeferred(t *testing.T) {
	w := NewWorld()
	cmds := w.Commands()

	cmds.Spawn(Bundle1[Position]{A: Position{X: 1}})
	if cmds.IsEmpty() {
		t.Fatalf("buffer should hold the queued spawn before flush")
	}

	countBefore := w.NewCursor(w.NewQuery().And(Comp[Position]())).TotalMatched()
	if countBefore != 0 {
		t.Fatalf("queued spawn must not be visible before FlushCommands, saw %d", countBefore)
	}

	w.FlushCommands()
	if !cmds.IsEmpty() {
		t.Fatalf("buffer should be empty after flush")
	}

	countAfter := w.NewCursor(w.NewQuery().And(Comp[Position]())).TotalMatched()
	if countAfter != 1 {
		t.Fatalf("expected the queued entity to exist after flush, got %d", countAfter)
	}
}

func TestCommandBufferInsertRemove(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Bundle1[Position]{A: Position{X: 1}})

	cmds := w.Commands()
	CommandInsert(cmds, e, Velocity{X: 5})
	w.FlushCommands()

	vel, ok := Get[Velocity](w, e)
	if !ok || vel.X != 5 {
		t.Fatalf("expected deferred Insert to apply, got %+v ok=%v", vel, ok)
	}

	CommandRemove[Velocity](cmds, e)
	w.FlushCommands()

	if _, ok := Get[Velocity](w, e); ok {
		t.Fatalf("expected deferred Remove to apply")
	}
}

func TestCommandBufferDropsCommandsForDeadEntities(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Bundle1[Position]{A: Position{X: 1}})
	w.Despawn(e)

	cmds := w.Commands()
	CommandInsert(cmds, e, Velocity{X: 1})
	cmds.Despawn(e)

	// Neither command should panic or error even though e is already
	// dead by the time the buffer is flushed.
	w.FlushCommands()

	if w.IsAlive(e) {
		t.Fatalf("entity should remain dead")
	}
}
