package loom

import "testing"

func TestQueryAndMatchesOnlyFullSignature(t *testing.T) {
	w := NewWorld()
	both := w.Spawn(Bundle2[Position, Velocity]{A: Position{X: 1}, B: Velocity{X: 1}})
	w.Spawn(Bundle1[Position]{A: Position{X: 2}})
	w.Spawn(Bundle1[Velocity]{A: Velocity{X: 3}})

	q := w.NewQuery()
	node := q.And(Comp[Position](), Comp[Velocity]())
	cursor := w.NewCursor(node)

	var seen []Entity
	for cursor.Next() {
		e, _ := cursor.CurrentEntity()
		seen = append(seen, e)
	}

	if len(seen) != 1 || seen[0] != both {
		t.Fatalf("expected only the entity with both components, got %v", seen)
	}
}

func TestQueryOrMatchesEither(t *testing.T) {
	w := NewWorld()
	p := w.Spawn(Bundle1[Position]{A: Position{}})
	v := w.Spawn(Bundle1[Velocity]{A: Velocity{}})
	w.Spawn(Bundle1[Health]{A: Health{}})

	q := w.NewQuery()
	node := q.Or(Comp[Position](), Comp[Velocity]())
	cursor := w.NewCursor(node)

	matched := map[Entity]bool{}
	for cursor.Next() {
		e, _ := cursor.CurrentEntity()
		matched[e] = true
	}

	if len(matched) != 2 || !matched[p] || !matched[v] {
		t.Fatalf("expected exactly the Position and Velocity entities, got %v", matched)
	}
}

func TestQueryNotExcludesComponent(t *testing.T) {
	w := NewWorld()
	onlyPos := w.Spawn(Bundle1[Position]{A: Position{}})
	w.Spawn(Bundle2[Position, Velocity]{A: Position{}, B: Velocity{}})

	excludeVel := w.NewQuery().Not(Comp[Velocity]())
	cursor := w.NewCursor(excludeVel)

	var seen []Entity
	for cursor.Next() {
		e, _ := cursor.CurrentEntity()
		seen = append(seen, e)
	}

	if len(seen) != 1 || seen[0] != onlyPos {
		t.Fatalf("expected only the Velocity-free entity, got %v", seen)
	}
}

func TestCursorTotalMatched(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 7; i++ {
		w.Spawn(Bundle1[Position]{A: Position{X: float64(i)}})
	}
	for i := 0; i < 3; i++ {
		w.Spawn(Bundle1[Velocity]{A: Velocity{}})
	}

	node := w.NewQuery().And(Comp[Position]())
	cursor := w.NewCursor(node)

	if total := cursor.TotalMatched(); total != 7 {
		t.Fatalf("expected 7 matching entities, got %d", total)
	}
}

// TestFragmentedQuery spawns 400 entities spread across four distinct
// archetypes and checks that a query matching a component shared by two
// of those archetypes still visits exactly the entities that carry it,
// regardless of how the population is fragmented across archetypes.
func TestFragmentedQuery(t *testing.T) {
	w := NewWorld()

	const perArchetype = 100
	for i := 0; i < perArchetype; i++ {
		w.Spawn(Bundle1[Position]{A: Position{X: float64(i)}})
	}
	for i := 0; i < perArchetype; i++ {
		w.Spawn(Bundle2[Position, Velocity]{A: Position{X: float64(i)}, B: Velocity{}})
	}
	for i := 0; i < perArchetype; i++ {
		w.Spawn(Bundle2[Position, Health]{A: Position{X: float64(i)}, B: Health{Max: 10}})
	}
	for i := 0; i < perArchetype; i++ {
		w.Spawn(Bundle3[Position, Velocity, Health]{
			A: Position{X: float64(i)}, B: Velocity{}, C: Health{Max: 10},
		})
	}

	posNode := w.NewQuery().And(Comp[Position]())
	posCursor := w.NewCursor(posNode)
	if total := posCursor.TotalMatched(); total != 4*perArchetype {
		t.Fatalf("expected every entity to carry Position, got %d of %d", total, 4*perArchetype)
	}

	velNode := w.NewQuery().And(Comp[Velocity]())
	velCursor := w.NewCursor(velNode)
	if total := velCursor.TotalMatched(); total != 2*perArchetype {
		t.Fatalf("expected exactly half the population to carry Velocity, got %d", total)
	}

	allThree := w.NewQuery().And(Comp[Position](), Comp[Velocity](), Comp[Health]())
	cursor := w.NewCursor(allThree)
	if total := cursor.TotalMatched(); total != perArchetype {
		t.Fatalf("expected exactly one archetype's worth of entities to carry all three, got %d", total)
	}
}

func TestColAccessorRoundTripsThroughCursor(t *testing.T) {
	w := NewWorld()
	w.Spawn(Bundle1[Position]{A: Position{X: 1, Y: 2}})
	w.Spawn(Bundle1[Position]{A: Position{X: 3, Y: 4}})

	pos := FactoryNewComponent[Position]()
	node := w.NewQuery().And(Comp[Position]())
	cursor := w.NewCursor(node)

	var total float64
	for cursor.Next() {
		p := pos.GetFromCursor(cursor)
		total += p.X
	}

	if total != 4 {
		t.Fatalf("expected sum of X to be 4, got %v", total)
	}
}

func TestChangeDetectionTracksGetMutOnly(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(Bundle1[Position]{A: Position{X: 1}})
	baseline := w.CurrentTick()
	w.Tick()

	pos := FactoryNewComponent[Position]()
	node := w.NewQuery().And(Comp[Position]())

	cursor := w.NewCursor(node)
	cursor.Next()
	if pos.ChangedAtCursor(cursor, baseline) {
		t.Fatalf("component should not read as changed before any write past baseline")
	}
	cursor.Reset()

	if _, ok := GetMut[Position](w, e); !ok {
		t.Fatalf("GetMut should find the Position component")
	}

	cursor = w.NewCursor(node)
	cursor.Next()
	if !pos.ChangedAtCursor(cursor, baseline) {
		t.Fatalf("component should read as changed after GetMut past baseline")
	}
}
