package loom

import "testing"

type DeltaClock struct {
	Seconds float64
}

func TestResourceInsertGetRemove(t *testing.T) {
	w := NewWorld()

	if HasResource[DeltaClock](w) {
		t.Fatalf("resource should not exist before Insert")
	}

	InsertResource(w, DeltaClock{Seconds: 0.016})

	clock, ok := GetResource[DeltaClock](w)
	if !ok {
		t.Fatalf("expected DeltaClock resource to be present")
	}
	if clock.Seconds != 0.016 {
		t.Fatalf("unexpected DeltaClock value: %+v", *clock)
	}

	RemoveResource[DeltaClock](w)
	if HasResource[DeltaClock](w) {
		t.Fatalf("resource should be gone after RemoveResource")
	}
}

func TestResourceMutWritesBack(t *testing.T) {
	w := NewWorld()
	InsertResource(w, DeltaClock{Seconds: 1})

	ok := GetResourceMut(w, func(c *DeltaClock) {
		c.Seconds += 1
	})
	if !ok {
		t.Fatalf("GetResourceMut should find the resource")
	}

	clock, _ := GetResource[DeltaClock](w)
	if clock.Seconds != 2 {
		t.Fatalf("expected mutation to persist, got %v", clock.Seconds)
	}
}

func TestResourceInsertOverwrites(t *testing.T) {
	w := NewWorld()
	InsertResource(w, DeltaClock{Seconds: 1})
	InsertResource(w, DeltaClock{Seconds: 2})

	clock, _ := GetResource[DeltaClock](w)
	if clock.Seconds != 2 {
		t.Fatalf("second InsertResource should overwrite the first, got %v", clock.Seconds)
	}
}
