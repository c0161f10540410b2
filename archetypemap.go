package loom

import "github.com/TheBitDrifter/mask"

// archetypeMap owns every archetype in a World, de-duplicated by
// signature, and caches the add/remove transition graph between them so
// repeated Insert/Remove calls on the same ComponentID never recompute a
// destination archetype from scratch. Grounded on the teacher's
// storage.go (archetypes{nextID, asSlice, idsGroupedByMask}) for the
// de-dup map shape and delaneyj-arche/ecs/archetype.go's archetypeNode
// (toAdd/toRemove) for the transition edges.
type archetypeMap struct {
	list        []*archetype
	bySignature map[mask.Mask]ArchetypeID
	addEdges    []map[ComponentID]ArchetypeID
	removeEdges []map[ComponentID]ArchetypeID
}

func newArchetypeMap() *archetypeMap {
	return &archetypeMap{
		bySignature: make(map[mask.Mask]ArchetypeID),
	}
}

func signatureMaskOf(ids []ComponentID) mask.Mask {
	var m mask.Mask
	for _, id := range ids {
		m.Mark(uint32(id))
	}
	return m
}

// getOrCreate returns the archetype for the given (not necessarily sorted)
// signature, creating it if no archetype with that exact component set
// exists yet. created is true only when a brand new archetype was built.
func (m *archetypeMap) getOrCreate(ids []ComponentID) (arch *archetype, created bool) {
	key := signatureMaskOf(ids)
	if id, ok := m.bySignature[key]; ok {
		return m.list[id], false
	}

	id := ArchetypeID(len(m.list))
	a := newArchetypeFrom(id, ids)
	m.list = append(m.list, a)
	m.bySignature[key] = id
	m.addEdges = append(m.addEdges, make(map[ComponentID]ArchetypeID))
	m.removeEdges = append(m.removeEdges, make(map[ComponentID]ArchetypeID))
	return a, true
}

func (m *archetypeMap) get(id ArchetypeID) *archetype {
	return m.list[id]
}

// getPair returns both archetypes for disjoint mutable access. The caller
// must never pass equal IDs: a and b alias the same *archetype in that
// case, which would violate the no-double-mutable-alias discipline the
// migration algorithm depends on.
func (m *archetypeMap) getPair(a, b ArchetypeID) (*archetype, *archetype) {
	if a == b {
		panicInvariant("getPair called with identical archetype IDs", a)
	}
	return m.list[a], m.list[b]
}

func (m *archetypeMap) findEdgeAdd(from ArchetypeID, comp ComponentID) (ArchetypeID, bool) {
	id, ok := m.addEdges[from][comp]
	return id, ok
}

func (m *archetypeMap) createEdgeAdd(from ArchetypeID, comp ComponentID, to ArchetypeID) {
	m.addEdges[from][comp] = to
}

func (m *archetypeMap) findEdgeRemove(from ArchetypeID, comp ComponentID) (ArchetypeID, bool) {
	id, ok := m.removeEdges[from][comp]
	return id, ok
}

func (m *archetypeMap) createEdgeRemove(from ArchetypeID, comp ComponentID, to ArchetypeID) {
	m.removeEdges[from][comp] = to
}

// archetypeWithAdded resolves (creating and caching the edge if needed)
// the archetype reached by adding comp to from's signature.
func (m *archetypeMap) archetypeWithAdded(from ArchetypeID, comp ComponentID) (*archetype, ArchetypeID) {
	if to, ok := m.findEdgeAdd(from, comp); ok {
		return m.list[to], to
	}
	fromArch := m.list[from]
	newSig := append(append([]ComponentID(nil), fromArch.signature...), comp)
	arch, _ := m.getOrCreate(newSig)
	m.createEdgeAdd(from, comp, arch.id)
	m.createEdgeRemove(arch.id, comp, from)
	return arch, arch.id
}

// archetypeWithRemoved resolves (creating and caching the edge if needed)
// the archetype reached by removing comp from from's signature.
func (m *archetypeMap) archetypeWithRemoved(from ArchetypeID, comp ComponentID) (*archetype, ArchetypeID) {
	if to, ok := m.findEdgeRemove(from, comp); ok {
		return m.list[to], to
	}
	fromArch := m.list[from]
	newSig := make([]ComponentID, 0, len(fromArch.signature))
	for _, id := range fromArch.signature {
		if id != comp {
			newSig = append(newSig, id)
		}
	}
	arch, _ := m.getOrCreate(newSig)
	m.createEdgeRemove(from, comp, arch.id)
	m.createEdgeAdd(arch.id, comp, from)
	return arch, arch.id
}
