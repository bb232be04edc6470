// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "fmt"

// ErrDuplicateID is returned by Graph.Insert when the caller supplies an
// id already present in the graph.
type ErrDuplicateID struct{ ID ID }

func (e *ErrDuplicateID) Error() string { return fmt.Sprintf("object: id %d already present", e.ID) }

// ErrUnknownID is returned when an operation names an id the graph has
// never seen or has already removed.
type ErrUnknownID struct{ ID ID }

func (e *ErrUnknownID) Error() string { return fmt.Sprintf("object: unknown id %d", e.ID) }

// NetworkDetacher is implemented by the network layer so Graph.Remove can
// cascade a removal without importing package network (which in turn
// would need to import package object for device ids — Graph takes the
// detacher as a narrow callback instead of creating that cycle).
type NetworkDetacher interface {
	DetachDevice(id ID)
}

// Graph is the process-wide, ordered `id → Object` store (spec.md §4.4):
// "A process-wide ordered mapping id → Object with monotonically-
// increasing id allocation."
type Graph struct {
	objects map[ID]*Object
	order   []ID
	nextID  ID
}

// NewGraph returns an empty graph; ids are allocated starting at 1 so 0
// can serve as a graph-wide "no object" sentinel.
func NewGraph() *Graph {
	return &Graph{objects: make(map[ID]*Object), nextID: 1}
}

// Insert adds obj under its own id, which must be unique. Use AllocateID
// to have the graph allocate one first.
func (g *Graph) Insert(obj *Object) error {
	if _, exists := g.objects[obj.id]; exists {
		return &ErrDuplicateID{ID: obj.id}
	}
	g.objects[obj.id] = obj
	g.order = append(g.order, obj.id)
	if obj.id >= g.nextID {
		g.nextID = obj.id + 1
	}
	return nil
}

// AllocateID returns the next unused id without inserting anything,
// letting a caller build an Object (which needs its id up front for
// Storage/CircuitHolder construction) before calling Insert.
func (g *Graph) AllocateID() ID {
	id := g.nextID
	g.nextID++
	return id
}

// Get returns the object with id, or nil if absent.
func (g *Graph) Get(id ID) *Object {
	return g.objects[id]
}

// Len returns the number of live objects.
func (g *Graph) Len() int { return len(g.objects) }

// Remove deletes id from the graph, cascading detachment from every slot
// and network that references it (spec.md §3, "Lifecycle": "destroyed by
// VM.remove(id) (cascade: also detach from all networks and from any
// slot it occupies)"). detacher may be nil if the caller has no network
// layer wired up yet (e.g. in isolated object-package tests).
func (g *Graph) Remove(id ID, detacher NetworkDetacher) error {
	if _, ok := g.objects[id]; !ok {
		return &ErrUnknownID{ID: id}
	}
	for _, other := range g.objects {
		if other.storage != nil {
			other.storage.ClearOccupant(id)
		}
		if other.device != nil {
			other.device.ClearPinsReferencing(id)
		}
		if other.circuitHolder != nil {
			other.circuitHolder.ClearPinsReferencing(id)
		}
		if other.human != nil {
			other.human.ClearEquipmentReferencing(id)
		}
	}
	if detacher != nil {
		detacher.DetachDevice(id)
	}
	delete(g.objects, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

// CircuitHolders returns every object carrying a CircuitHolder capability,
// in ascending id order (spec.md §4.7: "Holders are iterated in
// ascending id for determinism").
func (g *Graph) CircuitHolders() []*Object {
	var holders []*Object
	for _, id := range g.sortedIDs() {
		if o := g.objects[id]; o.circuitHolder != nil {
			holders = append(holders, o)
		}
	}
	return holders
}

// All returns every object in ascending id order.
func (g *Graph) All() []*Object {
	out := make([]*Object, 0, len(g.objects))
	for _, id := range g.sortedIDs() {
		out = append(out, g.objects[id])
	}
	return out
}

// sortedIDs returns live ids in ascending order. Insertion order (g.order)
// is already ascending except after a Remove followed by an Insert that
// reuses a lower gap, which AllocateID never does, so a plain copy is
// sufficient — still explicit rather than relying on map iteration order.
func (g *Graph) sortedIDs() []ID {
	ids := make([]ID, 0, len(g.order))
	for _, id := range g.order {
		if _, ok := g.objects[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
