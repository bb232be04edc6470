// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// Journal centralizes every write to a Logicable, MemoryWritable, or
// Storage facet behind one set of methods (spec.md §5: "ICs do not
// observe each others' partial updates" — held by running each chip's
// instruction budget to completion, one chip at a time, rather than by
// interleaving writes that would need an undo log to isolate).
type Journal struct{}

// NewJournal returns a Journal.
func NewJournal() *Journal {
	return &Journal{}
}

// SetLogic writes field on id's Logicable facet.
func (j *Journal) SetLogic(g *Graph, id ID, field catalog.LogicType, value float64, force bool) bool {
	obj := g.Get(id)
	if obj == nil || obj.logicable == nil {
		return false
	}
	return obj.logicable.Set(field, value, force)
}

// SetMemory writes address on id's MemoryWritable facet.
func (j *Journal) SetMemory(g *Graph, id ID, address int, value float64) bool {
	obj := g.Get(id)
	if obj == nil || obj.memoryWritable == nil {
		return false
	}
	return obj.memoryWritable.Write(address, value)
}

// SetSlotOccupant assigns occ to slot index on id's Storage facet.
func (j *Journal) SetSlotOccupant(g *Graph, id ID, index int, occ *Occupant) bool {
	obj := g.Get(id)
	if obj == nil || obj.storage == nil {
		return false
	}
	slot := obj.storage.Slot(index)
	if slot == nil {
		return false
	}
	slot.Occupant = occ
	return true
}
