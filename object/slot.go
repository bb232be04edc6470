// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// Occupant records the id placed in a Slot plus the per-occupancy state
// that travels with it (spec.md §3, "Slot": "occupant: Option<{id,
// quantity, damage, …}>"). Quantity/Damage mirror the occupant's Item
// facet at the moment it was placed so a slot can answer SlotLogicType
// queries without dereferencing the occupant on every read.
type Occupant struct {
	ID       ID
	Quantity uint32
	Damage   float64
}

// Slot is one fixed storage position on a Storage-capable object
// (spec.md §3, "Slot").
type Slot struct {
	Parent         ID
	Index          int
	Name           string
	Class          catalog.SlotClass
	ReadableLogic  []catalog.SlotLogicType
	WriteableLogic []catalog.SlotLogicType
	Occupant       *Occupant
}

// Accepts reports whether an item of the given slot class may be placed
// here: only when itemClass equals the slot's class. A None class on
// either side gets no special treatment.
func (s *Slot) Accepts(itemClass catalog.SlotClass) bool {
	return s.Class == itemClass
}

// CanRead reports whether field is in this slot's readable set, or is one
// of the always-computed fields forwarded from the occupant
// (spec.md §4.4).
func (s *Slot) CanRead(field catalog.SlotLogicType) bool {
	if catalog.IsComputedSlotField(field) {
		return true
	}
	for _, f := range s.ReadableLogic {
		if f == field {
			return true
		}
	}
	return false
}

// CanWrite reports whether field is in this slot's writeable set.
func (s *Slot) CanWrite(field catalog.SlotLogicType) bool {
	for _, f := range s.WriteableLogic {
		if f == field {
			return true
		}
	}
	return false
}

// Clear empties the slot, used both by explicit instructions and by the
// graph's remove-object cascade (spec.md §3, "Removing an object from the
// graph clears any slot that references it").
func (s *Slot) Clear() { s.Occupant = nil }

// Storage is the ordered-sequence-of-Slot capability (spec.md §3,
// "Storage").
type Storage struct {
	Slots []*Slot
}

// NewStorage builds a Storage facet from a prefab's slot templates.
func NewStorage(owner ID, templates []catalog.SlotTemplate) *Storage {
	s := &Storage{Slots: make([]*Slot, len(templates))}
	for i, t := range templates {
		s.Slots[i] = &Slot{
			Parent:         owner,
			Index:          i,
			Name:           t.Name,
			Class:          t.Class,
			ReadableLogic:  t.ReadableLogic,
			WriteableLogic: t.WriteableLogic,
		}
	}
	return s
}

// Slot returns the slot at index, or nil if out of range.
func (s *Storage) Slot(index int) *Slot {
	if index < 0 || index >= len(s.Slots) {
		return nil
	}
	return s.Slots[index]
}

// Len returns the number of slots.
func (s *Storage) Len() int { return len(s.Slots) }

// ClearOccupant empties every slot currently holding id, used by the
// graph's remove-object cascade.
func (s *Storage) ClearOccupant(id ID) {
	for _, slot := range s.Slots {
		if slot.Occupant != nil && slot.Occupant.ID == id {
			slot.Clear()
		}
	}
}
