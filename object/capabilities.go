// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

// Capabilities is the explicit capability-view of an Object (spec.md §3,
// "Capabilities" and Design Notes §9): every field is either a borrowed
// pointer to the facet the object carries, or nil. Callers switch on
// which fields are non-nil instead of type-asserting the Object itself,
// so adding a new capability never touches existing call sites.
type Capabilities struct {
	Storage           *Storage
	Logicable         *Logicable
	MemoryReadable    *Memory
	MemoryWritable    *Memory
	Device            *Device
	Item              *Item
	Human             *Human
	CircuitHolder     *CircuitHolder
	IntegratedCircuit *IntegratedCircuit
}

// HasStorage reports whether the object exposes an ordered slot sequence.
func (c Capabilities) HasStorage() bool { return c.Storage != nil }

// HasLogicable reports whether the object exposes typed logic fields.
func (c Capabilities) HasLogicable() bool { return c.Logicable != nil }

// HasDevice reports whether the object is network/pin addressable.
func (c Capabilities) HasDevice() bool { return c.Device != nil }

// HasItem reports whether the object can occupy an item slot.
func (c Capabilities) HasItem() bool { return c.Item != nil }

// HasHuman reports whether the object tracks survival-need stats.
func (c Capabilities) HasHuman() bool { return c.Human != nil }

// HasCircuitHolder reports whether the object houses a programmable chip.
func (c Capabilities) HasCircuitHolder() bool { return c.CircuitHolder != nil }

// HasIntegratedCircuit reports whether the object is itself a chip.
func (c Capabilities) HasIntegratedCircuit() bool { return c.IntegratedCircuit != nil }
