// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import (
	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/vm"
)

// IntegratedCircuit is the chip-execution capability. The interpreter
// itself lives in package vm (registers, stack, ip, aliases, defines,
// dispatch) so an object's IntegratedCircuit facet is just that engine;
// the object graph only needs to know an object IS a chip, not how it
// executes.
type IntegratedCircuit = vm.IntegratedCircuit

// CircuitHolder is the housing capability (spec.md §3, "CircuitHolder"):
// holds exactly one IC via a designated slot, owns a six-element pin
// table, and is the object the orchestrator's Environment methods
// (ResolveDevice, GetLogic, …) address by HolderID.
type CircuitHolder struct {
	ChipSlot *Slot
	Pins     [pinCount]*ID
}

// NewCircuitHolder builds a CircuitHolder with an empty programmable-chip
// slot and an empty pin table.
func NewCircuitHolder(owner ID) *CircuitHolder {
	return &CircuitHolder{
		ChipSlot: &Slot{Parent: owner, Index: 0, Class: catalog.SlotClassProgrammableChip},
	}
}

// Chip returns the id of the housed IC object, if any.
func (c *CircuitHolder) Chip() (ID, bool) {
	if c.ChipSlot.Occupant == nil {
		return 0, false
	}
	return c.ChipSlot.Occupant.ID, true
}

// Pin returns the object id wired into pin, or (0, false) if empty or out
// of range.
func (c *CircuitHolder) Pin(pin int) (ID, bool) {
	if pin < 0 || pin >= pinCount || c.Pins[pin] == nil {
		return 0, false
	}
	return *c.Pins[pin], true
}

// SetPin wires id into pin; pin must be 0..5.
func (c *CircuitHolder) SetPin(pin int, id ID) bool {
	if pin < 0 || pin >= pinCount {
		return false
	}
	v := id
	c.Pins[pin] = &v
	return true
}

// ClearPinsReferencing removes id from every pin that references it,
// used by the graph's remove-object cascade.
func (c *CircuitHolder) ClearPinsReferencing(id ID) {
	for i, p := range c.Pins {
		if p != nil && *p == id {
			c.Pins[i] = nil
		}
	}
}
