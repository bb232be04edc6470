// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// EquipSlot names one of a Human's eight fixed equipment positions
// (spec.md §3, "Human": "eight named equipment slots").
type EquipSlot uint8

const (
	EquipHelmet EquipSlot = iota
	EquipSuit
	EquipBack
	EquipToolBelt
	EquipGlasses
	EquipUniform
	EquipAppliance1
	EquipAppliance2
	equipSlotCount
)

// Need is one survival stat tracked on a Human: a current value plus the
// thresholds at which it starts warning the player and becomes critical
// (spec.md §3, "Human": "each with a max, warning, critical threshold").
type Need struct {
	Value     float64
	Max       float64
	Warning   float64
	Critical  float64
}

// IsWarning reports whether the need has crossed its warning threshold.
func (n Need) IsWarning() bool { return n.Value <= n.Warning }

// IsCritical reports whether the need has crossed its critical threshold.
func (n Need) IsCritical() bool { return n.Value <= n.Critical }

// Human is the survival-stat capability attached to player-avatar objects
// (spec.md §3, "Human").
type Human struct {
	Hydration   Need
	Nutrition   Need
	Oxygenation Need
	Mood        Need
	Hygiene     Need

	Equipment [equipSlotCount]*Slot
}

// defaultNeed returns a Need at full value with the game's standard
// 100/30/10 max/warning/critical thresholds.
func defaultNeed() Need {
	return Need{Value: 100, Max: 100, Warning: 30, Critical: 10}
}

// NewHuman builds a Human with every need at full and an empty equipment
// loadout. Equipment slot classes mirror the game's fixed avatar rig.
func NewHuman(owner ID) *Human {
	h := &Human{
		Hydration:   defaultNeed(),
		Nutrition:   defaultNeed(),
		Oxygenation: defaultNeed(),
		Mood:        defaultNeed(),
		Hygiene:     defaultNeed(),
	}
	classes := [equipSlotCount]catalog.SlotClass{
		EquipHelmet:     catalog.SlotClassHelmet,
		EquipSuit:       catalog.SlotClassSuit,
		EquipBack:       catalog.SlotClassBackpack,
		EquipToolBelt:   catalog.SlotClassToolBelt,
		EquipGlasses:    catalog.SlotClassGlasses,
		EquipUniform:    catalog.SlotClassSuit,
		EquipAppliance1: catalog.SlotClassAppliance,
		EquipAppliance2: catalog.SlotClassAppliance,
	}
	for i := range h.Equipment {
		h.Equipment[i] = &Slot{Parent: owner, Index: i, Class: classes[i]}
	}
	return h
}

// Equip returns the slot for a named equipment position.
func (h *Human) Equip(slot EquipSlot) *Slot {
	if int(slot) >= len(h.Equipment) {
		return nil
	}
	return h.Equipment[slot]
}

// ClearEquipmentReferencing empties any equipment slot occupied by id,
// used by the graph's remove-object cascade.
func (h *Human) ClearEquipmentReferencing(id ID) {
	for _, s := range h.Equipment {
		if s.Occupant != nil && s.Occupant.ID == id {
			s.Clear()
		}
	}
}
