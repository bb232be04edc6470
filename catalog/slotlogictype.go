// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

// SlotLogicType names a field addressable on a single Slot (spec.md §4.4,
// "Slot logic").
type SlotLogicType uint16

const (
	SlotOccupied SlotLogicType = iota
	SlotOccupantHash
	SlotQuantity
	SlotDamage
	SlotPrefabHash
	SlotClassField
	SlotSortingClassField
	SlotReferenceId
	SlotLineNumber
	SlotMaximum
)

var slotLogicTypeTable = newEnumTable("SlotLogicType", []EnumEntry{
	{Name: "Occupied", Value: uint16(SlotOccupied)},
	{Name: "OccupantHash", Value: uint16(SlotOccupantHash)},
	{Name: "Quantity", Value: uint16(SlotQuantity)},
	{Name: "Damage", Value: uint16(SlotDamage)},
	{Name: "PrefabHash", Value: uint16(SlotPrefabHash)},
	{Name: "Class", Value: uint16(SlotClassField)},
	{Name: "SortingClass", Value: uint16(SlotSortingClassField)},
	{Name: "ReferenceId", Value: uint16(SlotReferenceId)},
	{Name: "LineNumber", Value: uint16(SlotLineNumber)},
	{Name: "Maximum", Value: uint16(SlotMaximum)},
})

// ParseSlotLogicType resolves a case-sensitive SlotLogicType literal.
func ParseSlotLogicType(name string) (SlotLogicType, bool) {
	v, ok := slotLogicTypeTable.Parse(name)
	return SlotLogicType(v), ok
}

// SlotLogicTypeName returns the canonical name of a SlotLogicType value.
func SlotLogicTypeName(v SlotLogicType) (string, bool) {
	return slotLogicTypeTable.Name(uint16(v))
}

// IsValidSlotLogicType reports whether v names a known SlotLogicType member.
func IsValidSlotLogicType(v SlotLogicType) bool {
	return slotLogicTypeTable.Contains(uint16(v))
}

// computedSlotFields mirror spec.md §4.4's "forward PrefabHash, Quantity,
// Damage, SortingClass, Occupied, OccupantHash, ReferenceId from the
// slot/occupant; LineNumber on a ProgrammableChip slot forwards to the
// chip's IC" — all of these are derived, never independently stored.
var computedSlotFields = map[SlotLogicType]bool{
	SlotOccupied:          true,
	SlotOccupantHash:      true,
	SlotQuantity:          true,
	SlotDamage:            true,
	SlotPrefabHash:        true,
	SlotSortingClassField: true,
	SlotReferenceId:       true,
	SlotLineNumber:        true,
}

// IsComputedSlotField reports whether a SlotLogicType is derived rather
// than independently stored.
func IsComputedSlotField(v SlotLogicType) bool {
	return computedSlotFields[v]
}
