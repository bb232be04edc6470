// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import "testing"

func TestLogicTypeRoundTrip(t *testing.T) {
	v, ok := ParseLogicType("Setting")
	if !ok || v != LogicSetting {
		t.Fatalf("ParseLogicType(Setting) = %v, %v", v, ok)
	}
	name, ok := LogicTypeName(v)
	if !ok || name != "Setting" {
		t.Fatalf("LogicTypeName(%v) = %q, %v", v, name, ok)
	}
}

func TestLogicTypeUnknownValueDoesNotRoundTrip(t *testing.T) {
	if _, ok := LogicTypeName(LogicType(9001)); ok {
		t.Fatal("expected an out-of-range LogicType value to fail round-trip")
	}
}

func TestComputedLogicFields(t *testing.T) {
	for _, v := range []LogicType{LogicPower, LogicError, LogicReferenceId, LogicPrefabHash, LogicNameHash, LogicLineNumber} {
		if !IsComputedLogicField(v) {
			t.Errorf("expected %v to be a computed field", v)
		}
	}
	if IsComputedLogicField(LogicSetting) {
		t.Error("Setting must not be a computed field")
	}
}

func TestSlotClassAliasInheritsCanonicalName(t *testing.T) {
	v, ok := ParseSlotClass("Backpack")
	if !ok || v != SlotClassBackpack {
		t.Fatalf("ParseSlotClass(Backpack) = %v, %v", v, ok)
	}
	canonical, ok := ParseSlotClass("Back")
	if !ok || canonical != v {
		t.Fatalf("alias and canonical name must resolve to the same value")
	}
}

func TestBatchModeTable(t *testing.T) {
	v, ok := ParseBatchMode("Sum")
	if !ok || v != BatchSum {
		t.Fatalf("ParseBatchMode(Sum) = %v, %v", v, ok)
	}
	if !IsValidBatchMode(BatchMaximum) {
		t.Error("BatchMaximum should be valid")
	}
}

func TestSlotLogicTypeComputedFields(t *testing.T) {
	if IsComputedSlotField(SlotClassField) {
		t.Error("Class is read from the slot itself, not computed from the occupant")
	}
	if !IsComputedSlotField(SlotQuantity) {
		t.Error("Quantity must be computed from the occupant")
	}
}
