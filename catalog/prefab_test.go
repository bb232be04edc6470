// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import (
	"strings"
	"testing"
)

const fixtureDoc = `{
  "prefabs": {
    "StructureCircuitHousing": {
      "name": "StructureCircuitHousing",
      "display_name": "IC Housing",
      "kind": "StructureLogicDeviceMemory",
      "logic_fields": [
        {"field": "Setting", "access": "RW"},
        {"field": "Error", "access": "R"}
      ],
      "device": {"connections": 4, "has_pins": true},
      "memory_size": 512
    },
    "ItemIntegratedCircuit10": {
      "name": "ItemIntegratedCircuit10",
      "display_name": "IC10 Chip",
      "kind": "Item",
      "item": {"slot_class": "ProgrammableChip", "sorting_class": "Default", "max_quantity": 1}
    }
  }
}`

func TestLoadPrefabDBByHashAndName(t *testing.T) {
	db, err := LoadPrefabDB(strings.NewReader(fixtureDoc))
	if err != nil {
		t.Fatalf("LoadPrefabDB: %v", err)
	}
	if db.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", db.Len())
	}

	byName, err := db.ByName("StructureCircuitHousing")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}
	if byName.Hash != -128473777 {
		t.Errorf("expected computed hash -128473777, got %d", byName.Hash)
	}
	if !byName.HasDevice() || !byName.HasMemory() || !byName.HasLogic() {
		t.Error("StructureCircuitHousing should report device, memory, and logic facets")
	}

	byHash, err := db.ByHash(-744098481)
	if err != nil {
		t.Fatalf("ByHash: %v", err)
	}
	if byHash.Name != "ItemIntegratedCircuit10" {
		t.Errorf("expected ItemIntegratedCircuit10, got %q", byHash.Name)
	}
	if !byHash.HasItem() || byHash.HasLogic() {
		t.Error("ItemIntegratedCircuit10 should be an Item template with no logic facet")
	}
}

func TestPrefabDBUnknownLookups(t *testing.T) {
	db, err := LoadPrefabDB(strings.NewReader(fixtureDoc))
	if err != nil {
		t.Fatalf("LoadPrefabDB: %v", err)
	}
	if _, err := db.ByName("NotAPrefab"); err == nil {
		t.Error("expected ByName to fail for an unknown name")
	}
	if _, err := db.ByHash(12345); err == nil {
		t.Error("expected ByHash to fail for an unknown hash")
	}
}
