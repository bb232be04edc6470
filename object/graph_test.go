// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import (
	"testing"

	"github.com/ic10sim/ic10sim/catalog"
)

func structureEntry(name string) *catalog.PrefabEntry {
	return &catalog.PrefabEntry{Name: name, Hash: catalog.HashString(name), Kind: catalog.TemplateStructure}
}

func slottedEntry(name string, slots []catalog.SlotTemplate) *catalog.PrefabEntry {
	return &catalog.PrefabEntry{Name: name, Hash: catalog.HashString(name), Kind: catalog.TemplateStructureSlots, Slots: slots}
}

func TestGraphInsertAndGet(t *testing.T) {
	g := NewGraph()
	id := g.AllocateID()
	obj := New(id, structureEntry("StructureWall"))
	if err := g.Insert(obj); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := g.Get(id); got != obj {
		t.Fatalf("Get returned %v, want %v", got, obj)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
}

func TestGraphInsertDuplicateID(t *testing.T) {
	g := NewGraph()
	id := g.AllocateID()
	if err := g.Insert(New(id, structureEntry("A"))); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := g.Insert(New(id, structureEntry("B")))
	if _, ok := err.(*ErrDuplicateID); !ok {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestGraphRemoveCascadesSlotOccupant(t *testing.T) {
	g := NewGraph()
	holderID := g.AllocateID()
	holder := New(holderID, slottedEntry("Locker", []catalog.SlotTemplate{{Name: "Slot0", Class: catalog.SlotClassOre}}))
	if err := g.Insert(holder); err != nil {
		t.Fatal(err)
	}

	itemID := g.AllocateID()
	item := New(itemID, structureEntry("ItemIronOre"))
	if err := g.Insert(item); err != nil {
		t.Fatal(err)
	}

	holder.storage.Slot(0).Occupant = &Occupant{ID: itemID, Quantity: 1}

	if err := g.Remove(itemID, nil); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if occ := holder.storage.Slot(0).Occupant; occ != nil {
		t.Fatalf("expected slot cleared after occupant removed, got %v", occ)
	}
	if g.Get(itemID) != nil {
		t.Fatalf("expected removed object to be gone from the graph")
	}
}

func TestGraphRemoveUnknownID(t *testing.T) {
	g := NewGraph()
	err := g.Remove(999, nil)
	if _, ok := err.(*ErrUnknownID); !ok {
		t.Fatalf("expected ErrUnknownID, got %v", err)
	}
}

func TestCircuitHoldersOrderedAscending(t *testing.T) {
	g := NewGraph()

	var ids []ID
	for i := 0; i < 3; i++ {
		id := g.AllocateID()
		ids = append(ids, id)
		obj := New(id, structureEntry("StructureCircuitHousing"))
		obj.AsCircuitHolder(NewCircuitHolder(id))
		if err := g.Insert(obj); err != nil {
			t.Fatal(err)
		}
	}

	holders := g.CircuitHolders()
	if len(holders) != 3 {
		t.Fatalf("got %d holders, want 3", len(holders))
	}
	for i, h := range holders {
		if h.ID() != ids[i] {
			t.Fatalf("holder[%d].ID() = %d, want %d (ascending order)", i, h.ID(), ids[i])
		}
	}
}

func TestObjectCapabilitiesReflectTemplate(t *testing.T) {
	g := NewGraph()
	id := g.AllocateID()
	obj := New(id, slottedEntry("Locker", []catalog.SlotTemplate{{Name: "Slot0"}}))
	caps := obj.Capabilities()
	if !caps.HasStorage() {
		t.Fatal("expected Storage capability from a StructureSlots template")
	}
	if caps.HasLogicable() || caps.HasDevice() || caps.HasItem() {
		t.Fatal("expected no other capabilities from a bare StructureSlots template")
	}
}

func TestPrefabHashMatchesNameHash(t *testing.T) {
	obj := New(1, structureEntry("StructureWall"))
	if obj.PrefabHash() != catalog.HashString("StructureWall") {
		t.Fatalf("PrefabHash() = %d, want %d", obj.PrefabHash(), catalog.HashString("StructureWall"))
	}
	obj.SetName("MyWall")
	if obj.NameHash() != catalog.HashString("MyWall") {
		t.Fatalf("NameHash() = %d, want %d", obj.NameHash(), catalog.HashString("MyWall"))
	}
}
