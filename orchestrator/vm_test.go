// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package orchestrator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/network"
	"github.com/ic10sim/ic10sim/object"
)

// testPrefabDB returns a small, hand-authored catalog covering a chip
// housing (storage + device, per vm.go's AddObject dual-facet wiring) and
// a bare logicable sensor, mirroring the structureEntry/slottedEntry
// fixture style object/graph_test.go uses but round-tripped through
// catalog.LoadPrefabDB the way a real catalog document would be.
func testPrefabDB() *catalog.PrefabDB {
	// StructureCircuitHousing carries both a Slots list and a Device
	// template; object.New's TemplateKind switch only builds one facet
	// per Kind (TemplateStructureSlots here, for the chip slot), and
	// AddObject attaches the Device facet independently (spec.md §4.2:
	// a housing is both Storage and Device).
	housing := &catalog.PrefabEntry{
		Name: "StructureCircuitHousing",
		Kind: catalog.TemplateStructureSlots,
		Slots: []catalog.SlotTemplate{
			{Name: "Chip", Class: catalog.SlotClassProgrammableChip},
		},
		Device: &catalog.DeviceTemplate{Connections: 1, HasPins: true},
	}
	sensor := &catalog.PrefabEntry{
		Name: "StructureGasSensor",
		Kind: catalog.TemplateStructureLogicDevice,
		LogicFields: []catalog.LogicFieldTemplate{
			{Field: catalog.LogicSetting, Access: "RW"},
		},
		Device: &catalog.DeviceTemplate{Connections: 1, HasPins: false},
	}
	return buildPrefabDB(map[string]*catalog.PrefabEntry{
		"StructureCircuitHousing": housing,
		"StructureGasSensor":      sensor,
	})
}

// buildPrefabDB round-trips hand-authored entries through the same JSON
// shape catalog.LoadPrefabDB expects, instead of reaching into its
// unexported byHash/byName maps directly.
func buildPrefabDB(entries map[string]*catalog.PrefabEntry) *catalog.PrefabDB {
	doc := struct {
		Prefabs map[string]*catalog.PrefabEntry `json:"prefabs"`
	}{Prefabs: entries}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	db, err := catalog.LoadPrefabDB(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return db
}

// newHousingVM builds a VM with one chip housing (with a housed,
// unprogrammed IC) ready for SetCode, returning the holder id.
func newHousingVM(t *testing.T) (*VM, uint32) {
	t.Helper()
	v := New(testPrefabDB())
	holderID, err := v.AddObject("StructureCircuitHousing")
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if _, err := v.AddIntegratedCircuit(holderID); err != nil {
		t.Fatalf("AddIntegratedCircuit: %v", err)
	}
	return v, holderID
}

func mustSetCode(t *testing.T, v *VM, holderID uint32, src string) {
	t.Helper()
	if errs := v.SetCode(holderID, src); len(errs) > 0 {
		for _, e := range errs {
			t.Logf("parse error: %v", e)
		}
		t.Fatalf("SetCode: %d parse error(s)", len(errs))
	}
}

func register(v *VM, holderID uint32, index int) float64 {
	return v.chipOf(holderID).Registers[index]
}

// Scenario: move + add.
func TestScenarioMoveAndAdd(t *testing.T) {
	v, holderID := newHousingVM(t)
	mustSetCode(t, v, holderID, "move r0 2\nmove r1 3\nadd r2 r0 r1\n")
	v.Tick(1, 10)
	assert.Equal(t, 5.0, register(v, holderID, 2))
}

// Scenario: label jump.
func TestScenarioLabelJump(t *testing.T) {
	v, holderID := newHousingVM(t)
	mustSetCode(t, v, holderID, strings.Join([]string{
		"move r0 0",
		"jal skip",
		"move r0 99",
		"skip:",
		"move r1 1",
	}, "\n"))
	v.Tick(1, 10)
	assert.Equal(t, 0.0, register(v, holderID, 0), "move r0 99 should have been skipped")
	assert.Equal(t, 1.0, register(v, holderID, 1))
}

// Scenario: alias + device read. A sensor pinned into d0 with Setting=42
// should be readable through an alias bound to d0.
func TestScenarioAliasDeviceRead(t *testing.T) {
	v, holderID := newHousingVM(t)

	sensorID, err := v.AddObject("StructureGasSensor")
	if err != nil {
		t.Fatalf("AddObject(sensor): %v", err)
	}
	if err := v.SetLogic(sensorID, catalog.LogicSetting, 42, false); err != nil {
		t.Fatalf("SetLogic: %v", err)
	}

	holder := v.GetObject(holderID)
	holder.Capabilities().CircuitHolder.SetPin(0, object.ID(sensorID))

	mustSetCode(t, v, holderID, strings.Join([]string{
		"alias sensor d0",
		"l r0 sensor Setting",
	}, "\n"))
	v.Tick(1, 10)
	assert.Equal(t, 42.0, register(v, holderID, 0))
}

// Scenario: stack push/pop roundtrip.
func TestScenarioStackRoundtrip(t *testing.T) {
	v, holderID := newHousingVM(t)
	mustSetCode(t, v, holderID, strings.Join([]string{
		"move r0 7",
		"push r0",
		"move r0 0",
		"pop r1",
	}, "\n"))
	v.Tick(1, 10)
	assert.Equal(t, 7.0, register(v, holderID, 1), "popped value")
}

// Scenario: batch read average across two data-visible sensors.
func TestScenarioBatchReadAverage(t *testing.T) {
	v, holderID := newHousingVM(t)

	netID := v.AddNetwork()
	holder := v.GetObject(holderID)
	if holder.Capabilities().Device == nil {
		t.Fatalf("housing has no Device facet to connect to a network")
	}
	if err := v.Connect(holderID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(holder): %v", err)
	}

	aID, err := v.AddObject("StructureGasSensor")
	if err != nil {
		t.Fatalf("AddObject(a): %v", err)
	}
	bID, err := v.AddObject("StructureGasSensor")
	if err != nil {
		t.Fatalf("AddObject(b): %v", err)
	}
	if err := v.Connect(aID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(a): %v", err)
	}
	if err := v.Connect(bID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(b): %v", err)
	}
	if err := v.SetLogic(aID, catalog.LogicSetting, 10, false); err != nil {
		t.Fatalf("SetLogic(a): %v", err)
	}
	if err := v.SetLogic(bID, catalog.LogicSetting, 20, false); err != nil {
		t.Fatalf("SetLogic(b): %v", err)
	}

	mustSetCode(t, v, holderID, fmt.Sprintf("lb r0 HASH(%q) Setting Average\n", "StructureGasSensor"))
	v.Tick(1, 10)
	assert.Equal(t, 15.0, register(v, holderID, 0), "average of 10 and 20")
}

// Scenario: error surface. Reading through an unset device pin should
// fault the chip and surface through the computed Error field.
func TestScenarioErrorSurface(t *testing.T) {
	v, holderID := newHousingVM(t)
	mustSetCode(t, v, holderID, "l r0 d0 Setting\n")
	v.Tick(1, 10)

	ic := v.chipOf(holderID)
	assert.Equal(t, "Errored", ic.Status.String())
	errVal, icErr := v.GetLogic(holderID, catalog.LogicError)
	assert.Nil(t, icErr)
	assert.Equal(t, 1.0, errVal)
}

// Invariant: every data network channel starts at NaN.
func TestInvariantChannelsInitNaN(t *testing.T) {
	v := New(testPrefabDB())
	netID := v.AddNetwork()
	net := v.GetNetwork(netID)
	ch, err := net.GetChannel(0)
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(ch))
}

// Invariant: network data visibility is symmetric for two connected
// devices, and excludes a device from its own visible set.
func TestInvariantNetworkVisibilitySymmetric(t *testing.T) {
	v := New(testPrefabDB())
	netID := v.AddNetwork()

	aID, err := v.AddObject("StructureGasSensor")
	if err != nil {
		t.Fatal(err)
	}
	bID, err := v.AddObject("StructureGasSensor")
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Connect(aID, 0, netID, network.Data); err != nil {
		t.Fatal(err)
	}
	if err := v.Connect(bID, 0, netID, network.Data); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []uint32{bID}, v.VisibleDevices(aID))
	assert.Equal(t, []uint32{aID}, v.VisibleDevices(bID))
}

// Invariant: Tick is deterministic — two independently built VMs running
// the same program converge on identical register state.
func TestInvariantTickDeterminism(t *testing.T) {
	const src = "move r0 1\nadd r0 r0 r0\nadd r0 r0 r0\nadd r0 r0 r0\n"
	v1, h1 := newHousingVM(t)
	v2, h2 := newHousingVM(t)
	mustSetCode(t, v1, h1, src)
	mustSetCode(t, v2, h2, src)
	for i := 0; i < 3; i++ {
		v1.Tick(1, 10)
		v2.Tick(1, 10)
	}
	assert.Equal(t, register(v1, h1, 0), register(v2, h2, 0))
}
