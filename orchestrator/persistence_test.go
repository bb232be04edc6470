// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/network"
	"github.com/ic10sim/ic10sim/object"
)

// Save/Load must preserve program behavior bit-for-bit (spec.md §6): a
// chip reloaded mid-execution keeps running its restored program from
// exactly where it left off, not from a freshly (re-)compiled one.
func TestPersistenceRoundTripMidExecutionState(t *testing.T) {
	v, holderID := newHousingVM(t)
	v.TickBudget = 2 // stop partway through a 4-instruction program
	mustSetCode(t, v, holderID, "move r0 1\nadd r0 r0 r0\nadd r0 r0 r0\nadd r0 r0 r0\n")
	v.Tick(1, 10)

	ic := v.chipOf(holderID)
	assert.Equal(t, 2.0, ic.Registers[0], "the move and one add executed before the tick budget ran out")
	assert.Equal(t, 2, ic.IP)
	assert.Equal(t, icStatusString(t, v, holderID), "Yielded")

	data, err := v.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	v2 := New(testPrefabDB())
	v2.TickBudget = 128
	if err := v2.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ic2 := v2.chipOf(holderID)
	assert.Equal(t, ic.Registers, ic2.Registers, "restored registers")
	assert.Equal(t, ic.IP, ic2.IP, "restored ip")
	assert.Equal(t, ic.Status, ic2.Status, "restored status")

	// Finish both VMs the same way; a reloaded chip that lost its program
	// would fault on an out-of-range ip instead of reaching 8.
	v.TickBudget = 128
	v.Tick(1, 10)
	v2.Tick(1, 10)
	assert.Equal(t, 8.0, register(v, holderID, 0))
	assert.Equal(t, 8.0, register(v2, holderID, 0))
}

func icStatusString(t *testing.T, v *VM, holderID uint32) string {
	t.Helper()
	return v.chipOf(holderID).Status.String()
}

// Device wiring (pins, network membership, channel values) must also
// survive a round trip, since restored chip code keeps resolving device
// operands through it.
func TestPersistenceRoundTripPreservesDeviceWiring(t *testing.T) {
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

	netID := v.AddNetwork()
	if err := v.Connect(holderID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(holder): %v", err)
	}
	if err := v.Connect(sensorID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(sensor): %v", err)
	}

	mustSetCode(t, v, holderID, "alias sensor d0\nl r0 sensor Setting\n")

	data, err := v.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	v2 := New(testPrefabDB())
	if err := v2.Load(data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v2.Tick(1, 10)
	assert.Equal(t, 42.0, register(v2, holderID, 0), "restored pin resolves through alias")
	assert.Contains(t, v2.VisibleDevices(holderID), sensorID, "restored network membership")
}
