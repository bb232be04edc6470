// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package orchestrator owns the object graph, the networks, and the id
// allocator, and routes a circuit holder's operand resolution through
// its pin table and its visible networks (spec.md §4.7, component C7).
// orchestrator.VM is the concrete implementation of vm.Environment.
package orchestrator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/parser"
	"github.com/ic10sim/ic10sim/internal/ic10log"
	"github.com/ic10sim/ic10sim/network"
	"github.com/ic10sim/ic10sim/object"
	icvm "github.com/ic10sim/ic10sim/vm"
)

// DefaultTickBudget is the per-tick instruction budget a circuit holder's
// IC receives when the caller does not override it (spec.md §4.6:
// "Default budget per tick: 128 instructions").
const DefaultTickBudget = 128

// VM owns every object and network in one simulated world (spec.md §4.7,
// "VM Orchestrator").
type VM struct {
	graph    *object.Graph
	journal  *object.Journal
	prefabDB *catalog.PrefabDB

	networks   map[uint32]*network.Network
	nextNetID  uint32

	TickBudget int
	Log        ic10log.Logger
}

// New builds an empty VM against a read-only prefab catalog (spec.md §6,
// "VM::new(prefab_db) → VM").
func New(prefabDB *catalog.PrefabDB) *VM {
	return &VM{
		graph:      object.NewGraph(),
		journal:    object.NewJournal(),
		prefabDB:   prefabDB,
		networks:   make(map[uint32]*network.Network),
		nextNetID:  1,
		TickBudget: DefaultTickBudget,
		Log:        ic10log.New("component", "orchestrator"),
	}
}

// AddObject instantiates a prefab by name and inserts it into the graph
// (spec.md §6: "add_object(template) → id"). An object gets a
// CircuitHolder facet automatically when its prefab declares a
// ProgrammableChip slot, and a Device facet when the prefab declares one;
// no Human facet is attached here — everything else follows the
// template exactly as object.New builds it.
func (v *VM) AddObject(prefabName string) (uint32, error) {
	entry, err := v.prefabDB.ByName(prefabName)
	if err != nil {
		return 0, &VMError{Kind: ErrUnknownID}
	}
	id := v.graph.AllocateID()
	obj := object.New(id, entry)
	if entry.HasSlots() {
		for _, s := range obj.Capabilities().Storage.Slots {
			if s.Class == catalog.SlotClassProgrammableChip {
				obj.AsCircuitHolder(object.NewCircuitHolder(id))
				break
			}
		}
	}
	attachDeviceIfDeclared(obj, entry)
	if err := v.graph.Insert(obj); err != nil {
		return 0, err
	}
	v.Log.Debug("object added", "id", id, "prefab", prefabName)
	return uint32(id), nil
}

// AddIntegratedCircuit inserts a bare chip object (no prefab backing —
// the "ItemIntegratedCircuit10" cartridge is built from a bare
// TemplateItem entry with no logic fields, plus an IntegratedCircuit
// facet) and houses it in
// holderID's chip slot.
func (v *VM) AddIntegratedCircuit(holderID uint32) (uint32, error) {
	holder := v.graph.Get(object.ID(holderID))
	if holder == nil || holder.Capabilities().CircuitHolder == nil {
		return 0, &VMError{Kind: ErrNotProgrammable, ID: holderID}
	}
	chipID := v.graph.AllocateID()
	chip := object.New(chipID, &catalog.PrefabEntry{Name: "ItemIntegratedCircuit10", Kind: catalog.TemplateItem})
	chip.AsIntegratedCircuit(icvm.NewIntegratedCircuit(holderID))
	if err := v.graph.Insert(chip); err != nil {
		return 0, err
	}
	holder.Capabilities().CircuitHolder.ChipSlot.Occupant = &object.Occupant{ID: chipID, Quantity: 1}
	return uint32(chipID), nil
}

// attachDeviceIfDeclared gives obj a Device facet whenever entry declares
// one, independent of which TemplateKind built the rest of obj — a chip
// housing is both Storage (the chip slot) and Device (its own network
// endpoints and pin table), a combination object.New's TemplateKind
// switch never builds in one pass (spec.md §4.2). Shared between
// AddObject and persistence.go's Load so a restored housing keeps its
// Device facet too.
func attachDeviceIfDeclared(obj *object.Object, entry *catalog.PrefabEntry) {
	if entry.Device != nil && obj.Capabilities().Device == nil {
		obj.AsDevice(object.NewDevice(entry.Device))
	}
}

// RemoveObject deletes id, cascading slot/network detachment (spec.md
// §6: "remove_object(id)").
func (v *VM) RemoveObject(id uint32) error {
	return v.graph.Remove(object.ID(id), networkDetacher{v})
}

// GetObject returns the raw object for inspection, or nil.
func (v *VM) GetObject(id uint32) *object.Object {
	return v.graph.Get(object.ID(id))
}

// networkDetacher adapts VM to object.NetworkDetacher without object
// importing package network (which would cycle back through object.ID).
type networkDetacher struct{ v *VM }

func (d networkDetacher) DetachDevice(id object.ID) {
	for _, n := range d.v.networks {
		n.Detach(uint32(id))
	}
}

// AddNetwork allocates a new, empty network (spec.md §6: "add_network()
// → id").
func (v *VM) AddNetwork() uint32 {
	id := v.nextNetID
	v.nextNetID++
	v.networks[id] = network.New(id)
	return id
}

// GetNetwork returns the network with id, or nil.
func (v *VM) GetNetwork(id uint32) *network.Network {
	return v.networks[id]
}

// Connect wires deviceID's connection slot into networkID with the given
// edge kind (spec.md §6: "connect(device_id, connection_index,
// network_id)").
func (v *VM) Connect(deviceID uint32, connectionIndex int, networkID uint32, kind network.ConnectionKind) error {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return &VMError{Kind: ErrUnknownID, ID: deviceID}
	}
	dev := obj.Capabilities().Device
	if dev == nil {
		return &VMError{Kind: ErrNotADevice, ID: deviceID}
	}
	net, ok := v.networks[networkID]
	if !ok {
		return &VMError{Kind: ErrInvalidNetwork, ID: networkID}
	}
	if !dev.Connect(connectionIndex, networkID) {
		return &VMError{Kind: ErrInvalidNetwork, ID: networkID}
	}
	net.Attach(deviceID, kind)
	return nil
}

// VisibleDevices returns the union of every device id visible to fromID
// over its data networks (spec.md §6: "visible_devices(from_id) →
// [id]").
func (v *VM) VisibleDevices(fromID uint32) []uint32 {
	seen := make(map[uint32]bool)
	var out []uint32
	for _, netID := range v.deviceNetworkIDs(fromID) {
		net := v.networks[netID]
		for _, id := range net.DataVisible(fromID) {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func (v *VM) deviceNetworkIDs(deviceID uint32) []uint32 {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil || obj.Capabilities().Device == nil {
		return nil
	}
	return obj.Capabilities().Device.NetworkIDs()
}

// SetCode parses src and, on success, loads it into holderID's housed IC
// (spec.md §6: "set_code(ic_id, source) → Result<(), ParseError[]>").
func (v *VM) SetCode(holderID uint32, src string) []*parser.ParseError {
	prog, errs := parser.Parse(fmt.Sprintf("ic%d", holderID), src)
	if len(errs) > 0 {
		return errs
	}
	ic := v.chipOf(holderID)
	if ic == nil {
		return []*parser.ParseError{{Msg: fmt.Sprintf("holder %d has no housed chip", holderID)}}
	}
	ic.Load(prog)
	return nil
}

// chipOf returns the IntegratedCircuit housed by holderID, or nil.
func (v *VM) chipOf(holderID uint32) *icvm.IntegratedCircuit {
	holder := v.graph.Get(object.ID(holderID))
	if holder == nil {
		return nil
	}
	ch := holder.Capabilities().CircuitHolder
	if ch == nil || ch.ChipSlot.Occupant == nil {
		return nil
	}
	chip := v.graph.Get(ch.ChipSlot.Occupant.ID)
	if chip == nil {
		return nil
	}
	return chip.Capabilities().IntegratedCircuit
}

// StepIC executes exactly one instruction on holderID's chip (spec.md
// §6: "step_ic(ic_id) → Result").
func (v *VM) StepIC(holderID uint32) (*icvm.LineError, error) {
	ic := v.chipOf(holderID)
	if ic == nil {
		return nil, &VMError{Kind: ErrNotProgrammable, ID: holderID}
	}
	_, lineErr := ic.Run(v, 1)
	return lineErr, nil
}

// Tick runs every circuit holder's chip up to the configured instruction
// budget, in ascending id order (spec.md §4.7: "Holders are iterated in
// ascending id for determinism"). dtTicks is how many scheduling quanta
// elapsed since the last Tick — SleepRemaining is decremented in real
// ticks-to-seconds units via ticksPerSecond.
func (v *VM) Tick(dtTicks int, ticksPerSecond float64) {
	id := uuid.New()
	log := v.Log.New("tick", id.String())
	var executed int
	for _, holder := range v.graph.CircuitHolders() {
		ch := holder.Capabilities().CircuitHolder
		chipID, ok := ch.Chip()
		if !ok {
			continue
		}
		chipObj := v.graph.Get(chipID)
		if chipObj == nil {
			continue
		}
		ic := chipObj.Capabilities().IntegratedCircuit
		if ic == nil {
			continue
		}
		if ic.SleepRemaining > 0 {
			ic.SleepRemaining -= float64(dtTicks) / ticksPerSecond
			if ic.SleepRemaining < 0 {
				ic.SleepRemaining = 0
			}
			continue
		}
		n, lineErr := ic.Run(v, v.TickBudget)
		executed += n
		if lineErr != nil {
			log.Warn("chip fault", "holder", holder.ID(), "err", lineErr)
		}
	}
	log.Info("tick complete", "ticks", dtTicks, "holders", len(v.graph.CircuitHolders()), "instructions", executed)
}

// GetLogic and SetLogic (environment.go) double as the host-facing
// embedding API entry points (spec.md §6: "get_logic(id, field) → f64",
// "set_logic(id, field, value) → Result"); *ICError implements error so
// a host caller can use the return value either way. SetLogic's force
// parameter is orchestrator-internal — host callers always pass false.
