// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
	"github.com/ic10sim/ic10sim/ic10/parser"
	"github.com/ic10sim/ic10sim/network"
	"github.com/ic10sim/ic10sim/object"
	icvm "github.com/ic10sim/ic10sim/vm"
)

// snapshot is the "frozen" wire shape a VM round-trips through (spec.md
// §6: "Object graph and networks are serializable to/from JSON using the
// 'frozen' shapes: sets become ordered arrays; object-ref fields become
// ids"). encoding/json is used directly rather than through a
// third-party codec: the wire format is pinned to JSON by spec.md itself,
// so no serialization library choice applies here.
type snapshot struct {
	NextNetID uint32             `json:"next_net_id"`
	Objects   []objectSnapshot   `json:"objects"`
	Networks  []networkSnapshot  `json:"networks"`
}

type objectSnapshot struct {
	ID            uint32              `json:"id"`
	Prefab        string              `json:"prefab"`
	Name          string              `json:"name"`
	Storage       *storageSnapshot    `json:"storage,omitempty"`
	Logicable     map[uint16]float64  `json:"logicable,omitempty"`
	MemoryCells   []float64           `json:"memory,omitempty"`
	Device        *deviceSnapshot     `json:"device,omitempty"`
	Item          *itemSnapshot       `json:"item,omitempty"`
	Human         *humanSnapshot      `json:"human,omitempty"`
	CircuitHolder *circuitSnapshot    `json:"circuit_holder,omitempty"`
	IC            *icSnapshot         `json:"integrated_circuit,omitempty"`
}

type occupantSnapshot struct {
	ID       uint32  `json:"id"`
	Quantity uint32  `json:"quantity"`
	Damage   float64 `json:"damage"`
}

type slotSnapshot struct {
	Occupant *occupantSnapshot `json:"occupant,omitempty"`
}

type storageSnapshot struct {
	Slots []slotSnapshot `json:"slots"`
}

type deviceSnapshot struct {
	ConnNetIDs  []uint32                 `json:"conn_net_ids"`
	ConnActive  []bool                   `json:"conn_active"`
	Pins        [6]uint32                `json:"pins"`
	PinSet      [6]bool                  `json:"pin_set"`
	Mode        uint32                   `json:"mode"`
	Lock        bool                     `json:"lock"`
	Open        bool                     `json:"open"`
	On          bool                     `json:"on"`
	Activate    bool                     `json:"activate"`
}

type itemSnapshot struct {
	MaxQuantity uint32             `json:"max_quantity"`
	Quantity    uint32             `json:"quantity"`
	Damage      float64            `json:"damage"`
	Reagents    map[int32]float64  `json:"reagents,omitempty"`
}

type needSnapshot struct {
	Value float64 `json:"value"`
}

type humanSnapshot struct {
	Hydration   needSnapshot `json:"hydration"`
	Nutrition   needSnapshot `json:"nutrition"`
	Oxygenation needSnapshot `json:"oxygenation"`
	Mood        needSnapshot `json:"mood"`
	Hygiene     needSnapshot `json:"hygiene"`
}

type circuitSnapshot struct {
	ChipOccupant *occupantSnapshot `json:"chip_occupant,omitempty"`
	Pins         [6]uint32         `json:"pins"`
	PinSet       [6]bool           `json:"pin_set"`
}

type icSnapshot struct {
	Registers      [18]float64        `json:"registers"`
	Stack          []float64          `json:"stack"`
	IP             int                `json:"ip"`
	Status         uint8              `json:"status"`
	SleepRemaining float64            `json:"sleep_remaining"`
	Defines        map[string]float64 `json:"defines,omitempty"`
	Aliases        map[string]operandDTO `json:"aliases,omitempty"`
	Source         string             `json:"source"`
}

type networkSnapshot struct {
	ID           uint32    `json:"id"`
	DataDevices  []uint32  `json:"data_devices"`
	PowerDevices []uint32  `json:"power_devices"`
	Channels     [8]float64 `json:"channels"`
}

// operandDTO is the frozen shape of an alias binding (spec.md §4.3: alias
// may bind either a register or a device operand). Only the variants
// `alias` can legally bind are represented.
type operandDTO struct {
	Kind        string `json:"kind"` // "register" | "device_self" | "device_numbered" | "device_indirect"
	Indirection int    `json:"indirection,omitempty"`
	Index       int    `json:"index,omitempty"`
}

func operandToDTO(op ast.Operand) (operandDTO, bool) {
	switch v := op.(type) {
	case *ast.Register:
		return operandDTO{Kind: "register", Indirection: v.Indirection, Index: int(v.Index)}, true
	case *ast.Device:
		switch ref := v.Ref.(type) {
		case ast.DeviceSelf:
			return operandDTO{Kind: "device_self"}, true
		case ast.DeviceNumbered:
			return operandDTO{Kind: "device_numbered", Index: ref.Index}, true
		case ast.DeviceIndirect:
			return operandDTO{Kind: "device_indirect", Indirection: ref.Indirection, Index: int(ref.Index)}, true
		}
	}
	return operandDTO{}, false
}

func dtoToOperand(dto operandDTO) ast.Operand {
	switch dto.Kind {
	case "register":
		return &ast.Register{Indirection: dto.Indirection, Index: uint8(dto.Index)}
	case "device_self":
		return &ast.Device{Ref: ast.DeviceSelf{}}
	case "device_numbered":
		return &ast.Device{Ref: ast.DeviceNumbered{Index: dto.Index}}
	case "device_indirect":
		return &ast.Device{Ref: ast.DeviceIndirect{Indirection: dto.Indirection, Index: uint8(dto.Index)}}
	default:
		return nil
	}
}

// Save serializes the whole VM (object graph, networks, every housed
// chip's full execution state and loaded source) to the frozen JSON shape
// (spec.md §6, "Persistence").
func (v *VM) Save() ([]byte, error) {
	snap := snapshot{NextNetID: v.nextNetID}
	for _, obj := range v.graph.All() {
		snap.Objects = append(snap.Objects, objectToSnapshot(obj))
	}
	for id, net := range v.networks {
		snap.Networks = append(snap.Networks, networkToSnapshot(id, net))
	}
	return json.MarshalIndent(snap, "", "  ")
}

func objectToSnapshot(obj *object.Object) objectSnapshot {
	caps := obj.Capabilities()
	os := objectSnapshot{
		ID:     uint32(obj.ID()),
		Prefab: obj.PrefabName(),
		Name:   obj.Name(),
	}
	if caps.Storage != nil {
		ss := &storageSnapshot{Slots: make([]slotSnapshot, caps.Storage.Len())}
		for i := 0; i < caps.Storage.Len(); i++ {
			slot := caps.Storage.Slot(i)
			if slot.Occupant != nil {
				ss.Slots[i].Occupant = &occupantSnapshot{
					ID:       uint32(slot.Occupant.ID),
					Quantity: slot.Occupant.Quantity,
					Damage:   slot.Occupant.Damage,
				}
			}
		}
		os.Storage = ss
	}
	if caps.Logicable != nil {
		fields := make(map[uint16]float64)
		for _, lt := range allDeclaredLogicTypes(caps.Logicable) {
			fields[uint16(lt)] = caps.Logicable.Get(lt)
		}
		if len(fields) > 0 {
			os.Logicable = fields
		}
	}
	if caps.MemoryWritable != nil {
		cells := make([]float64, caps.MemoryWritable.Len())
		for i := range cells {
			cells[i], _ = caps.MemoryWritable.Read(i)
		}
		os.MemoryCells = cells
	}
	if caps.Device != nil {
		ds := &deviceSnapshot{Mode: caps.Device.Mode, Lock: caps.Device.Lock, Open: caps.Device.Open, On: caps.Device.On, Activate: caps.Device.Activate}
		for i := 0; i < caps.Device.ConnectionCount(); i++ {
			ds.ConnNetIDs = append(ds.ConnNetIDs, caps.Device.Connections[i].NetworkID)
			ds.ConnActive = append(ds.ConnActive, caps.Device.Connections[i].Connected)
		}
		for i := 0; i < 6; i++ {
			if id, ok := caps.Device.Pin(i); ok {
				ds.Pins[i] = uint32(id)
				ds.PinSet[i] = true
			}
		}
		os.Device = ds
	}
	if caps.Item != nil {
		is := &itemSnapshot{MaxQuantity: caps.Item.MaxQuantity, Quantity: caps.Item.Quantity, Damage: caps.Item.Damage}
		if len(caps.Item.Reagents) > 0 {
			is.Reagents = caps.Item.Reagents
		}
		os.Item = is
	}
	if caps.Human != nil {
		os.Human = &humanSnapshot{
			Hydration:   needSnapshot{caps.Human.Hydration.Value},
			Nutrition:   needSnapshot{caps.Human.Nutrition.Value},
			Oxygenation: needSnapshot{caps.Human.Oxygenation.Value},
			Mood:        needSnapshot{caps.Human.Mood.Value},
			Hygiene:     needSnapshot{caps.Human.Hygiene.Value},
		}
	}
	if caps.CircuitHolder != nil {
		cs := &circuitSnapshot{}
		if chipID, ok := caps.CircuitHolder.Chip(); ok {
			cs.ChipOccupant = &occupantSnapshot{ID: uint32(chipID), Quantity: 1}
		}
		for i := 0; i < 6; i++ {
			if id, ok := caps.CircuitHolder.Pin(i); ok {
				cs.Pins[i] = uint32(id)
				cs.PinSet[i] = true
			}
		}
		os.CircuitHolder = cs
	}
	if caps.IntegratedCircuit != nil {
		ic := caps.IntegratedCircuit
		is := &icSnapshot{
			Registers:      ic.Registers,
			IP:             ic.IP,
			Status:         uint8(ic.Status),
			SleepRemaining: ic.SleepRemaining,
			Defines:        ic.Defines,
		}
		is.Stack = append(is.Stack, ic.Stack[:]...)
		if ic.Program != nil {
			is.Source = ic.Program.String()
		}
		if len(ic.Aliases) > 0 {
			is.Aliases = make(map[string]operandDTO, len(ic.Aliases))
			for name, op := range ic.Aliases {
				if dto, ok := operandToDTO(op); ok {
					is.Aliases[name] = dto
				}
			}
		}
		os.IC = is
	}
	return os
}

// allDeclaredLogicTypes walks the closed LogicType enum and returns every
// member Logicable declares, since the capability type keeps its field
// map unexported. Small and fixed-size enough (spec.md §3's LogicField
// table) that a linear scan per object on save is not a concern.
func allDeclaredLogicTypes(lg *object.Logicable) []catalog.LogicType {
	var out []catalog.LogicType
	for v := catalog.LogicType(0); v < catalog.LogicType(512); v++ {
		if !catalog.IsValidLogicType(v) {
			continue
		}
		if lg.Declared(v) {
			out = append(out, v)
		}
	}
	return out
}

func networkToSnapshot(id uint32, net *network.Network) networkSnapshot {
	ns := networkSnapshot{ID: id}
	for _, d := range net.AllDataDevices() {
		ns.DataDevices = append(ns.DataDevices, d)
	}
	for i := 0; i < 8; i++ {
		ns.Channels[i], _ = net.GetChannel(i)
	}
	ns.PowerDevices = powerDeviceIDs(net)
	return ns
}

// powerDeviceIDs lists every member of net's power set, including devices
// with a power edge and no data edge.
func powerDeviceIDs(net *network.Network) []uint32 {
	out := make([]uint32, 0, net.PowerDevices.Cardinality())
	for v := range net.PowerDevices.Iter() {
		out = append(out, v.(uint32))
	}
	return out
}

// Load replaces the VM's entire state from data produced by Save. The
// prefab database used to build the original objects must already be
// loaded into v (spec.md §6: the VM "loads [the prefab document] at
// startup" once, independent of any save/load cycle).
func (v *VM) Load(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("orchestrator: decode snapshot: %w", err)
	}

	g := object.NewGraph()
	for _, os := range snap.Objects {
		entry, err := v.prefabDB.ByName(os.Prefab)
		if err != nil {
			return fmt.Errorf("orchestrator: restoring object %d: %w", os.ID, err)
		}
		obj := object.New(object.ID(os.ID), entry)
		attachDeviceIfDeclared(obj, entry)
		if os.Name != "" {
			obj.SetName(os.Name)
		}
		if err := applySnapshotFacets(obj, os); err != nil {
			return fmt.Errorf("orchestrator: restoring object %d: %w", os.ID, err)
		}
		if err := g.Insert(obj); err != nil {
			return err
		}
	}

	networks := make(map[uint32]*network.Network)
	for _, ns := range snap.Networks {
		net := network.New(ns.ID)
		for _, d := range ns.DataDevices {
			net.Attach(d, network.Data)
		}
		for _, d := range ns.PowerDevices {
			net.Attach(d, network.Power)
		}
		for i, ch := range ns.Channels {
			net.SetChannel(i, ch)
		}
		networks[ns.ID] = net
	}

	for _, holder := range g.CircuitHolders() {
		chipID, ok := holder.Capabilities().CircuitHolder.Chip()
		if !ok {
			continue
		}
		if chip := g.Get(chipID); chip != nil {
			if ic := chip.Capabilities().IntegratedCircuit; ic != nil {
				ic.HolderID = uint32(holder.ID())
			}
		}
	}

	v.graph = g
	v.journal = object.NewJournal()
	v.networks = networks
	v.nextNetID = snap.NextNetID
	return nil
}

func applySnapshotFacets(obj *object.Object, os objectSnapshot) error {
	caps := obj.Capabilities()
	if os.Storage != nil && caps.Storage != nil {
		for i, ss := range os.Storage.Slots {
			slot := caps.Storage.Slot(i)
			if slot == nil || ss.Occupant == nil {
				continue
			}
			slot.Occupant = &object.Occupant{ID: object.ID(ss.Occupant.ID), Quantity: ss.Occupant.Quantity, Damage: ss.Occupant.Damage}
		}
	}
	if os.Logicable != nil && caps.Logicable != nil {
		for raw, val := range os.Logicable {
			caps.Logicable.Set(catalog.LogicType(raw), val, true)
		}
	}
	if os.MemoryCells != nil && caps.MemoryWritable != nil {
		for i, val := range os.MemoryCells {
			caps.MemoryWritable.Write(i, val)
		}
	}
	if os.Device != nil && caps.Device != nil {
		caps.Device.Mode, caps.Device.Lock, caps.Device.Open = os.Device.Mode, os.Device.Lock, os.Device.Open
		caps.Device.On, caps.Device.Activate = os.Device.On, os.Device.Activate
		for i := range os.Device.ConnNetIDs {
			if i < caps.Device.ConnectionCount() && os.Device.ConnActive[i] {
				caps.Device.Connect(i, os.Device.ConnNetIDs[i])
			}
		}
		for i := 0; i < 6; i++ {
			if os.Device.PinSet[i] {
				caps.Device.SetPin(i, object.ID(os.Device.Pins[i]))
			}
		}
	}
	if os.Item != nil && caps.Item != nil {
		caps.Item.Quantity, caps.Item.Damage = os.Item.Quantity, os.Item.Damage
		if os.Item.Reagents != nil {
			caps.Item.Reagents = os.Item.Reagents
		}
	}
	if os.Human != nil && caps.Human != nil {
		caps.Human.Hydration.Value = os.Human.Hydration.Value
		caps.Human.Nutrition.Value = os.Human.Nutrition.Value
		caps.Human.Oxygenation.Value = os.Human.Oxygenation.Value
		caps.Human.Mood.Value = os.Human.Mood.Value
		caps.Human.Hygiene.Value = os.Human.Hygiene.Value
	}
	if os.CircuitHolder != nil {
		if caps.CircuitHolder == nil {
			obj.AsCircuitHolder(object.NewCircuitHolder(obj.ID()))
			caps = obj.Capabilities()
		}
		if os.CircuitHolder.ChipOccupant != nil {
			caps.CircuitHolder.ChipSlot.Occupant = &object.Occupant{ID: object.ID(os.CircuitHolder.ChipOccupant.ID), Quantity: 1}
		}
		for i := 0; i < 6; i++ {
			if os.CircuitHolder.PinSet[i] {
				caps.CircuitHolder.SetPin(i, object.ID(os.CircuitHolder.Pins[i]))
			}
		}
	}
	if os.IC != nil {
		// Load a program the same way Run sees it, but without routing
		// through IntegratedCircuit.Load: that resets registers, stack, ip,
		// aliases, and defines to give a freshly compiled program a clean
		// slate, which would destroy the very state this restores. The
		// saved source is reparsed directly and installed on the Program
		// field so every other field below lands on top of it intact
		// (spec.md §6 round-trip: "same register values, same stack
		// contents, same ip, same field values").
		ic := icvm.NewIntegratedCircuit(0)
		if os.IC.Source != "" {
			prog, errs := parser.Parse(fmt.Sprintf("ic%d", os.ID), os.IC.Source)
			if len(errs) > 0 {
				return fmt.Errorf("reparsing saved source: %v", errs[0])
			}
			ic.Program = prog
		}
		ic.Registers = os.IC.Registers
		copy(ic.Stack[:], os.IC.Stack)
		ic.IP = os.IC.IP
		ic.Status = icvm.Status(os.IC.Status)
		ic.SleepRemaining = os.IC.SleepRemaining
		if os.IC.Defines != nil {
			ic.Defines = os.IC.Defines
		}
		if os.IC.Aliases != nil {
			ic.Aliases = make(map[string]ast.Operand, len(os.IC.Aliases))
			for name, dto := range os.IC.Aliases {
				if op := dtoToOperand(dto); op != nil {
					ic.Aliases[name] = op
				}
			}
		}
		obj.AsIntegratedCircuit(ic)
	}
	return nil
}
