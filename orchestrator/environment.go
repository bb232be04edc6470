// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package orchestrator

import (
	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
	"github.com/ic10sim/ic10sim/object"
	icvm "github.com/ic10sim/ic10sim/vm"
)

// VM implements icvm.Environment: every device read/write and operand
// resolution an executing chip needs crosses this boundary instead of
// the IC holding a live borrow into the object graph (spec.md Design
// Notes §9, "message passing through the VM orchestrator").
var _ icvm.Environment = (*VM)(nil)

// ResolveDevice turns a device reference as seen from holderID's pin
// table into a concrete object id (spec.md §4.6, "Operand resolution:
// Device").
func (v *VM) ResolveDevice(holderID uint32, ref ast.DeviceRef, connection *int) (uint32, *icvm.ICError) {
	switch r := ref.(type) {
	case ast.DeviceSelf:
		return holderID, nil
	case ast.DeviceNumbered:
		if r.Index < 0 || r.Index > 5 {
			return 0, &icvm.ICError{Kind: icvm.ErrDeviceIndexOutOfRange}
		}
		holder := v.graph.Get(object.ID(holderID))
		if holder == nil {
			return 0, &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
		}
		ch := holder.Capabilities().CircuitHolder
		if ch == nil {
			return 0, &icvm.ICError{Kind: icvm.ErrDeviceNotSet}
		}
		id, ok := ch.Pin(r.Index)
		if !ok {
			return 0, &icvm.ICError{Kind: icvm.ErrDeviceNotSet}
		}
		return uint32(id), nil
	default:
		return 0, &icvm.ICError{Kind: icvm.ErrDeviceIndexOutOfRange}
	}
}

// computeLogicField resolves the handful of LogicType fields derived
// from other graph/chip state rather than stored on the object itself
// (spec.md §4.4: "reads computed fields first").
func (v *VM) computeLogicField(obj *object.Object, field catalog.LogicType) (float64, bool) {
	switch field {
	case catalog.LogicReferenceId:
		return float64(obj.ID()), true
	case catalog.LogicPrefabHash:
		return float64(obj.PrefabHash()), true
	case catalog.LogicNameHash:
		return float64(obj.NameHash()), true
	case catalog.LogicPower:
		dev := obj.Capabilities().Device
		if dev == nil {
			return 0, true
		}
		for _, netID := range dev.NetworkIDs() {
			if net := v.networks[netID]; net != nil && net.HasPower(uint32(obj.ID())) {
				return 1, true
			}
		}
		return 0, true
	case catalog.LogicError:
		ch := obj.Capabilities().CircuitHolder
		if ch == nil {
			return 0, false
		}
		chipID, ok := ch.Chip()
		if !ok {
			return 0, true
		}
		chip := v.graph.Get(chipID)
		if chip == nil || chip.Capabilities().IntegratedCircuit == nil {
			return 0, true
		}
		if chip.Capabilities().IntegratedCircuit.Status == icvm.StatusErrored {
			return 1, true
		}
		return 0, true
	case catalog.LogicLineNumber:
		ch := obj.Capabilities().CircuitHolder
		if ch == nil {
			return 0, false
		}
		chipID, ok := ch.Chip()
		if !ok {
			return 0, true
		}
		chip := v.graph.Get(chipID)
		if chip == nil || chip.Capabilities().IntegratedCircuit == nil {
			return 0, true
		}
		return float64(chip.Capabilities().IntegratedCircuit.IP), true
	default:
		return 0, false
	}
}

// GetLogic reads field on deviceID (spec.md §4.4, "get(field)").
func (v *VM) GetLogic(deviceID uint32, field catalog.LogicType) (float64, *icvm.ICError) {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	if val, ok := v.computeLogicField(obj, field); ok {
		return val, nil
	}
	lg := obj.Capabilities().Logicable
	if lg == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	if !lg.Declared(field) {
		return 0, &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	if !lg.CanRead(field) {
		return 0, &icvm.ICError{Kind: icvm.ErrWriteOnlyField}
	}
	return lg.Get(field), nil
}

// isComputedLogicField mirrors catalog.IsComputedLogicField but at the
// orchestrator layer, where "computed" additionally means "force-writes
// are accepted as a no-op" (spec.md §3, "LogicField": force lets the
// interpreter itself record internal state like Error through the same
// call it would use for a stored field).
func isComputedLogicField(field catalog.LogicType) bool {
	return catalog.IsComputedLogicField(field)
}

// SetLogic writes field on deviceID (spec.md §4.4, "set(field, value,
// force)"). force lets internal callers (the IC's own fault handler)
// acknowledge a computed field without erroring; the value is discarded
// since computed fields are recomputed on every read.
func (v *VM) SetLogic(deviceID uint32, field catalog.LogicType, value float64, force bool) *icvm.ICError {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	if isComputedLogicField(field) {
		if !force {
			return &icvm.ICError{Kind: icvm.ErrReadOnlyField}
		}
		return nil
	}
	lg := obj.Capabilities().Logicable
	if lg == nil {
		return &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	if !force && lg.Declared(field) && !lg.CanWrite(field) {
		return &icvm.ICError{Kind: icvm.ErrReadOnlyField}
	}
	if !v.journal.SetLogic(v.graph, object.ID(deviceID), field, value, force) {
		return &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	return nil
}

// computeSlotField resolves the SlotLogicType fields forwarded from a
// slot's occupant (spec.md §4.4, "Slot logic").
func (v *VM) computeSlotField(slot *object.Slot, field catalog.SlotLogicType) (float64, bool) {
	switch field {
	case catalog.SlotOccupied:
		if slot.Occupant != nil {
			return 1, true
		}
		return 0, true
	case catalog.SlotOccupantHash, catalog.SlotPrefabHash:
		if slot.Occupant == nil {
			return 0, true
		}
		if occ := v.graph.Get(slot.Occupant.ID); occ != nil {
			return float64(occ.PrefabHash()), true
		}
		return 0, true
	case catalog.SlotQuantity, catalog.SlotMaximum:
		if slot.Occupant == nil {
			return 0, true
		}
		if field == catalog.SlotQuantity {
			return float64(slot.Occupant.Quantity), true
		}
		if occ := v.graph.Get(slot.Occupant.ID); occ != nil && occ.Capabilities().Item != nil {
			return float64(occ.Capabilities().Item.MaxQuantity), true
		}
		return 0, true
	case catalog.SlotDamage:
		if slot.Occupant == nil {
			return 0, true
		}
		return slot.Occupant.Damage, true
	case catalog.SlotSortingClassField:
		if slot.Occupant == nil {
			return 0, true
		}
		if occ := v.graph.Get(slot.Occupant.ID); occ != nil && occ.Capabilities().Item != nil {
			return float64(occ.Capabilities().Item.SortingClass), true
		}
		return 0, true
	case catalog.SlotReferenceId:
		if slot.Occupant == nil {
			return 0, true
		}
		return float64(slot.Occupant.ID), true
	case catalog.SlotClassField:
		return float64(slot.Class), true
	case catalog.SlotLineNumber:
		if slot.Class != catalog.SlotClassProgrammableChip || slot.Occupant == nil {
			return 0, true
		}
		chip := v.graph.Get(slot.Occupant.ID)
		if chip == nil || chip.Capabilities().IntegratedCircuit == nil {
			return 0, true
		}
		return float64(chip.Capabilities().IntegratedCircuit.IP), true
	default:
		return 0, false
	}
}

// GetSlotLogic reads field on deviceID's slot (spec.md §4.4, "Slot
// logic").
func (v *VM) GetSlotLogic(deviceID uint32, slotIndex int, field catalog.SlotLogicType) (float64, *icvm.ICError) {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	st := obj.Capabilities().Storage
	if st == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	slot := st.Slot(slotIndex)
	if slot == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	if val, ok := v.computeSlotField(slot, field); ok {
		return val, nil
	}
	if !slot.CanRead(field) {
		return 0, &icvm.ICError{Kind: icvm.ErrReadOnlyField}
	}
	return 0, nil
}

// SetSlotLogic writes field on deviceID's slot. Only Quantity and Damage
// are independently stored per-occupancy state (spec.md §3, "Slot":
// "occupant: Option<{id, quantity, damage, …}>") — every other
// SlotLogicType is derived and rejects a direct write.
func (v *VM) SetSlotLogic(deviceID uint32, slotIndex int, field catalog.SlotLogicType, value float64) *icvm.ICError {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	st := obj.Capabilities().Storage
	if st == nil {
		return &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	slot := st.Slot(slotIndex)
	if slot == nil {
		return &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	if slot.Occupant == nil {
		return &icvm.ICError{Kind: icvm.ErrSlotNotOccupied}
	}
	if !slot.CanWrite(field) {
		return &icvm.ICError{Kind: icvm.ErrReadOnlyField}
	}
	occ := *slot.Occupant
	switch field {
	case catalog.SlotQuantity:
		occ.Quantity = uint32(value)
	case catalog.SlotDamage:
		occ.Damage = value
	default:
		return &icvm.ICError{Kind: icvm.ErrReadOnlyField}
	}
	v.journal.SetSlotOccupant(v.graph, object.ID(deviceID), slotIndex, &occ)
	return nil
}

// batchTargets returns every object visible to holderID that matches
// prefabHash (and, when nameHash is non-nil, also matches that name
// hash), the shared filter logic behind every lb/sb/lbn/sbn/lbs/sbs
// opcode family (spec.md §4.5, "Cross-network batch ops").
func (v *VM) batchTargets(holderID uint32, prefabHash int32, nameHash *int32) []*object.Object {
	var out []*object.Object
	for _, id := range v.VisibleDevices(holderID) {
		obj := v.graph.Get(object.ID(id))
		if obj == nil || obj.PrefabHash() != prefabHash {
			continue
		}
		if nameHash != nil && obj.NameHash() != *nameHash {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// foldBatch applies mode across values, per spec.md §4.5.
func foldBatch(values []float64, mode catalog.BatchMode) float64 {
	if len(values) == 0 {
		return 0
	}
	switch mode {
	case catalog.BatchSum:
		var sum float64
		for _, x := range values {
			sum += x
		}
		return sum
	case catalog.BatchMinimum:
		m := values[0]
		for _, x := range values[1:] {
			if x < m {
				m = x
			}
		}
		return m
	case catalog.BatchMaximum:
		m := values[0]
		for _, x := range values[1:] {
			if x > m {
				m = x
			}
		}
		return m
	default: // BatchAverage
		var sum float64
		for _, x := range values {
			sum += x
		}
		return sum / float64(len(values))
	}
}

// BatchReadLogic folds field across every data-visible device matching
// prefabHash/nameHash (spec.md §4.5).
func (v *VM) BatchReadLogic(holderID uint32, prefabHash int32, nameHash *int32, field catalog.LogicType, mode catalog.BatchMode) (float64, *icvm.ICError) {
	var values []float64
	for _, obj := range v.batchTargets(holderID, prefabHash, nameHash) {
		if val, ok := v.computeLogicField(obj, field); ok {
			values = append(values, val)
			continue
		}
		if lg := obj.Capabilities().Logicable; lg != nil && lg.CanRead(field) {
			values = append(values, lg.Get(field))
		}
	}
	return foldBatch(values, mode), nil
}

// BatchWriteLogic writes value to field on every data-visible device
// matching prefabHash/nameHash (spec.md §4.5).
func (v *VM) BatchWriteLogic(holderID uint32, prefabHash int32, nameHash *int32, field catalog.LogicType, value float64) *icvm.ICError {
	for _, obj := range v.batchTargets(holderID, prefabHash, nameHash) {
		if lg := obj.Capabilities().Logicable; lg != nil && lg.CanWrite(field) {
			v.journal.SetLogic(v.graph, obj.ID(), field, value, false)
		}
	}
	return nil
}

// BatchReadSlotLogic folds field across slotIndex on every data-visible
// device matching prefabHash (spec.md §4.5).
func (v *VM) BatchReadSlotLogic(holderID uint32, prefabHash int32, slotIndex int, field catalog.SlotLogicType, mode catalog.BatchMode) (float64, *icvm.ICError) {
	var values []float64
	for _, obj := range v.batchTargets(holderID, prefabHash, nil) {
		st := obj.Capabilities().Storage
		if st == nil {
			continue
		}
		slot := st.Slot(slotIndex)
		if slot == nil {
			continue
		}
		if val, ok := v.computeSlotField(slot, field); ok {
			values = append(values, val)
		}
	}
	return foldBatch(values, mode), nil
}

// BatchWriteSlotLogic writes value to slotIndex's field on every
// data-visible device matching prefabHash (spec.md §4.5).
func (v *VM) BatchWriteSlotLogic(holderID uint32, prefabHash int32, slotIndex int, field catalog.SlotLogicType, value float64) *icvm.ICError {
	for _, obj := range v.batchTargets(holderID, prefabHash, nil) {
		v.SetSlotLogic(uint32(obj.ID()), slotIndex, field, value)
	}
	return nil
}

// GetReagent reads a reagent amount on deviceID (spec.md §2, C1,
// ReagentMode). Only `Contents` is backed by live state; `Required` and
// `Recipe` depend on a recipe database outside this VM's scope (spec.md
// §1 Non-goals: "represented only to the depth required for logic-field
// reads to return meaningful values") and read as 0.
func (v *VM) GetReagent(deviceID uint32, mode catalog.ReagentMode, reagentHash int32) (float64, *icvm.ICError) {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	item := obj.Capabilities().Item
	if item == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	if mode != catalog.ReagentContents {
		return 0, nil
	}
	return item.ReagentAmount(reagentHash), nil
}

// GetMemory reads address on deviceID's onboard memory (spec.md §3,
// "MemoryReadable").
func (v *VM) GetMemory(deviceID uint32, address int) (float64, *icvm.ICError) {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	mem := obj.Capabilities().MemoryReadable
	if mem == nil {
		return 0, &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	val, ok := mem.Read(address)
	if !ok {
		return 0, &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	return val, nil
}

// SetMemory writes address on deviceID's onboard memory (spec.md §3,
// "MemoryWritable").
func (v *VM) SetMemory(deviceID uint32, address int, value float64) *icvm.ICError {
	obj := v.graph.Get(object.ID(deviceID))
	if obj == nil {
		return &icvm.ICError{Kind: icvm.ErrUnknownDeviceId}
	}
	if obj.Capabilities().MemoryWritable == nil {
		return &icvm.ICError{Kind: icvm.ErrDeviceHasNoField}
	}
	if !v.journal.SetMemory(v.graph, object.ID(deviceID), address, value) {
		return &icvm.ICError{Kind: icvm.ErrSlotIndexOutOfRange}
	}
	return nil
}
