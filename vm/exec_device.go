// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
)

// execDevice handles the single-device read/write family: l/s (logic
// field), ls/ss (slot logic field), lr (reagent), ld/sd (onboard memory).
func (ic *IntegratedCircuit) execDevice(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	switch op {
	case catalog.OpL:
		return ic.execLoad(env, ops)
	case catalog.OpS:
		return ic.execStore(env, ops)
	case catalog.OpLs:
		return ic.execLoadSlot(env, ops)
	case catalog.OpSs:
		return ic.execStoreSlot(env, ops)
	case catalog.OpLr:
		return ic.execLoadReagent(env, ops)
	case catalog.OpLd:
		return ic.execLoadMemory(env, ops)
	case catalog.OpSd:
		return ic.execStoreMemory(env, ops)
	}
	return nil
}

// l dest device field
func (ic *IntegratedCircuit) execLoad(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[1])
	if err != nil {
		return err
	}
	field, err := ic.resolveLogicType(env, ops[2])
	if err != nil {
		return err
	}
	v, err := env.GetLogic(deviceID, field)
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// s device field value
func (ic *IntegratedCircuit) execStore(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[0])
	if err != nil {
		return err
	}
	field, err := ic.resolveLogicType(env, ops[1])
	if err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	return env.SetLogic(deviceID, field, v, false)
}

// ls dest device slotIndex field
func (ic *IntegratedCircuit) execLoadSlot(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 4); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[1])
	if err != nil {
		return err
	}
	slotVal, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	field, err := ic.resolveSlotLogicType(env, ops[3])
	if err != nil {
		return err
	}
	v, err := env.GetSlotLogic(deviceID, int(slotVal), field)
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// ss device slotIndex field value
func (ic *IntegratedCircuit) execStoreSlot(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 4); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[0])
	if err != nil {
		return err
	}
	slotVal, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	field, err := ic.resolveSlotLogicType(env, ops[2])
	if err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[3])
	if err != nil {
		return err
	}
	return env.SetSlotLogic(deviceID, int(slotVal), field, v)
}

// lr dest device reagentMode reagentHash
func (ic *IntegratedCircuit) execLoadReagent(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 4); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[1])
	if err != nil {
		return err
	}
	modeVal, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	mode := catalog.ReagentMode(modeVal)
	if !catalog.IsValidReagentMode(mode) {
		return &ICError{Kind: ErrUnknownReagentMode}
	}
	hashVal, err := ic.readValue(env, ops[3])
	if err != nil {
		return err
	}
	v, err := env.GetReagent(deviceID, mode, int32(hashVal))
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// ld dest device address
func (ic *IntegratedCircuit) execLoadMemory(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[1])
	if err != nil {
		return err
	}
	addrVal, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	v, err := env.GetMemory(deviceID, int(addrVal))
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// sd device address value
func (ic *IntegratedCircuit) execStoreMemory(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	deviceID, err := ic.resolveDevice(env, ops[0])
	if err != nil {
		return err
	}
	addrVal, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	return env.SetMemory(deviceID, int(addrVal), v)
}

// execBatch handles the cross-network fold family: lb/sb (by prefab), lbn/
// sbn (by prefab + name hash), lbs/sbs (by prefab, slot logic).
func (ic *IntegratedCircuit) execBatch(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	switch op {
	case catalog.OpLb:
		return ic.execBatchRead(env, ops, false)
	case catalog.OpSb:
		return ic.execBatchWrite(env, ops, false)
	case catalog.OpLbn:
		return ic.execBatchRead(env, ops, true)
	case catalog.OpSbn:
		return ic.execBatchWrite(env, ops, true)
	case catalog.OpLbs:
		return ic.execBatchReadSlot(env, ops)
	case catalog.OpSbs:
		return ic.execBatchWriteSlot(env, ops)
	}
	return nil
}

// lb dest prefabHash field mode   /   lbn dest prefabHash nameHash field mode
func (ic *IntegratedCircuit) execBatchRead(env Environment, ops []ast.Operand, named bool) *ICError {
	want := 4
	if named {
		want = 5
	}
	if err := requireOperandCount(ops, want); err != nil {
		return err
	}
	prefabVal, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	idx := 2
	var nameHash *int32
	if named {
		n, err := ic.readValue(env, ops[idx])
		if err != nil {
			return err
		}
		v := int32(n)
		nameHash = &v
		idx++
	}
	field, err := ic.resolveLogicType(env, ops[idx])
	if err != nil {
		return err
	}
	idx++
	mode, err := ic.resolveBatchMode(env, ops[idx])
	if err != nil {
		return err
	}
	v, err := env.BatchReadLogic(ic.HolderID, int32(prefabVal), nameHash, field, mode)
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// sb prefabHash field value   /   sbn prefabHash nameHash field value
func (ic *IntegratedCircuit) execBatchWrite(env Environment, ops []ast.Operand, named bool) *ICError {
	want := 3
	if named {
		want = 4
	}
	if err := requireOperandCount(ops, want); err != nil {
		return err
	}
	prefabVal, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	idx := 1
	var nameHash *int32
	if named {
		n, err := ic.readValue(env, ops[idx])
		if err != nil {
			return err
		}
		v := int32(n)
		nameHash = &v
		idx++
	}
	field, err := ic.resolveLogicType(env, ops[idx])
	if err != nil {
		return err
	}
	idx++
	v, err := ic.readValue(env, ops[idx])
	if err != nil {
		return err
	}
	return env.BatchWriteLogic(ic.HolderID, int32(prefabVal), nameHash, field, v)
}

// lbs dest prefabHash slotIndex field mode
func (ic *IntegratedCircuit) execBatchReadSlot(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 5); err != nil {
		return err
	}
	prefabVal, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	slotVal, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	field, err := ic.resolveSlotLogicType(env, ops[3])
	if err != nil {
		return err
	}
	mode, err := ic.resolveBatchMode(env, ops[4])
	if err != nil {
		return err
	}
	v, err := env.BatchReadSlotLogic(ic.HolderID, int32(prefabVal), int(slotVal), field, mode)
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

// sbs prefabHash slotIndex field value
func (ic *IntegratedCircuit) execBatchWriteSlot(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 4); err != nil {
		return err
	}
	prefabVal, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	slotVal, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	field, err := ic.resolveSlotLogicType(env, ops[2])
	if err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[3])
	if err != nil {
		return err
	}
	return env.BatchWriteSlotLogic(ic.HolderID, int32(prefabVal), int(slotVal), field, v)
}
