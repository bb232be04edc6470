// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package vm is the IC10 interpreter: per-chip execution state (registers,
// stack, instruction pointer, aliases, defines, labels) and opcode
// dispatch. It never touches the object graph directly — every device
// read/write and every register operand resolution call out through the
// Environment interface, the message-passing boundary described for the
// object graph: the interpreter asks, the graph answers, no live borrow
// crosses an instruction boundary.
package vm

import (
	"fmt"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
)

// StackCapacity is the fixed depth of an IC's value stack (spec.md §3,
// "IntegratedCircuit").
const StackCapacity = 512

// registerCount is 16 general-purpose registers plus sp (16) and ra (17).
const registerCount = 18

// Status is the IC's coarse execution state machine (spec.md §7: "Start →
// Running ↔ Yielded → Errored/Halted").
type Status uint8

const (
	StatusStart Status = iota
	StatusRunning
	StatusYielded
	StatusErrored
	StatusHalted
)

func (s Status) String() string {
	switch s {
	case StatusStart:
		return "Start"
	case StatusRunning:
		return "Running"
	case StatusYielded:
		return "Yielded"
	case StatusErrored:
		return "Errored"
	case StatusHalted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// Environment is everything an IC needs from the outside world to execute
// one instruction. The orchestrator package implements it against the
// object graph and network layer; tests implement it against a fake.
type Environment interface {
	// ResolveDevice turns a device reference as seen by holderID's pin
	// table into a concrete object id.
	ResolveDevice(holderID uint32, ref ast.DeviceRef, connection *int) (uint32, *ICError)

	GetLogic(deviceID uint32, field catalog.LogicType) (float64, *ICError)
	SetLogic(deviceID uint32, field catalog.LogicType, value float64, force bool) *ICError

	GetSlotLogic(deviceID uint32, slot int, field catalog.SlotLogicType) (float64, *ICError)
	SetSlotLogic(deviceID uint32, slot int, field catalog.SlotLogicType, value float64) *ICError

	// BatchReadLogic folds field across every data-visible device sharing
	// prefabHash (and, when nameHash is non-nil, also sharing that name
	// hash) reachable from holderID's networks.
	BatchReadLogic(holderID uint32, prefabHash int32, nameHash *int32, field catalog.LogicType, mode catalog.BatchMode) (float64, *ICError)
	BatchWriteLogic(holderID uint32, prefabHash int32, nameHash *int32, field catalog.LogicType, value float64) *ICError

	BatchReadSlotLogic(holderID uint32, prefabHash int32, slot int, field catalog.SlotLogicType, mode catalog.BatchMode) (float64, *ICError)
	BatchWriteSlotLogic(holderID uint32, prefabHash int32, slot int, field catalog.SlotLogicType, value float64) *ICError

	// GetReagent and the memory pair serve the `lr`/`ld`/`sd` opcodes:
	// reagent mixtures and onboard device memory are both represented
	// only to the depth a running program can observe (spec.md Non-goals).
	GetReagent(deviceID uint32, mode catalog.ReagentMode, reagentHash int32) (float64, *ICError)
	GetMemory(deviceID uint32, address int) (float64, *ICError)
	SetMemory(deviceID uint32, address int, value float64) *ICError
}

// IntegratedCircuit is the per-chip execution state (spec.md §3,
// "IntegratedCircuit").
type IntegratedCircuit struct {
	HolderID uint32
	Program  *ast.Program

	Registers [registerCount]float64
	Stack     [StackCapacity]float64

	IP      int
	Aliases map[string]ast.Operand
	Defines map[string]float64

	Status      Status
	shouldYield bool
	jumped      bool

	// SleepRemaining is seconds left before `sleep` releases the chip; the
	// host decrements it by its own tick duration and only calls Run again
	// once it reaches zero (spec.md Open Question: sleep/tick conversion).
	SleepRemaining float64

	Rand *Rand
}

// NewIntegratedCircuit creates a chip with a fresh, empty program.
func NewIntegratedCircuit(holderID uint32) *IntegratedCircuit {
	ic := &IntegratedCircuit{
		HolderID: holderID,
		Program:  &ast.Program{},
		Aliases:  make(map[string]ast.Operand),
		Defines:  make(map[string]float64),
		Status:   StatusStart,
		Rand:     NewRand(0),
	}
	return ic
}

// SP returns the current stack pointer. sp is register 16 — there is no
// separate field, so the "sp == r16" invariant holds by construction.
func (ic *IntegratedCircuit) SP() int { return int(ic.Registers[16]) }

// SetSeed reseeds the IC's `rand` generator.
func (ic *IntegratedCircuit) SetSeed(seed int32) { ic.Rand = NewRand(seed) }

// Load installs a freshly parsed program and resets all chip state. Aliases
// and defines do not survive a reload: both are populated at runtime by the
// `alias`/`define` pseudo-instructions as the program executes.
func (ic *IntegratedCircuit) Load(prog *ast.Program) {
	ic.Program = prog
	ic.Registers = [registerCount]float64{}
	ic.Stack = [StackCapacity]float64{}
	ic.IP = 0
	ic.Aliases = make(map[string]ast.Operand)
	ic.Defines = make(map[string]float64)
	ic.Status = StatusStart
	ic.SleepRemaining = 0
}

// fault transitions the chip to Errored, marks the housing's Error field,
// and wraps the fault for host reporting. A fault never escapes Run as a
// Go error — it always becomes the returned *LineError.
func (ic *IntegratedCircuit) fault(env Environment, err *ICError) *LineError {
	ic.Status = StatusErrored
	env.SetLogic(ic.HolderID, catalog.LogicError, 1.0, true)
	return &LineError{Err: err, Line: ic.IP}
}

// Run executes up to maxInstructions lines, stopping early on yield, hcf,
// or a fault. It returns the number of instructions actually executed and,
// on a fault, the wrapped LineError (nil otherwise).
func (ic *IntegratedCircuit) Run(env Environment, maxInstructions int) (executed int, lineErr *LineError) {
	if ic.Status == StatusHalted {
		return 0, nil
	}
	if ic.Program == nil || len(ic.Program.Lines) == 0 {
		return 0, nil
	}
	ic.Status = StatusRunning
	ic.shouldYield = false

	for executed < maxInstructions {
		if ic.IP < 0 || ic.IP >= len(ic.Program.Lines) {
			return executed, ic.fault(env, &ICError{Kind: ErrInstructionPointerOutOfRange})
		}
		line := ic.Program.Lines[ic.IP]
		if line.Instruction == nil {
			ic.IP++
			executed++
			continue
		}

		ic.jumped = false
		if err := ic.execute(env, line.Instruction); err != nil {
			return executed + 1, ic.fault(env, err)
		}
		executed++

		if !ic.jumped {
			ic.IP++
		}

		if ic.Status == StatusHalted {
			break
		}
		if ic.shouldYield {
			ic.Status = StatusYielded
			ic.shouldYield = false
			break
		}
	}
	if ic.Status == StatusRunning {
		ic.Status = StatusYielded
	}
	return executed, nil
}

// ---------------------------------------------------------------------------
// Operand resolution
// ---------------------------------------------------------------------------

func (ic *IntegratedCircuit) getRegister(idx int) (float64, *ICError) {
	if idx < 0 || idx >= registerCount {
		return 0, &ICError{Kind: ErrRegisterIndexOutOfRange, Msg: fmt.Sprintf("register index %d out of range", idx)}
	}
	return ic.Registers[idx], nil
}

func (ic *IntegratedCircuit) setRegister(idx int, v float64) *ICError {
	if idx < 0 || idx >= registerCount {
		return &ICError{Kind: ErrRegisterIndexOutOfRange, Msg: fmt.Sprintf("register index %d out of range", idx)}
	}
	ic.Registers[idx] = v
	return nil
}

// resolveRegisterIndex follows a Register operand's indirection chain and
// returns the final register index (not its value) — the caller then
// reads or writes that register directly.
func (ic *IntegratedCircuit) resolveRegisterIndex(reg *ast.Register) (int, *ICError) {
	idx := int(reg.Index)
	for i := 0; i < reg.Indirection; i++ {
		v, err := ic.getRegister(idx)
		if err != nil {
			return 0, err
		}
		idx = int(v)
	}
	return idx, nil
}

// resolveIndirectPinIndex follows a DeviceIndirect's register chain one
// level further than resolveRegisterIndex: the final register's *value*
// is the pin index, not the register to use.
func (ic *IntegratedCircuit) resolveIndirectPinIndex(ref ast.DeviceIndirect) (int, *ICError) {
	idx := int(ref.Index)
	for i := 0; i < ref.Indirection; i++ {
		v, err := ic.getRegister(idx)
		if err != nil {
			return 0, err
		}
		idx = int(v)
	}
	v, err := ic.getRegister(idx)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// readValue resolves any operand to a numeric value: literals evaluate to
// themselves, registers are dereferenced, and identifiers are looked up
// first as aliases (recursively), then as defines.
func (ic *IntegratedCircuit) readValue(env Environment, op ast.Operand) (float64, *ICError) {
	switch v := op.(type) {
	case *ast.Number:
		return v.Value, nil
	case *ast.Register:
		idx, err := ic.resolveRegisterIndex(v)
		if err != nil {
			return 0, err
		}
		return ic.getRegister(idx)
	case *ast.Identifier:
		if aliased, ok := ic.Aliases[v.Name]; ok {
			return ic.readValue(env, aliased)
		}
		if val, ok := ic.Defines[v.Name]; ok {
			return val, nil
		}
		if line, ok := ic.Program.Labels[v.Name]; ok {
			return float64(line), nil
		}
		return 0, &ICError{Kind: ErrUnknownIdentifier, Msg: fmt.Sprintf("unknown identifier %q", v.Name)}
	default:
		return 0, &ICError{Kind: ErrIncorrectOperandType, Want: "number"}
	}
}

// writeRegister resolves op to a writable register (directly, or through
// an alias bound to one) and stores value there.
func (ic *IntegratedCircuit) writeRegister(env Environment, op ast.Operand, value float64) *ICError {
	switch v := op.(type) {
	case *ast.Register:
		idx, err := ic.resolveRegisterIndex(v)
		if err != nil {
			return err
		}
		return ic.setRegister(idx, value)
	case *ast.Identifier:
		if aliased, ok := ic.Aliases[v.Name]; ok {
			return ic.writeRegister(env, aliased, value)
		}
		return &ICError{Kind: ErrIncorrectOperandType, Want: "writable register"}
	default:
		return &ICError{Kind: ErrIncorrectOperandType, Want: "writable register"}
	}
}

// resolveDevice resolves op (directly, or through an alias) to a concrete
// device id via the environment's pin-table lookup.
func (ic *IntegratedCircuit) resolveDevice(env Environment, op ast.Operand) (uint32, *ICError) {
	switch v := op.(type) {
	case *ast.Device:
		if indirect, ok := v.Ref.(ast.DeviceIndirect); ok {
			pin, err := ic.resolveIndirectPinIndex(indirect)
			if err != nil {
				return 0, err
			}
			return env.ResolveDevice(ic.HolderID, ast.DeviceNumbered{Index: pin}, v.Connection)
		}
		return env.ResolveDevice(ic.HolderID, v.Ref, v.Connection)
	case *ast.Identifier:
		if aliased, ok := ic.Aliases[v.Name]; ok {
			return ic.resolveDevice(env, aliased)
		}
		return 0, &ICError{Kind: ErrIncorrectOperandType, Want: "device"}
	default:
		return 0, &ICError{Kind: ErrIncorrectOperandType, Want: "device"}
	}
}

// operandIdentifierName extracts the bare identifier a LogicType/
// SlotLogicType operand names when it arrived as an Identifier; for any
// other operand (including a qualified LogicType.Setting, already folded
// into a Number at parse time) it reports false.
func operandIdentifierName(op ast.Operand) (string, bool) {
	if id, ok := op.(*ast.Identifier); ok {
		return id.Name, true
	}
	return "", false
}

func (ic *IntegratedCircuit) resolveLogicType(env Environment, op ast.Operand) (catalog.LogicType, *ICError) {
	if name, ok := operandIdentifierName(op); ok {
		v, ok := catalog.ParseLogicType(name)
		if !ok {
			return 0, &ICError{Kind: ErrUnknownLogicType, Msg: fmt.Sprintf("unknown logic type %q", name)}
		}
		return v, nil
	}
	val, err := ic.readValue(env, op)
	if err != nil {
		return 0, err
	}
	lt := catalog.LogicType(val)
	if !catalog.IsValidLogicType(lt) {
		return 0, &ICError{Kind: ErrUnknownLogicType, Msg: fmt.Sprintf("unknown logic type %v", val)}
	}
	return lt, nil
}

func (ic *IntegratedCircuit) resolveSlotLogicType(env Environment, op ast.Operand) (catalog.SlotLogicType, *ICError) {
	if name, ok := operandIdentifierName(op); ok {
		v, ok := catalog.ParseSlotLogicType(name)
		if !ok {
			return 0, &ICError{Kind: ErrUnknownSlotType, Msg: fmt.Sprintf("unknown slot logic type %q", name)}
		}
		return v, nil
	}
	val, err := ic.readValue(env, op)
	if err != nil {
		return 0, err
	}
	st := catalog.SlotLogicType(val)
	if !catalog.IsValidSlotLogicType(st) {
		return 0, &ICError{Kind: ErrUnknownSlotType, Msg: fmt.Sprintf("unknown slot logic type %v", val)}
	}
	return st, nil
}

func (ic *IntegratedCircuit) resolveBatchMode(env Environment, op ast.Operand) (catalog.BatchMode, *ICError) {
	val, err := ic.readValue(env, op)
	if err != nil {
		return 0, err
	}
	bm := catalog.BatchMode(val)
	if !catalog.IsValidBatchMode(bm) {
		return 0, &ICError{Kind: ErrUnknownBatchMode, Msg: fmt.Sprintf("unknown batch mode %v", val)}
	}
	return bm, nil
}

// operand is a tiny helper for bounds-checked operand-list access so every
// handler doesn't repeat the same len() dance.
func operand(ops []ast.Operand, i int) (ast.Operand, *ICError) {
	if i >= len(ops) {
		return nil, &ICError{Kind: ErrTooFewOperands, Msg: fmt.Sprintf("expected at least %d operands, got %d", i+1, len(ops))}
	}
	return ops[i], nil
}

func requireOperandCount(ops []ast.Operand, want int) *ICError {
	if len(ops) < want {
		return &ICError{Kind: ErrTooFewOperands, Msg: fmt.Sprintf("expected %d operands, got %d", want, len(ops))}
	}
	if len(ops) > want {
		return &ICError{Kind: ErrTooManyOperands, Msg: fmt.Sprintf("expected %d operands, got %d", want, len(ops))}
	}
	return nil
}
