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

// execStack handles push/pop/peek/poke/move. sp lives in register 16 —
// there is no separate stack-pointer field, so every read here goes
// through the ordinary register accessors.
func (ic *IntegratedCircuit) execStack(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	switch op {
	case catalog.OpPush:
		return ic.execPush(env, ops)
	case catalog.OpPop:
		return ic.execPop(env, ops)
	case catalog.OpPeek:
		return ic.execPeek(env, ops)
	case catalog.OpPoke:
		return ic.execPoke(env, ops)
	case catalog.OpMove:
		return ic.execMove(env, ops)
	}
	return nil
}

func (ic *IntegratedCircuit) execPush(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	sp := ic.SP()
	if sp < 0 || sp >= StackCapacity {
		return &ICError{Kind: ErrStackOverflow}
	}
	ic.Stack[sp] = v
	return ic.setRegister(16, float64(sp+1))
}

func (ic *IntegratedCircuit) execPop(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	sp := ic.SP() - 1
	if sp < 0 || sp >= StackCapacity {
		return &ICError{Kind: ErrStackUnderflow}
	}
	v := ic.Stack[sp]
	if err := ic.setRegister(16, float64(sp)); err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

func (ic *IntegratedCircuit) execPeek(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	top := ic.SP() - 1
	if top < 0 || top >= StackCapacity {
		return &ICError{Kind: ErrStackUnderflow}
	}
	return ic.writeRegister(env, ops[0], ic.Stack[top])
}

func (ic *IntegratedCircuit) execPoke(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 2); err != nil {
		return err
	}
	addrVal, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	addr := int(addrVal)
	if addr < 0 {
		return &ICError{Kind: ErrStackUnderflow}
	}
	if addr >= StackCapacity {
		return &ICError{Kind: ErrStackOverflow}
	}
	ic.Stack[addr] = v
	return nil
}

func (ic *IntegratedCircuit) execMove(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 2); err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}
