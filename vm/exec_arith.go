// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"math"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
)

// floorMod matches the original game's "mod" contract: the result always
// carries the divisor's sign, unlike Go's float64 Mod.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func (ic *IntegratedCircuit) execBinaryArith(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	a, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	b, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	var result float64
	switch op {
	case catalog.OpAdd:
		result = a + b
	case catalog.OpSub:
		result = a - b
	case catalog.OpMul:
		result = a * b
	case catalog.OpDiv:
		result = a / b
	case catalog.OpMod:
		result = floorMod(a, b)
	case catalog.OpMax:
		result = math.Max(a, b)
	case catalog.OpMin:
		result = math.Min(a, b)
	case catalog.OpAtan2:
		result = math.Atan2(a, b)
	}
	return ic.writeRegister(env, ops[0], result)
}

func (ic *IntegratedCircuit) execUnaryArith(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 2); err != nil {
		return err
	}
	a, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	var result float64
	switch op {
	case catalog.OpAbs:
		result = math.Abs(a)
	case catalog.OpSqrt:
		result = math.Sqrt(a)
	case catalog.OpExp:
		result = math.Exp(a)
	case catalog.OpLog:
		result = math.Log(a)
	case catalog.OpSin:
		result = math.Sin(a)
	case catalog.OpCos:
		result = math.Cos(a)
	case catalog.OpTan:
		result = math.Tan(a)
	case catalog.OpAsin:
		result = math.Asin(a)
	case catalog.OpAcos:
		result = math.Acos(a)
	case catalog.OpAtan:
		result = math.Atan(a)
	case catalog.OpFloor:
		result = math.Floor(a)
	case catalog.OpCeil:
		result = math.Ceil(a)
	case catalog.OpRound:
		result = math.Round(a)
	case catalog.OpTrunc:
		result = math.Trunc(a)
	case catalog.OpNot:
		result = float64(^int64(a))
	}
	return ic.writeRegister(env, ops[0], result)
}

func (ic *IntegratedCircuit) execSelect(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 4); err != nil {
		return err
	}
	cond, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	var chosen ast.Operand
	if cond != 0 {
		chosen = ops[2]
	} else {
		chosen = ops[3]
	}
	v, err := ic.readValue(env, chosen)
	if err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], v)
}

func (ic *IntegratedCircuit) execRand(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	return ic.writeRegister(env, ops[0], ic.Rand.Float64())
}

// execBitwise operates on the 64-bit integer truncation of each operand —
// the original game's logic instructions are double-precision floats but
// the bit family works in long arithmetic.
func (ic *IntegratedCircuit) execBitwise(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 3); err != nil {
		return err
	}
	a, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}
	b, err := ic.readValue(env, ops[2])
	if err != nil {
		return err
	}
	ai, bi := int64(a), int64(b)

	if op == catalog.OpSla || op == catalog.OpSll || op == catalog.OpSra || op == catalog.OpSrl {
		if bi < 0 {
			return &ICError{Kind: ErrShiftUnderflowI64, Msg: "shift amount is negative"}
		}
		if bi > 63 {
			return &ICError{Kind: ErrShiftOverflowI64, Msg: "shift amount exceeds 63"}
		}
	}

	var result int64
	switch op {
	case catalog.OpAnd:
		result = ai & bi
	case catalog.OpOr:
		result = ai | bi
	case catalog.OpXor:
		result = ai ^ bi
	case catalog.OpNor:
		result = ^(ai | bi)
	case catalog.OpSla, catalog.OpSll:
		result = ai << uint(bi)
	case catalog.OpSra:
		result = ai >> uint(bi)
	case catalog.OpSrl:
		result = int64(uint64(ai) >> uint(bi))
	}
	return ic.writeRegister(env, ops[0], float64(result))
}
