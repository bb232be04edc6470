// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import "github.com/ic10sim/ic10sim/ic10/ast"

// execSleep sets SleepRemaining and yields; the host's tick loop is
// responsible for counting the seconds down and skipping Run until they
// reach zero (nop/yield/hcf are handled directly in dispatch.go).
func (ic *IntegratedCircuit) execSleep(env Environment, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	v, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	if v < 0 {
		v = 0
	}
	ic.SleepRemaining = v
	ic.shouldYield = true
	return nil
}

// execDefine binds a compile-time-looking name to a constant numeric
// value. define is a runtime pseudo-instruction: nothing prevents a
// program from redefining a name partway through, though no real program
// does (spec.md §4.6, "Pseudo-instructions").
func (ic *IntegratedCircuit) execDefine(ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 2); err != nil {
		return err
	}
	name, ok := operandIdentifierName(ops[0])
	if !ok {
		return &ICError{Kind: ErrIncorrectOperandType, Op: "define", Index: 0, Want: "identifier"}
	}
	num, ok := ops[1].(*ast.Number)
	if !ok {
		return &ICError{Kind: ErrIncorrectOperandType, Op: "define", Index: 1, Want: "number"}
	}
	ic.Defines[name] = num.Value
	return nil
}

// execAlias binds a name to a register or device operand so later
// instructions can refer to it by name; resolution happens lazily every
// time the alias is used, not at bind time.
func (ic *IntegratedCircuit) execAlias(ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 2); err != nil {
		return err
	}
	name, ok := operandIdentifierName(ops[0])
	if !ok {
		return &ICError{Kind: ErrIncorrectOperandType, Op: "alias", Index: 0, Want: "identifier"}
	}
	switch ops[1].(type) {
	case *ast.Register, *ast.Device:
		ic.Aliases[name] = ops[1]
		return nil
	default:
		return &ICError{Kind: ErrIncorrectOperandType, Op: "alias", Index: 1, Want: "register or device"}
	}
}
