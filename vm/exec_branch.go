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

// execBranch handles every conditional branch opcode: absolute, the
// "br"-prefixed relative family, and the "al"-suffixed branch-and-link
// family. The family is derived from the mnemonic itself (cond.go); the
// condition is shared with execCompareSet via condTable.
func (ic *IntegratedCircuit) execBranch(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	spec, ok := condTable[op]
	if !ok {
		return &ICError{Kind: ErrIncorrectOperandType, Msg: "not a branch opcode"}
	}
	needsB := !spec.zero && spec.kind != condNAN

	want := 2
	if needsB {
		want++
	}
	if spec.kind == condAP {
		want++
	}
	if err := requireOperandCount(ops, want); err != nil {
		return err
	}

	idx := 0
	a, err := ic.readValue(env, ops[idx])
	if err != nil {
		return err
	}
	idx++

	var b, tolerance float64
	if needsB {
		b, err = ic.readValue(env, ops[idx])
		if err != nil {
			return err
		}
		idx++
	}
	if spec.kind == condAP {
		tolerance, err = ic.readValue(env, ops[idx])
		if err != nil {
			return err
		}
		idx++
	}
	targetOp := ops[idx]

	if !evaluateCond(spec, a, b, tolerance) {
		return nil
	}
	return ic.branchTo(env, op, targetOp)
}

// branchTo performs the actual jump once a condition (or an unconditional
// jump) has decided to take it: it resolves the target, applies it either
// as an absolute line or as an offset from the current line depending on
// the mnemonic's "br" prefix, and links ra when the mnemonic ends in "al".
func (ic *IntegratedCircuit) branchTo(env Environment, op catalog.Opcode, targetOp ast.Operand) *ICError {
	targetVal, err := ic.readValue(env, targetOp)
	if err != nil {
		return err
	}
	returnAddr := float64(ic.IP + 1)

	if isRelativeBranch(op) {
		ic.IP += int(targetVal)
	} else {
		ic.IP = int(targetVal)
	}
	ic.jumped = true

	if isLinkBranch(op) {
		if err := ic.setRegister(17, returnAddr); err != nil {
			return err
		}
	}
	return nil
}

// execJump handles the three unconditional jumps: j (absolute), jr
// (relative), and jal (absolute, linking ra).
func (ic *IntegratedCircuit) execJump(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	if err := requireOperandCount(ops, 1); err != nil {
		return err
	}
	targetVal, err := ic.readValue(env, ops[0])
	if err != nil {
		return err
	}
	returnAddr := float64(ic.IP + 1)

	switch op {
	case catalog.OpJ:
		ic.IP = int(targetVal)
	case catalog.OpJr:
		ic.IP += int(targetVal)
	case catalog.OpJal:
		ic.IP = int(targetVal)
		if err := ic.setRegister(17, returnAddr); err != nil {
			return err
		}
	}
	ic.jumped = true
	return nil
}
