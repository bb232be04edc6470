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

// execCompareSet handles the 18 "s..." opcodes: each writes 1.0 or 0.0 to
// dest depending on a shared condSpec (cond.go) applied to one or two
// source operands, plus a tolerance operand for the "ap"/"na" family.
func (ic *IntegratedCircuit) execCompareSet(env Environment, op catalog.Opcode, ops []ast.Operand) *ICError {
	spec, ok := condTable[op]
	if !ok {
		return &ICError{Kind: ErrIncorrectOperandType, Msg: "not a compare-set opcode"}
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

	a, err := ic.readValue(env, ops[1])
	if err != nil {
		return err
	}

	var b, tolerance float64
	idx := 2
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
	}

	result := 0.0
	if evaluateCond(spec, a, b, tolerance) {
		result = 1.0
	}
	return ic.writeRegister(env, ops[0], result)
}
