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
	"strings"

	"github.com/ic10sim/ic10sim/catalog"
)

// condKind is the comparison family shared by the compare-set and branch
// opcode groups — both spell out the same 9 predicates, so they share one
// table instead of ~70 near-duplicated case bodies (spec.md §4.6).
type condKind uint8

const (
	condEQ condKind = iota
	condNE
	condLT
	condGT
	condLE
	condGE
	condAP
	condNAN
)

// condSpec describes how one opcode's operands map onto a condKind: zero
// means "compare against 0 instead of an explicit b", negate means the
// opcode is the logical complement of its partner (sna of sap, bna of bap,
// snapz of sapz, ...).
type condSpec struct {
	kind   condKind
	zero   bool
	negate bool
}

// condTable covers every compare-set opcode and every conditional branch
// opcode (absolute, "br"-relative, and "al" branch-and-link) — the family
// (relative vs absolute, linking vs not) is derived from the mnemonic
// itself in execBranch/execJump, not repeated here.
var condTable = map[catalog.Opcode]condSpec{
	catalog.OpSeq:  {kind: condEQ},
	catalog.OpSlt:  {kind: condLT},
	catalog.OpSgt:  {kind: condGT},
	catalog.OpSle:  {kind: condLE},
	catalog.OpSge:  {kind: condGE},
	catalog.OpSne:  {kind: condNE},
	catalog.OpSeqz: {kind: condEQ, zero: true},
	catalog.OpSltz: {kind: condLT, zero: true},
	catalog.OpSgtz: {kind: condGT, zero: true},
	catalog.OpSlez: {kind: condLE, zero: true},
	catalog.OpSgez: {kind: condGE, zero: true},
	catalog.OpSnez: {kind: condNE, zero: true},
	catalog.OpSapz: {kind: condAP, zero: true},
	catalog.OpSnapz: {kind: condAP, zero: true, negate: true},
	catalog.OpSnan:  {kind: condNAN},
	catalog.OpSnanz: {kind: condNAN, negate: true},
	catalog.OpSap: {kind: condAP},
	catalog.OpSna: {kind: condAP, negate: true},

	catalog.OpBeq: {kind: condEQ}, catalog.OpBne: {kind: condNE},
	catalog.OpBlt: {kind: condLT}, catalog.OpBgt: {kind: condGT},
	catalog.OpBle: {kind: condLE}, catalog.OpBge: {kind: condGE},
	catalog.OpBeqz: {kind: condEQ, zero: true}, catalog.OpBnez: {kind: condNE, zero: true},
	catalog.OpBltz: {kind: condLT, zero: true}, catalog.OpBgtz: {kind: condGT, zero: true},
	catalog.OpBlez: {kind: condLE, zero: true}, catalog.OpBgez: {kind: condGE, zero: true},
	catalog.OpBap: {kind: condAP}, catalog.OpBna: {kind: condAP, negate: true},
	catalog.OpBapz: {kind: condAP, zero: true}, catalog.OpBnaz: {kind: condAP, zero: true, negate: true},
	catalog.OpBnan: {kind: condNAN},

	catalog.OpBreq: {kind: condEQ}, catalog.OpBrne: {kind: condNE},
	catalog.OpBrlt: {kind: condLT}, catalog.OpBrgt: {kind: condGT},
	catalog.OpBrle: {kind: condLE}, catalog.OpBrge: {kind: condGE},
	catalog.OpBreqz: {kind: condEQ, zero: true}, catalog.OpBrnez: {kind: condNE, zero: true},
	catalog.OpBrltz: {kind: condLT, zero: true}, catalog.OpBrgtz: {kind: condGT, zero: true},
	catalog.OpBrlez: {kind: condLE, zero: true}, catalog.OpBrgez: {kind: condGE, zero: true},
	catalog.OpBrap: {kind: condAP}, catalog.OpBrna: {kind: condAP, negate: true},
	catalog.OpBrapz: {kind: condAP, zero: true}, catalog.OpBrnaz: {kind: condAP, zero: true, negate: true},
	catalog.OpBrnan: {kind: condNAN},

	catalog.OpBeqal: {kind: condEQ}, catalog.OpBneal: {kind: condNE},
	catalog.OpBltal: {kind: condLT}, catalog.OpBgtal: {kind: condGT},
	catalog.OpBleal: {kind: condLE}, catalog.OpBgeal: {kind: condGE},
	catalog.OpBeqzal: {kind: condEQ, zero: true}, catalog.OpBnezal: {kind: condNE, zero: true},
	catalog.OpBltzal: {kind: condLT, zero: true}, catalog.OpBgtzal: {kind: condGT, zero: true},
	catalog.OpBlezal: {kind: condLE, zero: true}, catalog.OpBgezal: {kind: condGE, zero: true},
	catalog.OpBapal: {kind: condAP}, catalog.OpBnaal: {kind: condAP, negate: true},
	catalog.OpBapzal: {kind: condAP, zero: true}, catalog.OpBnazal: {kind: condAP, zero: true, negate: true},
	catalog.OpBnanal: {kind: condNAN},
}

// approxEqual resolves Open Question (b) on the "ap"/"na" tolerance
// formula: a relative-or-absolute check against the larger operand's
// magnitude, floored by the machine epsilon so a==b==0 still compares
// approximately equal at tolerance 0.
func approxEqual(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < catalog.Epsilon() {
		scale = catalog.Epsilon()
	}
	return diff <= tolerance*scale
}

func evaluateCond(spec condSpec, a, b, tolerance float64) bool {
	var result bool
	switch spec.kind {
	case condEQ:
		result = a == b
	case condNE:
		result = a != b
	case condLT:
		result = a < b
	case condGT:
		result = a > b
	case condLE:
		result = a <= b
	case condGE:
		result = a >= b
	case condAP:
		result = approxEqual(a, b, tolerance)
	case condNAN:
		result = math.IsNaN(a)
	}
	if spec.negate {
		result = !result
	}
	return result
}

// isRelativeBranch and isLinkBranch derive a branch opcode's family from
// its own mnemonic rather than a second lookup table.
func isRelativeBranch(op catalog.Opcode) bool {
	return strings.HasPrefix(op.String(), "br")
}

func isLinkBranch(op catalog.Opcode) bool {
	return strings.HasSuffix(op.String(), "al")
}
