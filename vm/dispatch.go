// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

import (
	"fmt"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
)

// execute dispatches a single decoded instruction. It returns a non-nil
// *ICError on fault; a successful instruction that branched sets ic.jumped
// so Run knows not to auto-advance the instruction pointer.
func (ic *IntegratedCircuit) execute(env Environment, instr *ast.Instruction) *ICError {
	ops := instr.Operands
	switch instr.Op {
	case catalog.OpAdd, catalog.OpSub, catalog.OpMul, catalog.OpDiv, catalog.OpMod,
		catalog.OpMax, catalog.OpMin:
		return ic.execBinaryArith(env, instr.Op, ops)
	case catalog.OpAbs:
		return ic.execUnaryArith(env, instr.Op, ops)
	case catalog.OpSelect:
		return ic.execSelect(env, ops)

	case catalog.OpSqrt, catalog.OpExp, catalog.OpLog, catalog.OpSin, catalog.OpCos,
		catalog.OpTan, catalog.OpAsin, catalog.OpAcos, catalog.OpAtan,
		catalog.OpFloor, catalog.OpCeil, catalog.OpRound, catalog.OpTrunc:
		return ic.execUnaryArith(env, instr.Op, ops)
	case catalog.OpAtan2:
		return ic.execBinaryArith(env, instr.Op, ops)
	case catalog.OpRand:
		return ic.execRand(env, ops)

	case catalog.OpAnd, catalog.OpOr, catalog.OpXor, catalog.OpNor,
		catalog.OpSla, catalog.OpSll, catalog.OpSra, catalog.OpSrl:
		return ic.execBitwise(env, instr.Op, ops)
	case catalog.OpNot:
		return ic.execUnaryArith(env, instr.Op, ops)

	case catalog.OpSeq, catalog.OpSlt, catalog.OpSgt, catalog.OpSle, catalog.OpSge, catalog.OpSne,
		catalog.OpSeqz, catalog.OpSltz, catalog.OpSgtz, catalog.OpSlez, catalog.OpSgez, catalog.OpSnez,
		catalog.OpSapz, catalog.OpSnapz, catalog.OpSnan, catalog.OpSnanz, catalog.OpSap, catalog.OpSna:
		return ic.execCompareSet(env, instr.Op, ops)

	case catalog.OpJ, catalog.OpJr, catalog.OpJal:
		return ic.execJump(env, instr.Op, ops)

	case catalog.OpPush, catalog.OpPop, catalog.OpPeek, catalog.OpPoke, catalog.OpMove:
		return ic.execStack(env, instr.Op, ops)

	case catalog.OpL, catalog.OpS, catalog.OpLs, catalog.OpSs, catalog.OpLr, catalog.OpLd, catalog.OpSd:
		return ic.execDevice(env, instr.Op, ops)

	case catalog.OpLb, catalog.OpSb, catalog.OpLbn, catalog.OpSbn, catalog.OpLbs, catalog.OpSbs:
		return ic.execBatch(env, instr.Op, ops)

	case catalog.OpNop:
		return nil
	case catalog.OpYield:
		ic.shouldYield = true
		return nil
	case catalog.OpHcf:
		ic.Status = StatusHalted
		return nil
	case catalog.OpSleep:
		return ic.execSleep(env, ops)

	case catalog.OpDefine:
		return ic.execDefine(ops)
	case catalog.OpAlias:
		return ic.execAlias(ops)
	case catalog.OpLabel:
		return nil
	}

	if _, ok := condTable[instr.Op]; ok {
		return ic.execBranch(env, instr.Op, ops)
	}

	return &ICError{Kind: ErrIncorrectOperandType, Msg: fmt.Sprintf("unhandled opcode %s", instr.Op)}
}
