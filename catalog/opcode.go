// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

// Opcode is the closed set of IC10 instruction mnemonics (spec.md §4.6).
// Case-sensitive, lowercase only, one per source line.
type Opcode uint16

const (
	// ---- Arithmetic ---------------------------------------------------
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAbs
	OpMax
	OpMin
	OpSelect

	// ---- Math -----------------------------------------------------------
	OpSqrt
	OpExp
	OpLog
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpAtan2
	OpRand
	OpFloor
	OpCeil
	OpRound
	OpTrunc

	// ---- Bit --------------------------------------------------------------
	OpAnd
	OpOr
	OpXor
	OpNor
	OpNot
	OpSla
	OpSll
	OpSra
	OpSrl

	// ---- Compare-set --------------------------------------------------------
	OpSeq
	OpSlt
	OpSgt
	OpSle
	OpSge
	OpSne
	OpSeqz
	OpSltz
	OpSgtz
	OpSlez
	OpSgez
	OpSnez
	OpSapz
	OpSnapz
	OpSnan
	OpSnanz
	OpSap
	OpSna

	// ---- Branches, conditional, absolute ------------------------------------
	OpBeq
	OpBne
	OpBlt
	OpBgt
	OpBle
	OpBge
	OpBeqz
	OpBnez
	OpBltz
	OpBgtz
	OpBlez
	OpBgez
	OpBap
	OpBna
	OpBapz
	OpBnaz
	OpBnan

	// ---- Branches, conditional, relative (br prefix) ------------------------
	OpBreq
	OpBrne
	OpBrlt
	OpBrgt
	OpBrle
	OpBrge
	OpBreqz
	OpBrnez
	OpBrltz
	OpBrgtz
	OpBrlez
	OpBrgez
	OpBrap
	OpBrna
	OpBrapz
	OpBrnaz
	OpBrnan

	// ---- Jumps (absolute, relative, jump-and-link, branch-and-link) --------
	OpJ
	OpJr
	OpJal
	OpBeqal
	OpBneal
	OpBltal
	OpBgtal
	OpBleal
	OpBgeal
	OpBeqzal
	OpBnezal
	OpBltzal
	OpBgtzal
	OpBlezal
	OpBgezal
	OpBapal
	OpBnaal
	OpBapzal
	OpBnazal
	OpBnanal

	// ---- Memory / stack ------------------------------------------------------
	OpPush
	OpPop
	OpPeek
	OpPoke
	OpMove

	// ---- Device read/write -----------------------------------------------
	OpL
	OpS
	OpLs
	OpSs
	OpLr
	OpLd
	OpSd

	// ---- Batch ---------------------------------------------------------------
	OpLb
	OpSb
	OpLbn
	OpSbn
	OpLbs
	OpSbs

	// ---- Control ---------------------------------------------------------------
	OpNop
	OpYield
	OpHcf
	OpSleep

	// ---- Pseudo-instructions ---------------------------------------------------
	OpDefine
	OpAlias
	OpLabel
)

var opcodeNames = [...]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpAbs: "abs", OpMax: "max", OpMin: "min", OpSelect: "select",

	OpSqrt: "sqrt", OpExp: "exp", OpLog: "log", OpSin: "sin", OpCos: "cos",
	OpTan: "tan", OpAsin: "asin", OpAcos: "acos", OpAtan: "atan", OpAtan2: "atan2",
	OpRand: "rand", OpFloor: "floor", OpCeil: "ceil", OpRound: "round", OpTrunc: "trunc",

	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNor: "nor", OpNot: "not",
	OpSla: "sla", OpSll: "sll", OpSra: "sra", OpSrl: "srl",

	OpSeq: "seq", OpSlt: "slt", OpSgt: "sgt", OpSle: "sle", OpSge: "sge", OpSne: "sne",
	OpSeqz: "seqz", OpSltz: "sltz", OpSgtz: "sgtz", OpSlez: "slez", OpSgez: "sgez", OpSnez: "snez",
	OpSapz: "sapz", OpSnapz: "snapz", OpSnan: "snan", OpSnanz: "snanz", OpSap: "sap", OpSna: "sna",

	OpBeq: "beq", OpBne: "bne", OpBlt: "blt", OpBgt: "bgt", OpBle: "ble", OpBge: "bge",
	OpBeqz: "beqz", OpBnez: "bnez", OpBltz: "bltz", OpBgtz: "bgtz", OpBlez: "blez", OpBgez: "bgez",
	OpBap: "bap", OpBna: "bna", OpBapz: "bapz", OpBnaz: "bnaz", OpBnan: "bnan",

	OpBreq: "breq", OpBrne: "brne", OpBrlt: "brlt", OpBrgt: "brgt", OpBrle: "brle", OpBrge: "brge",
	OpBreqz: "breqz", OpBrnez: "brnez", OpBrltz: "brltz", OpBrgtz: "brgtz", OpBrlez: "brlez", OpBrgez: "brgez",
	OpBrap: "brap", OpBrna: "brna", OpBrapz: "brapz", OpBrnaz: "brnaz", OpBrnan: "brnan",

	OpJ: "j", OpJr: "jr", OpJal: "jal",
	OpBeqal: "beqal", OpBneal: "bneal", OpBltal: "bltal", OpBgtal: "bgtal",
	OpBleal: "bleal", OpBgeal: "bgeal", OpBeqzal: "beqzal", OpBnezal: "bnezal",
	OpBltzal: "bltzal", OpBgtzal: "bgtzal", OpBlezal: "blezal", OpBgezal: "bgezal",
	OpBapal: "bapal", OpBnaal: "bnaal", OpBapzal: "bapzal", OpBnazal: "bnazal", OpBnanal: "bnanal",

	OpPush: "push", OpPop: "pop", OpPeek: "peek", OpPoke: "poke", OpMove: "move",

	OpL: "l", OpS: "s", OpLs: "ls", OpSs: "ss", OpLr: "lr", OpLd: "ld", OpSd: "sd",

	OpLb: "lb", OpSb: "sb", OpLbn: "lbn", OpSbn: "sbn", OpLbs: "lbs", OpSbs: "sbs",

	OpNop: "nop", OpYield: "yield", OpHcf: "hcf", OpSleep: "sleep",

	OpDefine: "define", OpAlias: "alias", OpLabel: "label",
}

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, len(opcodeNames))
	for code, name := range opcodeNames {
		if name != "" {
			opcodeByName[name] = Opcode(code)
		}
	}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "invalid"
}

// ParseOpcode resolves a case-sensitive opcode mnemonic.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}
