// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"strings"
	"testing"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
)

// mustParse asserts that the source parses without errors and returns the
// program.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := Parse("test.ic10", src)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		t.Fatalf("unexpected parse errors:\n%s", strings.Join(msgs, "\n"))
	}
	return prog
}

func TestParseMoveAndAdd(t *testing.T) {
	prog := mustParse(t, "move r0 5\nadd r1 r0 3\nyield\n")
	if len(prog.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(prog.Lines))
	}
	mv := prog.Lines[0].Instruction
	if mv == nil || mv.Op != catalog.OpMove {
		t.Fatalf("line 0: expected move, got %v", mv)
	}
	if len(mv.Operands) != 2 {
		t.Fatalf("move: expected 2 operands, got %d", len(mv.Operands))
	}
	reg, ok := mv.Operands[0].(*ast.Register)
	if !ok || reg.Index != 0 {
		t.Fatalf("move operand 0: expected register r0, got %#v", mv.Operands[0])
	}
	num, ok := mv.Operands[1].(*ast.Number)
	if !ok || num.Value != 5 {
		t.Fatalf("move operand 1: expected number 5, got %#v", mv.Operands[1])
	}
}

func TestParseLabelAndJump(t *testing.T) {
	src := "move r0 0\nstart:\nadd r0 r0 1\nbgt r0 3 end\nj start\nend:\nyield\n"
	prog := mustParse(t, src)
	if len(prog.Lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(prog.Lines))
	}
	if prog.Lines[1].Label != "start" {
		t.Fatalf("expected line 1 to declare label start, got %q", prog.Lines[1].Label)
	}
	if prog.Lines[1].Instruction != nil {
		t.Fatalf("expected a label-only line to carry no instruction")
	}
	if prog.Labels["start"] != 1 {
		t.Fatalf("expected start to resolve to line 1, got %d", prog.Labels["start"])
	}
	if prog.Labels["end"] != 5 {
		t.Fatalf("expected end to resolve to line 5, got %d", prog.Labels["end"])
	}
	jump := prog.Lines[4].Instruction
	target, ok := jump.Operands[0].(*ast.Identifier)
	if !ok || target.Name != "start" {
		t.Fatalf("j operand: expected identifier start, got %#v", jump.Operands[0])
	}
}

func TestParseAliasAndDeviceRead(t *testing.T) {
	prog := mustParse(t, "alias AC d0\nl r0 AC Setting\nyield\n")
	alias := prog.Lines[0].Instruction
	if alias.Op != catalog.OpAlias {
		t.Fatalf("expected alias opcode, got %v", alias.Op)
	}
	name, ok := alias.Operands[0].(*ast.Identifier)
	if !ok || name.Name != "AC" {
		t.Fatalf("alias operand 0: expected identifier AC, got %#v", alias.Operands[0])
	}
	dev, ok := alias.Operands[1].(*ast.Device)
	if !ok {
		t.Fatalf("alias operand 1: expected device, got %#v", alias.Operands[1])
	}
	if _, ok := dev.Ref.(ast.DeviceNumbered); !ok {
		t.Fatalf("expected a numbered device, got %#v", dev.Ref)
	}

	load := prog.Lines[1].Instruction
	if load.Op != catalog.OpL {
		t.Fatalf("expected l opcode, got %v", load.Op)
	}
	field, ok := load.Operands[2].(*ast.Identifier)
	if !ok || field.Name != "Setting" {
		t.Fatalf("l operand 2: expected bare identifier Setting, got %#v", load.Operands[2])
	}
}

func TestParseStackRoundtrip(t *testing.T) {
	prog := mustParse(t, "push 1\npush 2\npush 3\npop r0\npop r1\npop r2\nyield\n")
	if len(prog.Lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(prog.Lines))
	}
	if prog.Lines[0].Instruction.Op != catalog.OpPush {
		t.Fatalf("expected push, got %v", prog.Lines[0].Instruction.Op)
	}
	if prog.Lines[3].Instruction.Op != catalog.OpPop {
		t.Fatalf("expected pop, got %v", prog.Lines[3].Instruction.Op)
	}
}

func TestParseBatchReadWithHashAndMode(t *testing.T) {
	prog := mustParse(t, `lb r0 HASH("ThatPrefab") Setting 0`+"\nyield\n")
	lb := prog.Lines[0].Instruction
	if lb.Op != catalog.OpLb {
		t.Fatalf("expected lb, got %v", lb.Op)
	}
	hash, ok := lb.Operands[1].(*ast.Number)
	if !ok || hash.Kind != ast.NumHashString {
		t.Fatalf("lb operand 1: expected hash-string number, got %#v", lb.Operands[1])
	}
}

func TestParseQualifiedEnumLiteral(t *testing.T) {
	prog := mustParse(t, "move r0 LogicType.Setting\nyield\n")
	mv := prog.Lines[0].Instruction
	num, ok := mv.Operands[1].(*ast.Number)
	if !ok || num.Kind != ast.NumEnumName {
		t.Fatalf("expected qualified enum literal to parse as a Number, got %#v", mv.Operands[1])
	}
	if num.Raw != "LogicType.Setting" {
		t.Fatalf("expected raw text LogicType.Setting, got %q", num.Raw)
	}
}

func TestParseNamedConstant(t *testing.T) {
	prog := mustParse(t, "move r0 pi\nyield\n")
	num, ok := prog.Lines[0].Instruction.Operands[1].(*ast.Number)
	if !ok || num.Kind != ast.NumConstant {
		t.Fatalf("expected pi to parse as a named constant, got %#v", prog.Lines[0].Instruction.Operands[1])
	}
}

func TestParseHexAndBinaryLiterals(t *testing.T) {
	prog := mustParse(t, "move r0 $FF\nmove r1 %1010\nyield\n")
	hex, ok := prog.Lines[0].Instruction.Operands[1].(*ast.Number)
	if !ok || hex.Kind != ast.NumHex || hex.Value != 255 {
		t.Fatalf("expected $FF to parse as hex 255, got %#v", prog.Lines[0].Instruction.Operands[1])
	}
	bin, ok := prog.Lines[1].Instruction.Operands[1].(*ast.Number)
	if !ok || bin.Kind != ast.NumBinary || bin.Value != 10 {
		t.Fatalf("expected %%1010 to parse as binary 10, got %#v", prog.Lines[1].Instruction.Operands[1])
	}
}

func TestParseIndirectRegisterChain(t *testing.T) {
	prog := mustParse(t, "move r0 rrr2\nyield\n")
	reg, ok := prog.Lines[0].Instruction.Operands[1].(*ast.Register)
	if !ok || reg.Indirection != 2 || reg.Index != 2 {
		t.Fatalf("expected rrr2 to parse as indirection 2 index 2, got %#v", prog.Lines[0].Instruction.Operands[1])
	}
}

func TestParseUnknownOpcodeCollectsErrorAndContinues(t *testing.T) {
	prog, errs := Parse("test.ic10", "frobnicate r0\nmove r0 5\nyield\n")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if prog.Lines[0].Instruction != nil {
		t.Fatalf("expected the malformed line to carry no instruction")
	}
	mv := prog.Lines[1].Instruction
	if mv == nil || mv.Op != catalog.OpMove {
		t.Fatalf("expected parsing to recover and parse the next line, got %#v", mv)
	}
}

func TestParseDuplicateLabelIsAnError(t *testing.T) {
	_, errs := Parse("test.ic10", "start:\nmove r0 0\nstart:\nyield\n")
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-label error")
	}
}

func TestParseEmptyLinesAreCountedAsLines(t *testing.T) {
	prog := mustParse(t, "move r0 5\n\nyield\n")
	if len(prog.Lines) != 3 {
		t.Fatalf("expected 3 lines (including the blank one), got %d", len(prog.Lines))
	}
	if prog.Lines[1].Instruction != nil || prog.Lines[1].Label != "" {
		t.Fatalf("expected line 1 to be blank, got %#v", prog.Lines[1])
	}
}
