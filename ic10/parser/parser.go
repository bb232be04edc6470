// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser turns IC10 source text into an ic10/ast.Program.
//
// Design overview:
//
//   - One physical source line maps to exactly one ast.Line, whether it is
//     blank, label-only, or carries an instruction — line indices are jump
//     targets, so the mapping must be stable and total.
//   - Errors are collected rather than aborting: a malformed line is
//     skipped up to its terminating newline and parsing resumes on the
//     next line, so one typo does not hide the rest of the program's
//     diagnostics.
//   - define/alias are recognised here only as ordinary instructions —
//     they are runtime pseudo-instructions the interpreter executes, not
//     a compile-time symbol table.
package parser

import (
	"fmt"
	"strconv"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/ic10/ast"
	"github.com/ic10sim/ic10sim/ic10/lexer"
	"github.com/ic10sim/ic10sim/ic10/token"
)

// ParseError is a single non-fatal compile-time diagnostic (spec.md §7,
// "ParseError").
type ParseError struct {
	Line  int
	Start int
	End   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Start, e.Msg)
}

// Parser holds the mutable state for a single parse run.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	peek   token.Token
	errors []*ParseError
}

func newParser(filename, source string) *Parser {
	p := &Parser{lex: lexer.New(filename, source)}
	p.advance()
	p.advance()
	return p
}

// Parse tokenises source and returns the resulting program together with
// any ParseErrors collected along the way. The program is always non-nil
// and always has one Line per physical source line, even when errors were
// recorded — callers decide whether any errors are fatal to loading.
func Parse(filename, source string) (*ast.Program, []*ParseError) {
	p := newParser(filename, source)
	prog := p.parseProgram()
	if err := prog.ResolveLabels(); err != nil {
		p.errors = append(p.errors, &ParseError{Msg: err.Error()})
	}
	return prog, p.errors
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) addError(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Line:  pos.Line,
		Start: pos.Column,
		End:   pos.Column,
		Msg:   fmt.Sprintf(format, args...),
	})
}

// skipToLineEnd discards tokens up to and including the line's terminating
// NEWLINE, or up to EOF — used for error recovery.
func (p *Parser) skipToLineEnd() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		p.advance()
	}
	if p.curTokenIs(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	var lines []*ast.Line
	for idx := 0; !p.curTokenIs(token.EOF); idx++ {
		lines = append(lines, p.parseLine(idx))
	}
	return &ast.Program{Lines: lines}
}

func (p *Parser) parseLine(idx int) *ast.Line {
	line := &ast.Line{Index: idx, Pos: p.cur.Pos}

	if p.curTokenIs(token.COMMENT) {
		p.advance()
	}
	if p.curTokenIs(token.NEWLINE) {
		p.advance()
		return line
	}
	if p.curTokenIs(token.EOF) {
		return line
	}

	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.COLON) {
		line.Label = p.cur.Literal
		p.advance() // identifier
		p.advance() // colon
	}

	if p.curTokenIs(token.COMMENT) {
		p.advance()
	}
	if p.curTokenIs(token.NEWLINE) {
		p.advance()
		return line
	}
	if p.curTokenIs(token.EOF) {
		return line
	}

	instrPos := p.cur.Pos
	if !p.curTokenIs(token.IDENT) {
		p.addError(instrPos, "expected an opcode, got %s %q", p.cur.Type, p.cur.Literal)
		p.skipToLineEnd()
		return line
	}
	op, ok := catalog.ParseOpcode(p.cur.Literal)
	if !ok {
		p.addError(instrPos, "unknown opcode %q", p.cur.Literal)
		p.skipToLineEnd()
		return line
	}
	p.advance()

	var operands []ast.Operand
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) && !p.curTokenIs(token.COMMENT) {
		operand, err := p.parseOperand()
		if err != nil {
			p.addError(p.cur.Pos, "%v", err)
			p.skipToLineEnd()
			return line
		}
		operands = append(operands, operand)
	}
	if p.curTokenIs(token.COMMENT) {
		p.advance()
	}
	if p.curTokenIs(token.NEWLINE) {
		p.advance()
	}

	line.Instruction = &ast.Instruction{Op: op, Operands: operands, Pos: instrPos}
	return line
}

func (p *Parser) parseOperand() (ast.Operand, error) {
	switch p.cur.Type {
	case token.REGISTER:
		return p.parseRegisterOperand()
	case token.DEVICE:
		return p.parseDeviceOperand()
	case token.NUMBER:
		return p.parseDecimalNumber()
	case token.HEXNUMBER:
		return p.parseHexNumber()
	case token.BINNUMBER:
		return p.parseBinNumber()
	case token.HASHSTRING:
		return p.parseHashString()
	case token.IDENT:
		return p.parseIdentOperand()
	default:
		return nil, fmt.Errorf("unexpected token %s %q", p.cur.Type, p.cur.Literal)
	}
}

func (p *Parser) parseRegisterOperand() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	indirection, index, err := parseRegisterLiteral(lit)
	if err != nil {
		return nil, err
	}
	return &ast.Register{Indirection: indirection, Index: index, Pos: pos}, nil
}

// parseRegisterLiteral decodes "sp", "ra", or an r+[0-9]+ chain such as
// "r2"/"rr2"/"rrr2" into an indirection count and a base register index.
func parseRegisterLiteral(lit string) (indirection int, index uint8, err error) {
	switch lit {
	case "sp":
		return 0, 16, nil
	case "ra":
		return 0, 17, nil
	}
	i := 0
	for i < len(lit) && lit[i] == 'r' {
		i++
	}
	if i == 0 || i == len(lit) {
		return 0, 0, fmt.Errorf("malformed register literal %q", lit)
	}
	n, convErr := strconv.Atoi(lit[i:])
	if convErr != nil || n < 0 || n > 255 {
		return 0, 0, fmt.Errorf("register index out of range in %q", lit)
	}
	return i - 1, uint8(n), nil
}

func (p *Parser) parseDeviceOperand() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	ref, err := parseDeviceRefLiteral(lit)
	if err != nil {
		return nil, err
	}
	dev := &ast.Device{Ref: ref, Pos: pos}
	if p.curTokenIs(token.COLON) {
		p.advance()
		if !p.curTokenIs(token.NUMBER) {
			return nil, fmt.Errorf("expected a connection index after ':'")
		}
		n, convErr := strconv.Atoi(p.cur.Literal)
		if convErr != nil || n < 0 {
			return nil, fmt.Errorf("invalid connection index %q", p.cur.Literal)
		}
		p.advance()
		dev.Connection = &n
	}
	return dev, nil
}

func parseDeviceRefLiteral(lit string) (ast.DeviceRef, error) {
	if lit == "db" {
		return ast.DeviceSelf{}, nil
	}
	rest := lit[1:]
	if len(rest) == 1 && rest[0] >= '0' && rest[0] <= '5' {
		return ast.DeviceNumbered{Index: int(rest[0] - '0')}, nil
	}
	indirection, index, err := parseRegisterLiteral(rest)
	if err != nil {
		return nil, fmt.Errorf("malformed device literal %q", lit)
	}
	return ast.DeviceIndirect{Indirection: indirection, Index: index}, nil
}

func (p *Parser) parseDecimalNumber() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed number %q", lit)
	}
	return &ast.Number{Kind: ast.NumDecimal, Value: v, Raw: lit, Pos: pos}, nil
}

func (p *Parser) parseHexNumber() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	n, err := strconv.ParseInt(lit, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed hex literal $%s", lit)
	}
	return &ast.Number{Kind: ast.NumHex, Value: float64(n), Raw: "$" + lit, Pos: pos}, nil
}

func (p *Parser) parseBinNumber() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	n, err := strconv.ParseInt(lit, 2, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed binary literal %%%s", lit)
	}
	return &ast.Number{Kind: ast.NumBinary, Value: float64(n), Raw: "%" + lit, Pos: pos}, nil
}

func (p *Parser) parseHashString() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos
	p.advance()
	h := catalog.HashString(lit)
	return &ast.Number{Kind: ast.NumHashString, Value: float64(h), Raw: fmt.Sprintf("HASH(%q)", lit), Pos: pos}, nil
}

// enumQualifiers lets a source program spell out an enum literal fully,
// e.g. "LogicType.Setting", resolving to a Number at parse time rather
// than the usual bare-identifier Type operand resolved at execution time.
var enumQualifiers = map[string]func(string) (float64, bool){
	"LogicType": func(name string) (float64, bool) {
		v, ok := catalog.ParseLogicType(name)
		return float64(v), ok
	},
	"SlotLogicType": func(name string) (float64, bool) {
		v, ok := catalog.ParseSlotLogicType(name)
		return float64(v), ok
	},
	"BatchMode": func(name string) (float64, bool) {
		v, ok := catalog.ParseBatchMode(name)
		return float64(v), ok
	},
	"ReagentMode": func(name string) (float64, bool) {
		v, ok := catalog.ParseReagentMode(name)
		return float64(v), ok
	},
}

func (p *Parser) parseIdentOperand() (ast.Operand, error) {
	lit, pos := p.cur.Literal, p.cur.Pos

	if v, ok := catalog.LookupConstant(lit); ok {
		p.advance()
		return &ast.Number{Kind: ast.NumConstant, Value: v, Raw: lit, Pos: pos}, nil
	}

	if resolve, ok := enumQualifiers[lit]; ok && p.peekTokenIs(token.DOT) {
		p.advance() // qualifier
		p.advance() // dot
		if !p.curTokenIs(token.IDENT) {
			return nil, fmt.Errorf("expected an enum member name after %q.", lit)
		}
		name := p.cur.Literal
		p.advance()
		value, ok := resolve(name)
		if !ok {
			return nil, fmt.Errorf("unknown %s member %q", lit, name)
		}
		return &ast.Number{Kind: ast.NumEnumName, Value: value, Raw: lit + "." + name, Pos: pos}, nil
	}

	p.advance()
	return &ast.Identifier{Name: lit, Pos: pos}, nil
}
