// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for IC10 source text.
//
// Design principles (carried over from the language this package was
// adapted from):
//   - ASCII-only input
//   - single-pass, no backtracking
//   - literal sub-kinds (REGISTER, DEVICE, HEXNUMBER, BINNUMBER,
//     HASHSTRING) are assigned by the lexer itself rather than left for
//     the parser to reclassify plain identifiers
package token

import "fmt"

// Token represents a single lexical token.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// Position tracks source location for diagnostics.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the set of lexical token kinds recognized in IC10 source.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE // line separator; significant because IC10 is one-instruction-per-line
	COMMENT // '#' to end of line

	IDENT      // opcode mnemonics, label names, define/alias names, enum member names
	NUMBER     // decimal float literal: 3.14, 42, -5
	HEXNUMBER  // $-prefixed hex literal: $FF
	BINNUMBER  // %-prefixed binary literal: %1010
	STRING     // quoted string, only legal inside HASH(...)
	HASHSTRING // a complete HASH("...") literal; Literal is the unescaped argument
	REGISTER   // r0 .. r17, sp, ra, or indirect chains like rr2
	DEVICE     // db, d0..d5, or indirect chains like drr2

	COLON // label declaration terminator, or device:channel separator
	DOT   // enum-literal separator: LogicType.Setting
	LPAREN
	RPAREN
)

var typeNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	NEWLINE:    "NEWLINE",
	COMMENT:    "COMMENT",
	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	HEXNUMBER:  "HEXNUMBER",
	BINNUMBER:  "BINNUMBER",
	STRING:     "STRING",
	HASHSTRING: "HASHSTRING",
	REGISTER:   "REGISTER",
	DEVICE:     "DEVICE",
	COLON:      ":",
	DOT:        ".",
	LPAREN:     "(",
	RPAREN:     ")",
}

// String returns the display name of a token type.
func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}
