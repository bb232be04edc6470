// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"testing"

	"github.com/ic10sim/ic10sim/ic10/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertTypes(t *testing.T, got []token.Type, want ...token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexerRegistersAndDevices(t *testing.T) {
	l := New("", "move r0 5\nl r1 d0 Setting\nalias AC dr2")
	toks := l.Tokenize()
	got := typesOf(toks)
	want := []token.Type{
		token.IDENT, token.REGISTER, token.NUMBER, token.NEWLINE,
		token.IDENT, token.REGISTER, token.DEVICE, token.IDENT, token.NEWLINE,
		token.IDENT, token.IDENT, token.DEVICE, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, got, want...)
}

func TestLexerSpAndRa(t *testing.T) {
	toks := New("", "push sp\npush ra").Tokenize()
	want := []token.Type{
		token.IDENT, token.REGISTER, token.NEWLINE,
		token.IDENT, token.REGISTER, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, typesOf(toks), want...)
}

func TestLexerIndirectRegisterChain(t *testing.T) {
	tok := New("", "rrr2").NextToken()
	if tok.Type != token.REGISTER || tok.Literal != "rrr2" {
		t.Fatalf("got %v %q, want REGISTER rrr2", tok.Type, tok.Literal)
	}
}

func TestLexerNumbers(t *testing.T) {
	l := New("", "move r0 -5.5\nmove r1 $FF\nmove r2 %1010")
	toks := l.Tokenize()
	want := []token.Type{
		token.IDENT, token.REGISTER, token.NUMBER, token.NEWLINE,
		token.IDENT, token.REGISTER, token.HEXNUMBER, token.NEWLINE,
		token.IDENT, token.REGISTER, token.BINNUMBER, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, typesOf(toks), want...)

	if toks[2].Literal != "-5.5" {
		t.Fatalf("number literal = %q, want -5.5", toks[2].Literal)
	}
	if toks[6].Literal != "FF" {
		t.Fatalf("hex literal = %q, want FF", toks[6].Literal)
	}
	if toks[10].Literal != "1010" {
		t.Fatalf("bin literal = %q, want 1010", toks[10].Literal)
	}
}

func TestLexerHashString(t *testing.T) {
	tok := New("", `HASH("ItemSteel")`).NextToken()
	if tok.Type != token.HASHSTRING || tok.Literal != "ItemSteel" {
		t.Fatalf("got %v %q, want HASHSTRING ItemSteel", tok.Type, tok.Literal)
	}
}

func TestLexerEnumLiteral(t *testing.T) {
	toks := New("", "l r0 d0 LogicType.Setting").Tokenize()
	want := []token.Type{
		token.IDENT, token.REGISTER, token.DEVICE, token.IDENT, token.DOT, token.IDENT, token.NEWLINE, token.EOF,
	}
	assertTypes(t, typesOf(toks), want...)
}

func TestLexerComment(t *testing.T) {
	toks := New("", "yield # this is a comment").Tokenize()
	want := []token.Type{token.IDENT, token.COMMENT, token.NEWLINE, token.EOF}
	assertTypes(t, typesOf(toks), want...)
	if toks[1].Literal != " this is a comment" {
		t.Fatalf("comment literal = %q", toks[1].Literal)
	}
}

func TestLexerLabel(t *testing.T) {
	toks := New("", "start:\nj start").Tokenize()
	want := []token.Type{
		token.IDENT, token.COLON, token.NEWLINE,
		token.IDENT, token.IDENT, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, typesOf(toks), want...)
}

func TestLexerAppendsTrailingNewline(t *testing.T) {
	toks := New("", "yield").Tokenize()
	want := []token.Type{token.IDENT, token.NEWLINE, token.EOF}
	assertTypes(t, typesOf(toks), want...)
}
