// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import "testing"

func TestParseOpcodeRoundTrip(t *testing.T) {
	names := []string{
		"add", "sub", "select", "sqrt", "atan2", "rand", "trunc",
		"and", "srl", "seq", "snanz", "sna",
		"beq", "bnan", "breq", "brnan",
		"j", "jr", "jal", "beqal", "bnanal",
		"push", "pop", "peek", "poke", "move",
		"l", "s", "ls", "ss", "lr", "ld", "sd",
		"lb", "sb", "lbn", "sbn", "lbs", "sbs",
		"nop", "yield", "hcf", "sleep",
		"define", "alias", "label",
	}
	for _, name := range names {
		op, ok := ParseOpcode(name)
		if !ok {
			t.Errorf("ParseOpcode(%q): not found", name)
			continue
		}
		if got := op.String(); got != name {
			t.Errorf("Opcode(%q).String() = %q, want %q", name, got, name)
		}
	}
}

func TestParseOpcodeUnknown(t *testing.T) {
	if _, ok := ParseOpcode("frobnicate"); ok {
		t.Fatal("expected unknown mnemonic to fail")
	}
}

func TestParseOpcodeCaseSensitive(t *testing.T) {
	if _, ok := ParseOpcode("ADD"); ok {
		t.Fatal("opcode mnemonics must be case-sensitive (lowercase only)")
	}
}
