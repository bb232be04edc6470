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
	"testing"
)

// TestApproxEqualOracle pins down the "ap"/"na" tolerance formula chosen
// to resolve the spec's open tolerance question: a scale-relative check
// against the larger magnitude operand, floored at the machine epsilon so
// comparisons near zero don't divide by an arbitrarily small number.
func TestApproxEqualOracle(t *testing.T) {
	cases := []struct {
		name      string
		a, b, tol float64
		want      bool
	}{
		{"exact equal", 5, 5, 0, true},
		{"zero tolerance differs", 5, 5.1, 0, false},
		{"within relative tolerance", 100, 100.5, 0.01, true},
		{"outside relative tolerance", 100, 110, 0.01, false},
		{"both zero", 0, 0, 0, true},
		{"near zero uses epsilon floor", 0, 1e-10, 0.01, true},
		{"negative values", -10, -10.05, 0.01, true},
		{"nan never approx equal", math.NaN(), 1, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := approxEqual(c.a, c.b, c.tol)
			if got != c.want {
				t.Errorf("approxEqual(%v, %v, %v) = %v, want %v", c.a, c.b, c.tol, got, c.want)
			}
		})
	}
}

func TestSapInstructionUsesApproxEqual(t *testing.T) {
	ic, env := loadIC(t, "sap r0 100 100.5 0.01\nsna r1 100 110 0.01\nyield\n")
	if _, ferr := ic.Run(env, 100); ferr != nil {
		t.Fatalf("unexpected fault: %v", ferr)
	}
	if ic.Registers[0] != 1 {
		t.Fatalf("sap: expected 1, got %v", ic.Registers[0])
	}
	if ic.Registers[1] != 1 {
		t.Fatalf("sna: expected 1 (values are not approx equal), got %v", ic.Registers[1])
	}
}

func TestSnanDetectsNaN(t *testing.T) {
	ic, env := loadIC(t, "move r0 nan\nsnan r1 r0\nsnanz r2 r0\nyield\n")
	if _, ferr := ic.Run(env, 100); ferr != nil {
		t.Fatalf("unexpected fault: %v", ferr)
	}
	if ic.Registers[1] != 1 {
		t.Fatalf("snan: expected 1, got %v", ic.Registers[1])
	}
	if ic.Registers[2] != 0 {
		t.Fatalf("snanz: expected 0 (complement of snan), got %v", ic.Registers[2])
	}
}
