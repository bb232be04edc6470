// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import "math"

// namedConstants holds the f64-valued named constants of spec.md §4.1:
// distinct from enums, they yield a float64 and appear only where a
// number is accepted.
var namedConstants = map[string]float64{
	"pi":      math.Pi,
	"deg2rad": math.Pi / 180,
	"rad2deg": 180 / math.Pi,
	"epsilon": epsilonValue,
	"nan":     math.NaN(),
	"pinf":    math.Inf(1),
	"ninf":    math.Inf(-1),
}

// epsilonValue matches the float32 machine epsilon the original game uses
// for its "ap"/"na" approximate-equality family (spec.md §4.6).
const epsilonValue = 1.19209290e-07

// LookupConstant resolves a named numeric constant. ok is false if name is
// not a known constant.
func LookupConstant(name string) (float64, bool) {
	v, ok := namedConstants[name]
	return v, ok
}

// Epsilon is the tolerance base used by the "ap"/"na" instruction family.
func Epsilon() float64 { return epsilonValue }
