// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package vm

// Rand reproduces the legacy 55-lag subtract-with-borrow generator the
// `rand` opcode is pinned to (spec.md §4.6): deterministic replay across
// hosts matters more than statistical quality here, so this is a direct
// reimplementation rather than a wrapping of math/rand.
type Rand struct {
	seedArray [56]int32
	inext     int
	inextp    int
}

const randMBIG = 2147483647  // int32 max
const randMSEED = 161803398

// NewRand seeds the generator exactly as the legacy algorithm does: the
// special case for math.MinInt32 avoids overflow when negating the seed.
func NewRand(seed int32) *Rand {
	r := &Rand{}
	var seedAbs int32
	if seed == -2147483648 {
		seedAbs = 2147483647
	} else if seed < 0 {
		seedAbs = -seed
	} else {
		seedAbs = seed
	}

	mj := randMSEED - int64(seedAbs)
	mjMod := int32(mj % randMBIG)
	if mjMod < 0 {
		mjMod += randMBIG
	}
	r.seedArray[55] = mjMod
	mk := int32(1)
	ii := 0
	for i := 1; i <= 54; i++ {
		ii = (21 * i) % 55
		r.seedArray[ii] = mk
		mk = mjMod - mk
		if mk < 0 {
			mk += randMBIG
		}
		mjMod = r.seedArray[ii]
	}
	for k := 1; k <= 4; k++ {
		for i := 1; i <= 55; i++ {
			idx := 1 + (i+30)%55
			r.seedArray[i] -= r.seedArray[idx]
			if r.seedArray[i] < 0 {
				r.seedArray[i] += randMBIG
			}
		}
	}
	r.inext = 0
	r.inextp = 21
	return r
}

// nextSample returns the next raw value in [0, randMBIG).
func (r *Rand) nextSample() int32 {
	r.inext++
	if r.inext >= 56 {
		r.inext = 1
	}
	r.inextp++
	if r.inextp >= 56 {
		r.inextp = 1
	}
	retVal := r.seedArray[r.inext] - r.seedArray[r.inextp]
	if retVal == randMBIG {
		retVal--
	}
	if retVal < 0 {
		retVal += randMBIG
	}
	r.seedArray[r.inext] = retVal
	return retVal
}

// Float64 returns the next pseudo-random value in [0, 1), matching the
// `rand` opcode's contract.
func (r *Rand) Float64() float64 {
	return float64(r.nextSample()) * (1.0 / randMBIG)
}
