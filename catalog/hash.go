// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import (
	"hash/crc32"

	lru "github.com/hashicorp/golang-lru"
)

// hashCacheSize bounds the memoized name→hash cache. Prefab and item names
// are a small, effectively-closed vocabulary per save; a few thousand
// entries covers any reasonable mod set with room to spare.
const hashCacheSize = 4096

var hashCache *lru.Cache

func init() {
	c, err := lru.New(hashCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which hashCacheSize
		// never is.
		panic(err)
	}
	hashCache = c
}

// HashString computes the signed 32-bit prefab/name identity hash
// (spec.md §4.2, "PrefabHash / NameHash"). The underlying checksum is the
// CRC-32 (IEEE 802.3) of the UTF-8 encoding, reinterpreted as a signed
// int32 — this exact bit pattern is load-bearing, since save files and
// in-circuit HASH("...") literals must agree with it byte for byte, so it
// is implemented directly against the standard library's hash/crc32
// rather than a third-party hashing package.
func HashString(name string) int32 {
	if v, ok := hashCache.Get(name); ok {
		return v.(int32)
	}
	sum := crc32.ChecksumIEEE([]byte(name))
	h := int32(sum)
	hashCache.Add(name, h)
	return h
}
