// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// access is a field's read/write mode, parsed from the prefab template's
// "R"/"W"/"RW" string (spec.md §3, "LogicField").
type access uint8

const (
	accessRead access = 1 << iota
	accessWrite
)

func parseAccess(s string) access {
	switch s {
	case "R":
		return accessRead
	case "W":
		return accessWrite
	case "RW":
		return accessRead | accessWrite
	default:
		return 0
	}
}

// logicField is one stored `LogicType → {access, value}` entry
// (spec.md §3, "LogicField").
type logicField struct {
	access access
	value  float64
}

// Logicable is the typed-field capability (spec.md §3, "Logicable").
type Logicable struct {
	fields map[catalog.LogicType]*logicField
	modes  map[uint32]string
}

// NewLogicable builds a Logicable facet from a prefab's logic-field
// templates and optional discrete-mode names.
func NewLogicable(templates []catalog.LogicFieldTemplate, modes map[uint32]string) *Logicable {
	l := &Logicable{
		fields: make(map[catalog.LogicType]*logicField, len(templates)),
		modes:  modes,
	}
	for _, t := range templates {
		l.fields[t.Field] = &logicField{access: parseAccess(t.Access)}
	}
	return l
}

// CanRead reports whether field is declared on this object with read
// access (spec.md §4.4, "can_read(field)").
func (l *Logicable) CanRead(field catalog.LogicType) bool {
	f, ok := l.fields[field]
	return ok && f.access&accessRead != 0
}

// CanWrite reports whether field accepts a store without force.
func (l *Logicable) CanWrite(field catalog.LogicType) bool {
	f, ok := l.fields[field]
	return ok && f.access&accessWrite != 0
}

// Declared reports whether field has a template entry at all, regardless
// of access mode — used to distinguish ErrDeviceHasNoField from
// ErrReadOnlyField/ErrWriteOnlyField at the orchestrator boundary.
func (l *Logicable) Declared(field catalog.LogicType) bool {
	_, ok := l.fields[field]
	return ok
}

// Get returns the raw stored value for field, 0 if never written.
// Computed fields (Power, Error, PrefabHash, NameHash, ReferenceId,
// LineNumber) are resolved by the orchestrator before falling back here
// (spec.md §4.4, "reads computed fields first... then the stored field
// map").
func (l *Logicable) Get(field catalog.LogicType) float64 {
	if f, ok := l.fields[field]; ok {
		return f.value
	}
	return 0
}

// Set stores value under field. Returns false if the field is not
// writable and force is false. Set does not itself check for computed
// fields; the orchestrator intercepts those before reaching here.
func (l *Logicable) Set(field catalog.LogicType, value float64, force bool) bool {
	f, ok := l.fields[field]
	if !ok {
		if !force {
			return false
		}
		f = &logicField{access: accessRead | accessWrite}
		l.fields[field] = f
	}
	if !force && f.access&accessWrite == 0 {
		return false
	}
	f.value = value
	return true
}

// ModeName returns the human-readable name for a discrete Setting value,
// if the prefab declares one (spec.md §3, "Logicable": "optional mapping
// u32 → string of modes").
func (l *Logicable) ModeName(value uint32) (string, bool) {
	if l.modes == nil {
		return "", false
	}
	name, ok := l.modes[value]
	return name, ok
}

// Memory is the MemoryReadable/MemoryWritable capability: a fixed-length
// sequence of f64 addressed by 0-based index (spec.md §3).
type Memory struct {
	cells []float64
}

// NewMemory allocates a Memory facet of the given fixed size.
func NewMemory(size int) *Memory {
	return &Memory{cells: make([]float64, size)}
}

// Len returns the fixed memory size.
func (m *Memory) Len() int { return len(m.cells) }

// Read returns the value at address and whether address was in range.
func (m *Memory) Read(address int) (float64, bool) {
	if address < 0 || address >= len(m.cells) {
		return 0, false
	}
	return m.cells[address], true
}

// Write stores value at address, reporting whether address was in range.
func (m *Memory) Write(address int, value float64) bool {
	if address < 0 || address >= len(m.cells) {
		return false
	}
	m.cells[address] = value
	return true
}

// Clear zeroes every cell (the `ClearMemory` logic field's effect).
func (m *Memory) Clear() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}
