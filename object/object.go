// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package object implements the heterogeneous object graph (spec.md §3,
// §4.4, component C4): every device, item, and human in the simulated
// world is one Object distinguished only by which Capabilities it
// carries. Polymorphism is over the capability view, never a runtime
// type switch (spec.md Design Notes §9).
package object

import "github.com/ic10sim/ic10sim/catalog"

// ID is a stable, VM-wide object identifier (spec.md §3, "id: u32").
type ID uint32

// hashedName pairs a user-facing string with its signed-32 CRC32 hash,
// recomputed whenever the string changes (spec.md §3: "hash recomputed
// on set").
type hashedName struct {
	value string
	hash  int32
}

func newHashedName(value string) hashedName {
	return hashedName{value: value, hash: catalog.HashString(value)}
}

func (h *hashedName) set(value string) {
	h.value = value
	h.hash = catalog.HashString(value)
}

// Object is the universal node of the graph (spec.md §3, "Object"). Its
// capability fields are non-nil exactly for the facets the owning prefab
// template declares; Capabilities() exposes them as a borrowed view so
// callers never have to downcast.
type Object struct {
	id     ID
	prefab hashedName
	name   hashedName

	storage          *Storage
	logicable        *Logicable
	memoryReadable   *Memory
	memoryWritable   *Memory
	device           *Device
	item             *Item
	human            *Human
	circuitHolder    *CircuitHolder
	integratedCircuit *IntegratedCircuit
}

// New builds an Object from a prefab template. The template's variant
// (spec.md §4.2, TemplateKind) determines which capability facets are
// constructed; callers that need a Device, CircuitHolder, etc. wire them
// in afterward via the As* helpers since a template alone does not
// know the runtime id of connected devices or housed chips.
func New(id ID, entry *catalog.PrefabEntry) *Object {
	o := &Object{
		id:     id,
		prefab: newHashedName(entry.Name),
		name:   newHashedName(entry.Name),
	}
	if entry.Hash != 0 {
		o.prefab.hash = entry.Hash
	}

	if entry.HasSlots() {
		o.storage = NewStorage(id, entry.Slots)
	}
	if entry.HasLogic() {
		o.logicable = NewLogicable(entry.LogicFields, entry.Modes)
	}
	if entry.HasDevice() {
		o.device = NewDevice(entry.Device)
	}
	if entry.HasMemory() {
		o.memoryReadable = NewMemory(entry.MemorySize)
		o.memoryWritable = o.memoryReadable
	}
	if entry.HasItem() {
		o.item = NewItem(entry.Item)
	}
	return o
}

// ID returns the object's stable identifier.
func (o *Object) ID() ID { return o.id }

// PrefabName returns the prefab this object was instantiated from.
func (o *Object) PrefabName() string { return o.prefab.value }

// PrefabHash returns the signed-32 CRC32 of the prefab name.
func (o *Object) PrefabHash() int32 { return o.prefab.hash }

// Name returns the user-assignable display name.
func (o *Object) Name() string { return o.name.value }

// NameHash returns the signed-32 CRC32 of the current name.
func (o *Object) NameHash() int32 { return o.name.hash }

// SetName assigns a new display name, recomputing its hash.
func (o *Object) SetName(name string) { o.name.set(name) }

// AsHuman attaches a Human capability, used for player-avatar objects
// that have no prefab-driven template (spec.md §3, "Human").
func (o *Object) AsHuman(h *Human) { o.human = h }

// AsDevice attaches a Device capability independent of the prefab's
// TemplateKind routing, for templates like a chip housing that are both
// Storage (the chip slot) and Device (the housing's own network
// endpoints) — a combination the tagged-union TemplateKind intentionally
// keeps orthogonal rather than multiplying out every facet combination
// into its own variant (spec.md §4.2).
func (o *Object) AsDevice(d *Device) { o.device = d }

// AsCircuitHolder attaches a CircuitHolder capability to an object whose
// template declares a ProgrammableChip slot (spec.md §3, "CircuitHolder").
func (o *Object) AsCircuitHolder(h *CircuitHolder) { o.circuitHolder = h }

// AsIntegratedCircuit attaches the IntegratedCircuit capability to the
// chip object itself, distinct from the housing's CircuitHolder facet.
func (o *Object) AsIntegratedCircuit(ic *IntegratedCircuit) { o.integratedCircuit = ic }

// Capabilities returns a snapshot view of every facet this object
// carries; absent facets are nil (spec.md §3, "Capabilities").
func (o *Object) Capabilities() Capabilities {
	return Capabilities{
		Storage:           o.storage,
		Logicable:         o.logicable,
		MemoryReadable:    o.memoryReadable,
		MemoryWritable:    o.memoryWritable,
		Device:            o.device,
		Item:              o.item,
		Human:             o.human,
		CircuitHolder:     o.circuitHolder,
		IntegratedCircuit: o.integratedCircuit,
	}
}
