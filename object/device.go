// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// pinCount is the fixed width of a Device's pin table (spec.md §3,
// "Device": "optional six-slot pin table").
const pinCount = 6

// Connection is one cable endpoint a Device exposes (spec.md §3,
// "connection list").
type Connection struct {
	NetworkID uint32
	Connected bool
}

// Device is the network/pin-addressable capability (spec.md §3,
// "Device"). The pin table maps pin index (0..5) to a referenced object
// id; HasPins is false for devices whose template declares no pins, in
// which case every Pins entry is left nil.
type Device struct {
	Connections []Connection
	HasPins     bool
	Pins        [pinCount]*ID

	Atmosphere bool
	Reagents   bool
	Mode       uint32
	Lock       bool
	Open       bool
	On         bool
	Activate   bool
}

// NewDevice builds a Device facet from a prefab's device template.
func NewDevice(t *catalog.DeviceTemplate) *Device {
	d := &Device{
		Connections: make([]Connection, t.Connections),
		HasPins:     t.HasPins,
	}
	return d
}

// Pin returns the object id wired into pin, or (0, false) if empty or out
// of range.
func (d *Device) Pin(pin int) (ID, bool) {
	if pin < 0 || pin >= pinCount || d.Pins[pin] == nil {
		return 0, false
	}
	return *d.Pins[pin], true
}

// SetPin wires id into pin; pin must be 0..5.
func (d *Device) SetPin(pin int, id ID) bool {
	if pin < 0 || pin >= pinCount {
		return false
	}
	v := id
	d.Pins[pin] = &v
	return true
}

// ClearPin empties pin.
func (d *Device) ClearPin(pin int) {
	if pin >= 0 && pin < pinCount {
		d.Pins[pin] = nil
	}
}

// ClearPinsReferencing removes id from every pin that references it,
// used by the graph's remove-object cascade.
func (d *Device) ClearPinsReferencing(id ID) {
	for i, p := range d.Pins {
		if p != nil && *p == id {
			d.Pins[i] = nil
		}
	}
}

// ConnectionCount returns the number of cable endpoints this device
// exposes.
func (d *Device) ConnectionCount() int { return len(d.Connections) }

// Connect wires connection index to a network id.
func (d *Device) Connect(index int, networkID uint32) bool {
	if index < 0 || index >= len(d.Connections) {
		return false
	}
	d.Connections[index] = Connection{NetworkID: networkID, Connected: true}
	return true
}

// Disconnect clears connection index.
func (d *Device) Disconnect(index int) {
	if index >= 0 && index < len(d.Connections) {
		d.Connections[index] = Connection{}
	}
}

// NetworkIDs returns the ids of every network this device currently has a
// live endpoint on.
func (d *Device) NetworkIDs() []uint32 {
	ids := make([]uint32, 0, len(d.Connections))
	for _, c := range d.Connections {
		if c.Connected {
			ids = append(ids, c.NetworkID)
		}
	}
	return ids
}
