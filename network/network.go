// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package network implements the cable-network layer (spec.md §3, §4.5,
// component C5): devices group into networks carrying a Power edge, a
// Data edge, or both, and every data network exposes eight shared
// scalar channels batch reads and writes operate on.
package network

import (
	"math"

	mapset "github.com/deckarep/golang-set"
)

// channelCount is the fixed width of a network's shared scalar channel
// bank (spec.md §3, "Network": "channels: [f64; 8]").
const channelCount = 8

// ErrChannelIndexOutOfRange is returned by GetChannel/SetChannel for an
// index outside 0..7.
type ErrChannelIndexOutOfRange struct{ Index int }

func (e *ErrChannelIndexOutOfRange) Error() string {
	return "network: channel index out of range"
}

// Network groups device ids under a Power edge, a Data edge, or both,
// and owns the eight shared scalar channels data-visible devices read
// and write (spec.md §3, "Network").
type Network struct {
	ID           uint32
	DataDevices  mapset.Set
	PowerDevices mapset.Set
	channels     [channelCount]float64
}

// New returns an empty network with every channel initialized to NaN
// (spec.md §3: "channels initialized to NaN").
func New(id uint32) *Network {
	n := &Network{
		ID:           id,
		DataDevices:  mapset.NewSet(),
		PowerDevices: mapset.NewSet(),
	}
	for i := range n.channels {
		n.channels[i] = math.NaN()
	}
	return n
}

// ConnectionKind is the per-edge cable type a device may wire into a
// network with (spec.md §3, "Network": "per-edge type {Power, Data,
// PowerAndData}").
type ConnectionKind uint8

const (
	Power ConnectionKind = iota
	Data
	PowerAndData
)

// Attach wires deviceID into the network with the given edge kind. A
// device already present under the other set is left there too — a
// single device may carry a Power edge on one network and a Data edge on
// another, and PowerAndData puts it in both sets of the same network
// (spec.md §3's disjointness invariant is per-set, not per-device).
func (n *Network) Attach(deviceID uint32, kind ConnectionKind) {
	switch kind {
	case Power:
		n.PowerDevices.Add(deviceID)
	case Data:
		n.DataDevices.Add(deviceID)
	case PowerAndData:
		n.PowerDevices.Add(deviceID)
		n.DataDevices.Add(deviceID)
	}
}

// Detach removes deviceID from both the data and power sets of this
// network, used both by explicit disconnects and by the object graph's
// remove-object cascade.
func (n *Network) Detach(deviceID uint32) {
	n.DataDevices.Remove(deviceID)
	n.PowerDevices.Remove(deviceID)
}

// DataVisible returns every other data-connected device id visible to
// source (spec.md §4.5: "data_visible(source) returns every other data
// member"). source need not itself be data-connected; an empty slice
// results if it is not.
func (n *Network) DataVisible(source uint32) []uint32 {
	if !n.DataDevices.Contains(source) {
		return nil
	}
	out := make([]uint32, 0, n.DataDevices.Cardinality())
	for v := range n.DataDevices.Iter() {
		id := v.(uint32)
		if id != source {
			out = append(out, id)
		}
	}
	return out
}

// AllDataDevices returns every data-connected device id, including
// source-agnostic callers like batch ops that iterate the whole network.
func (n *Network) AllDataDevices() []uint32 {
	out := make([]uint32, 0, n.DataDevices.Cardinality())
	for v := range n.DataDevices.Iter() {
		out = append(out, v.(uint32))
	}
	return out
}

// HasPower reports whether deviceID has a power edge on this network —
// gates the computed Power logic field without granting data visibility
// (spec.md §4.5: "Power-only membership gates the computed Power logic
// field but never exposes data to the device").
func (n *Network) HasPower(deviceID uint32) bool {
	return n.PowerDevices.Contains(deviceID)
}

// GetChannel reads channel ch (0..7).
func (n *Network) GetChannel(ch int) (float64, error) {
	if ch < 0 || ch >= channelCount {
		return 0, &ErrChannelIndexOutOfRange{Index: ch}
	}
	return n.channels[ch], nil
}

// SetChannel writes channel ch (0..7). Concurrent-tick ordering is the
// orchestrator's responsibility (spec.md §5: "the last writer in a tick
// wins"); Network itself has no notion of tick order.
func (n *Network) SetChannel(ch int, v float64) error {
	if ch < 0 || ch >= channelCount {
		return &ErrChannelIndexOutOfRange{Index: ch}
	}
	n.channels[ch] = v
	return nil
}
