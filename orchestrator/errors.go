// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package orchestrator

import "fmt"

// VMErrorKind is the closed set of host-visible orchestrator faults
// (spec.md §7, "VMError"). Unlike ICError these never arise mid-tick —
// they are returned directly from the embedding API calls the host
// makes outside of tick/step.
type VMErrorKind uint8

const (
	ErrUnknownID VMErrorKind = iota
	ErrIDInUse
	ErrDuplicateIDs
	ErrNotADevice
	ErrNotStorage
	ErrNotAnItem
	ErrNotProgrammable
	ErrDeviceNotVisible
	ErrInvalidNetwork
)

func (k VMErrorKind) String() string {
	switch k {
	case ErrUnknownID:
		return "unknown id"
	case ErrIDInUse:
		return "id in use"
	case ErrDuplicateIDs:
		return "duplicate ids"
	case ErrNotADevice:
		return "not a device"
	case ErrNotStorage:
		return "not storage"
	case ErrNotAnItem:
		return "not an item"
	case ErrNotProgrammable:
		return "not programmable"
	case ErrDeviceNotVisible:
		return "device not visible"
	case ErrInvalidNetwork:
		return "invalid network"
	default:
		return "unknown vm error"
	}
}

// VMError is a host-visible orchestrator fault (spec.md §7, "VMError").
// A and B are populated only by ErrDeviceNotVisible.
type VMError struct {
	Kind VMErrorKind
	ID   uint32
	A, B uint32
}

func (e *VMError) Error() string {
	if e.Kind == ErrDeviceNotVisible {
		return fmt.Sprintf("orchestrator: device %d not visible to %d", e.B, e.A)
	}
	return fmt.Sprintf("orchestrator: %s (id %d)", e.Kind, e.ID)
}
