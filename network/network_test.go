// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package network

import (
	"math"
	"sort"
	"testing"
)

func TestChannelsInitializedToNaN(t *testing.T) {
	n := New(1)
	for ch := 0; ch < channelCount; ch++ {
		v, err := n.GetChannel(ch)
		if err != nil {
			t.Fatalf("GetChannel(%d): %v", ch, err)
		}
		if !math.IsNaN(v) {
			t.Fatalf("channel %d = %v, want NaN", ch, v)
		}
	}
}

func TestChannelIndexOutOfRange(t *testing.T) {
	n := New(1)
	if _, err := n.GetChannel(8); err == nil {
		t.Fatal("expected error for channel 8")
	}
	if err := n.SetChannel(-1, 1); err == nil {
		t.Fatal("expected error for channel -1")
	}
}

func TestDataVisibleExcludesSelf(t *testing.T) {
	n := New(1)
	n.Attach(10, Data)
	n.Attach(11, Data)
	n.Attach(12, Data)

	visible := n.DataVisible(10)
	sort.Slice(visible, func(i, j int) bool { return visible[i] < visible[j] })
	if len(visible) != 2 || visible[0] != 11 || visible[1] != 12 {
		t.Fatalf("DataVisible(10) = %v, want [11 12]", visible)
	}
}

func TestPowerOnlyMembershipDoesNotGrantDataVisibility(t *testing.T) {
	n := New(1)
	n.Attach(1, Power)
	n.Attach(2, Data)

	if !n.HasPower(1) {
		t.Fatal("expected device 1 to have power")
	}
	if n.DataVisible(1) != nil {
		t.Fatalf("power-only device should not be data-visible, got %v", n.DataVisible(1))
	}
	if n.DataDevices.Contains(1) {
		t.Fatal("power-only device must not appear in DataDevices")
	}
}

func TestDetachRemovesFromBothSets(t *testing.T) {
	n := New(1)
	n.Attach(5, PowerAndData)
	n.Detach(5)
	if n.DataDevices.Contains(5) || n.PowerDevices.Contains(5) {
		t.Fatal("expected device removed from both sets after Detach")
	}
}

func TestSetChannelLastWriterWins(t *testing.T) {
	n := New(1)
	if err := n.SetChannel(3, 1.0); err != nil {
		t.Fatal(err)
	}
	if err := n.SetChannel(3, 2.0); err != nil {
		t.Fatal(err)
	}
	got, _ := n.GetChannel(3)
	if got != 2.0 {
		t.Fatalf("GetChannel(3) = %v, want 2.0", got)
	}
}
