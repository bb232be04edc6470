// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Scripted assertions against post-tick VM state, evaluated with the same
// goja ECMAScript runtime other_examples/ tooling in this corpus embeds
// for user-authored predicates, used here to drive an assertion DSL
// rather than ship one of our own.
package orchestrator

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/ic10sim/ic10sim/catalog"
	"github.com/ic10sim/ic10sim/network"
)

func evalAssertion(t *testing.T, js string, bindings map[string]interface{}) bool {
	t.Helper()
	vm := goja.New()
	for name, val := range bindings {
		if err := vm.Set(name, val); err != nil {
			t.Fatalf("goja Set(%s): %v", name, err)
		}
	}
	v, err := vm.RunString(js)
	if err != nil {
		t.Fatalf("goja RunString: %v", err)
	}
	return v.ToBoolean()
}

func TestScriptedMoveAddAssertion(t *testing.T) {
	v, holderID := newHousingVM(t)
	mustSetCode(t, v, holderID, "move r0 4\nmove r1 6\nadd r2 r0 r1\n")
	v.Tick(1, 10)

	ok := evalAssertion(t, "r2 === 10 && r0 === 4 && r1 === 6", map[string]interface{}{
		"r0": register(v, holderID, 0),
		"r1": register(v, holderID, 1),
		"r2": register(v, holderID, 2),
	})
	if !ok {
		t.Fatalf("assertion failed: r0=%v r1=%v r2=%v",
			register(v, holderID, 0), register(v, holderID, 1), register(v, holderID, 2))
	}
}

func TestScriptedBatchAverageAssertion(t *testing.T) {
	v, holderID := newHousingVM(t)
	netID := v.AddNetwork()
	if err := v.Connect(holderID, 0, netID, network.Data); err != nil {
		t.Fatalf("Connect(holder): %v", err)
	}
	aID, _ := v.AddObject("StructureGasSensor")
	bID, _ := v.AddObject("StructureGasSensor")
	if err := v.Connect(aID, 0, netID, network.Data); err != nil {
		t.Fatal(err)
	}
	if err := v.Connect(bID, 0, netID, network.Data); err != nil {
		t.Fatal(err)
	}
	if err := v.SetLogic(aID, catalog.LogicSetting, 4, false); err != nil {
		t.Fatal(err)
	}
	if err := v.SetLogic(bID, catalog.LogicSetting, 8, false); err != nil {
		t.Fatal(err)
	}
	mustSetCode(t, v, holderID, `lb r0 HASH("StructureGasSensor") Setting Average`+"\n")
	v.Tick(1, 10)

	ok := evalAssertion(t, "Math.abs(avg - 6) < 1e-9", map[string]interface{}{
		"avg": register(v, holderID, 0),
	})
	if !ok {
		t.Fatalf("assertion failed: avg=%v", register(v, holderID, 0))
	}
}
