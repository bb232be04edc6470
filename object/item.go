// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package object

import "github.com/ic10sim/ic10sim/catalog"

// Item is the slot-occupant capability (spec.md §3, "Item").
type Item struct {
	SlotClass     catalog.SlotClass
	SortingClass  catalog.SortingClass
	MaxQuantity   uint32
	Quantity      uint32
	Damage        float64
	FilterGasType *catalog.GasType
	Reagents      map[int32]float64 // reagent-name hash -> amount
}

// NewItem builds an Item facet from a prefab's item template.
func NewItem(t *catalog.ItemTemplate) *Item {
	i := &Item{
		SlotClass:     t.SlotClass,
		SortingClass:  t.SortingClass,
		MaxQuantity:   t.MaxQuantity,
		Quantity:      1,
		FilterGasType: t.FilterGasType,
	}
	if t.HasReagents {
		i.Reagents = make(map[int32]float64)
	}
	return i
}

// ReagentAmount returns the quantity of a reagent by its name hash, per
// the `Contents` ReagentMode (spec.md §2, C1).
func (i *Item) ReagentAmount(reagentHash int32) float64 {
	if i.Reagents == nil {
		return 0
	}
	return i.Reagents[reagentHash]
}

// SetReagent stores the quantity of a reagent by name hash.
func (i *Item) SetReagent(reagentHash int32, amount float64) {
	if i.Reagents == nil {
		i.Reagents = make(map[int32]float64)
	}
	i.Reagents[reagentHash] = amount
}

// TotalReagents sums every reagent's amount.
func (i *Item) TotalReagents() float64 {
	total := 0.0
	for _, v := range i.Reagents {
		total += v
	}
	return total
}
