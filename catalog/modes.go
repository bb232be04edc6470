// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

// BatchMode selects the fold applied across data-visible devices by a
// batch instruction (spec.md §4.5, "Cross-network batch ops").
type BatchMode uint8

const (
	BatchAverage BatchMode = iota
	BatchSum
	BatchMinimum
	BatchMaximum
)

var batchModeTable = newEnumTable("BatchMode", []EnumEntry{
	{Name: "Average", Value: uint16(BatchAverage)},
	{Name: "Sum", Value: uint16(BatchSum)},
	{Name: "Minimum", Value: uint16(BatchMinimum)},
	{Name: "Maximum", Value: uint16(BatchMaximum)},
})

// ParseBatchMode resolves a case-sensitive BatchMode literal or numeric
// string value.
func ParseBatchMode(name string) (BatchMode, bool) {
	v, ok := batchModeTable.Parse(name)
	return BatchMode(v), ok
}

// IsValidBatchMode reports whether v names a known BatchMode member.
func IsValidBatchMode(v BatchMode) bool {
	return batchModeTable.Contains(uint16(v))
}

// ReagentMode selects which aspect of a reagent mixture a reagent
// instruction reports (spec.md §2, C1).
type ReagentMode uint8

const (
	ReagentContents ReagentMode = iota
	ReagentRequired
	ReagentRecipe
)

var reagentModeTable = newEnumTable("ReagentMode", []EnumEntry{
	{Name: "Contents", Value: uint16(ReagentContents)},
	{Name: "Required", Value: uint16(ReagentRequired)},
	{Name: "Recipe", Value: uint16(ReagentRecipe)},
})

// ParseReagentMode resolves a case-sensitive ReagentMode literal.
func ParseReagentMode(name string) (ReagentMode, bool) {
	v, ok := reagentModeTable.Parse(name)
	return ReagentMode(v), ok
}

// IsValidReagentMode reports whether v names a known ReagentMode member.
func IsValidReagentMode(v ReagentMode) bool {
	return reagentModeTable.Contains(uint16(v))
}

// SlotClass constrains which Item kinds a Slot may hold (spec.md §3,
// "Slot").
type SlotClass uint8

const (
	SlotClassNone SlotClass = iota
	SlotClassHelmet
	SlotClassSuit
	SlotClassBackpack
	SlotClassToolBelt
	SlotClassGlasses
	SlotClassAppliance
	SlotClassProgrammableChip
	SlotClassCircuitboard
	SlotClassDataDisk
	SlotClassOre
	SlotClassIngot
	SlotClassPlant
	SlotClassMotherboard
	SlotClassBattery
	SlotClassGasFilter
	SlotClassGasCanister
	SlotClassWire
)

var slotClassTable = newEnumTable("SlotClass", []EnumEntry{
	{Name: "None", Value: uint16(SlotClassNone)},
	{Name: "Helmet", Value: uint16(SlotClassHelmet)},
	{Name: "Suit", Value: uint16(SlotClassSuit)},
	{Name: "Back", Aliases: []string{"Backpack"}, Value: uint16(SlotClassBackpack)},
	{Name: "ToolBelt", Value: uint16(SlotClassToolBelt)},
	{Name: "Glasses", Value: uint16(SlotClassGlasses)},
	{Name: "Appliance", Value: uint16(SlotClassAppliance)},
	{Name: "ProgrammableChip", Value: uint16(SlotClassProgrammableChip)},
	{Name: "Circuitboard", Value: uint16(SlotClassCircuitboard)},
	{Name: "DataDisk", Value: uint16(SlotClassDataDisk)},
	{Name: "Ore", Value: uint16(SlotClassOre)},
	{Name: "Ingot", Value: uint16(SlotClassIngot)},
	{Name: "Plant", Value: uint16(SlotClassPlant)},
	{Name: "Motherboard", Value: uint16(SlotClassMotherboard)},
	{Name: "Battery", Value: uint16(SlotClassBattery)},
	{Name: "GasFilter", Value: uint16(SlotClassGasFilter)},
	{Name: "GasCanister", Value: uint16(SlotClassGasCanister)},
	{Name: "Wire", Value: uint16(SlotClassWire)},
})

// ParseSlotClass resolves a case-sensitive SlotClass literal.
func ParseSlotClass(name string) (SlotClass, bool) {
	v, ok := slotClassTable.Parse(name)
	return SlotClass(v), ok
}

// SortingClass buckets an Item for inventory auto-sort (spec.md §3,
// "Item").
type SortingClass uint8

const (
	SortingDefault SortingClass = iota
	SortingKits
	SortingTools
	SortingResources
	SortingOres
	SortingIngots
	SortingFood
	SortingMedical
	SortingClothing
	SortingAppliances
	SortingAtmospherics
	SortingStorage
	SortingAngle
)

var sortingClassTable = newEnumTable("SortingClass", []EnumEntry{
	{Name: "Default", Value: uint16(SortingDefault)},
	{Name: "Kits", Value: uint16(SortingKits)},
	{Name: "Tools", Value: uint16(SortingTools)},
	{Name: "Resources", Value: uint16(SortingResources)},
	{Name: "Ores", Value: uint16(SortingOres)},
	{Name: "Ingots", Value: uint16(SortingIngots)},
	{Name: "Food", Value: uint16(SortingFood)},
	{Name: "Medical", Value: uint16(SortingMedical)},
	{Name: "Clothing", Value: uint16(SortingClothing)},
	{Name: "Appliances", Value: uint16(SortingAppliances)},
	{Name: "Atmospherics", Value: uint16(SortingAtmospherics)},
	{Name: "Storage", Value: uint16(SortingStorage)},
	{Name: "Angle", Value: uint16(SortingAngle)},
})

// ParseSortingClass resolves a case-sensitive SortingClass literal.
func ParseSortingClass(name string) (SortingClass, bool) {
	v, ok := sortingClassTable.Parse(name)
	return SortingClass(v), ok
}

// GasType names a single simulated atmosphere constituent (spec.md §1,
// Non-goals: represented only to the depth logic reads require).
type GasType uint8

const (
	GasUndefined GasType = iota
	GasOxygen
	GasNitrogen
	GasCarbonDioxide
	GasVolatiles
	GasPollutant
	GasWater
	GasNitrousOxide
	GasLiquidOxygen
	GasLiquidNitrogen
	GasLiquidVolatiles
	GasSteam
	GasLiquidCarbonDioxide
	GasLiquidPollutant
	GasPollutedWater
)

var gasTypeTable = newEnumTable("GasType", []EnumEntry{
	{Name: "Undefined", Value: uint16(GasUndefined)},
	{Name: "Oxygen", Value: uint16(GasOxygen)},
	{Name: "Nitrogen", Value: uint16(GasNitrogen)},
	{Name: "CarbonDioxide", Value: uint16(GasCarbonDioxide)},
	{Name: "Volatiles", Value: uint16(GasVolatiles)},
	{Name: "Pollutant", Value: uint16(GasPollutant)},
	{Name: "Water", Value: uint16(GasWater)},
	{Name: "NitrousOxide", Value: uint16(GasNitrousOxide)},
	{Name: "LiquidOxygen", Value: uint16(GasLiquidOxygen)},
	{Name: "LiquidNitrogen", Value: uint16(GasLiquidNitrogen)},
	{Name: "LiquidVolatiles", Value: uint16(GasLiquidVolatiles)},
	{Name: "Steam", Value: uint16(GasSteam)},
	{Name: "LiquidCarbonDioxide", Value: uint16(GasLiquidCarbonDioxide)},
	{Name: "LiquidPollutant", Value: uint16(GasLiquidPollutant)},
	{Name: "PollutedWater", Value: uint16(GasPollutedWater)},
})

// ParseGasType resolves a case-sensitive GasType literal.
func ParseGasType(name string) (GasType, bool) {
	v, ok := gasTypeTable.Parse(name)
	return GasType(v), ok
}
