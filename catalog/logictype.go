// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

// LogicType names a named, typed field on a Logicable object (spec.md §3,
// §4.1). Values are u16 per spec.md's "Rules" for C1.
type LogicType uint16

const (
	LogicPower LogicType = iota
	LogicActivate
	LogicCharge
	LogicChargeRatio
	LogicClearMemory
	LogicColor
	LogicCombustionInput
	LogicCombustionOutput
	LogicError
	LogicExportCount
	LogicFilterType
	LogicFlush
	LogicForward
	LogicHorizontal
	LogicIdle
	LogicImportCount
	LogicLineNumber
	LogicLock
	LogicMaximum
	LogicMinimum
	LogicMode
	LogicNameHash
	LogicOn
	LogicOpen
	LogicOutput
	LogicPrefabHash
	LogicPressure
	LogicPressureExternal
	LogicQuantity
	LogicRatio
	LogicRatioCarbonDioxide
	LogicRatioNitrogen
	LogicRatioOxygen
	LogicRatioPollutant
	LogicRatioVolatiles
	LogicRatioWater
	LogicReagentsContents
	LogicReferenceId
	LogicRequestHash
	LogicReturnFuelAmount
	LogicSetting
	LogicSoundAlert
	LogicStress
	LogicTemperature
	LogicThrottle
	LogicTotalMoles
	LogicVelocity
	LogicVelocityMagnitude
	LogicVertical
	LogicVolume
	LogicWorkingGasEfficiency
)

var logicTypeTable = newEnumTable("LogicType", []EnumEntry{
	{Name: "Power", Value: uint16(LogicPower)},
	{Name: "Activate", Value: uint16(LogicActivate)},
	{Name: "Charge", Value: uint16(LogicCharge)},
	{Name: "ChargeRatio", Value: uint16(LogicChargeRatio)},
	{Name: "ClearMemory", Value: uint16(LogicClearMemory)},
	{Name: "Color", Value: uint16(LogicColor)},
	{Name: "CombustionInput", Value: uint16(LogicCombustionInput)},
	{Name: "CombustionOutput", Value: uint16(LogicCombustionOutput)},
	{Name: "Error", Value: uint16(LogicError)},
	{Name: "ExportCount", Value: uint16(LogicExportCount)},
	{Name: "FilterType", Value: uint16(LogicFilterType)},
	{Name: "Flush", Value: uint16(LogicFlush)},
	{Name: "Forward", Value: uint16(LogicForward)},
	{Name: "Horizontal", Value: uint16(LogicHorizontal)},
	{Name: "Idle", Value: uint16(LogicIdle)},
	{Name: "ImportCount", Value: uint16(LogicImportCount)},
	{Name: "LineNumber", Value: uint16(LogicLineNumber)},
	{Name: "Lock", Value: uint16(LogicLock)},
	{Name: "Maximum", Value: uint16(LogicMaximum)},
	{Name: "Minimum", Value: uint16(LogicMinimum)},
	{Name: "Mode", Value: uint16(LogicMode)},
	{Name: "NameHash", Value: uint16(LogicNameHash)},
	{Name: "On", Value: uint16(LogicOn)},
	{Name: "Open", Value: uint16(LogicOpen)},
	{Name: "Output", Value: uint16(LogicOutput)},
	{Name: "PrefabHash", Value: uint16(LogicPrefabHash)},
	{Name: "Pressure", Value: uint16(LogicPressure)},
	{Name: "PressureExternal", Value: uint16(LogicPressureExternal)},
	{Name: "Quantity", Value: uint16(LogicQuantity)},
	{Name: "Ratio", Value: uint16(LogicRatio)},
	{Name: "RatioCarbonDioxide", Value: uint16(LogicRatioCarbonDioxide)},
	{Name: "RatioNitrogen", Value: uint16(LogicRatioNitrogen)},
	{Name: "RatioOxygen", Value: uint16(LogicRatioOxygen)},
	{Name: "RatioPollutant", Value: uint16(LogicRatioPollutant)},
	{Name: "RatioVolatiles", Value: uint16(LogicRatioVolatiles)},
	{Name: "RatioWater", Value: uint16(LogicRatioWater)},
	{Name: "ReagentsContents", Value: uint16(LogicReagentsContents)},
	{Name: "ReferenceId", Value: uint16(LogicReferenceId)},
	{Name: "RequestHash", Value: uint16(LogicRequestHash)},
	{Name: "ReturnFuelAmount", Value: uint16(LogicReturnFuelAmount)},
	{Name: "Setting", Value: uint16(LogicSetting)},
	{Name: "SoundAlert", Value: uint16(LogicSoundAlert)},
	{Name: "Stress", Value: uint16(LogicStress)},
	{Name: "Temperature", Value: uint16(LogicTemperature)},
	{Name: "Throttle", Value: uint16(LogicThrottle)},
	{Name: "TotalMoles", Value: uint16(LogicTotalMoles)},
	{Name: "Velocity", Value: uint16(LogicVelocity)},
	{Name: "VelocityMagnitude", Value: uint16(LogicVelocityMagnitude)},
	{Name: "Vertical", Value: uint16(LogicVertical)},
	{Name: "Volume", Value: uint16(LogicVolume)},
	{Name: "WorkingGasEfficiency", Value: uint16(LogicWorkingGasEfficiency)},
})

// ParseLogicType resolves a case-sensitive LogicType literal such as
// "Setting" (as it would appear after "LogicType." in source).
func ParseLogicType(name string) (LogicType, bool) {
	v, ok := logicTypeTable.Parse(name)
	return LogicType(v), ok
}

// LogicTypeName returns the canonical name of a LogicType value, and false
// if the value does not round-trip through the table (spec.md §4.6, "Type
// operand": "if numeric, it must round-trip through the enum table").
func LogicTypeName(v LogicType) (string, bool) {
	return logicTypeTable.Name(uint16(v))
}

// IsValidLogicType reports whether v names a known LogicType member.
func IsValidLogicType(v LogicType) bool {
	return logicTypeTable.Contains(uint16(v))
}

// computedLogicFields are LogicType members whose value is derived at read
// time rather than stored in the object's field map (spec.md §4.4): reads
// of Power, ReferenceId, PrefabHash and NameHash never fail for lack of a
// stored value; Error and LineNumber are derived only on circuit holders
// and fall back to the stored field map elsewhere. Writes to them fail
// unless force is set (spec.md §3, "LogicField").
var computedLogicFields = map[LogicType]bool{
	LogicPower:      true,
	LogicError:      true,
	LogicReferenceId: true,
	LogicPrefabHash: true,
	LogicNameHash:   true,
	LogicLineNumber: true,
}

// IsComputedLogicField reports whether a LogicType is computed rather than
// stored, per spec.md §4.4's read-order rule ("reads computed fields first").
func IsComputedLogicField(v LogicType) bool {
	return computedLogicFields[v]
}
