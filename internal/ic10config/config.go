// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ic10config loads the host-level tuning knobs a VM run reads at
// startup (spec.md SPEC_FULL.md ambient stack) from a TOML document, the
// same naoina/toml library and case-sensitive-field-name convention the
// teacher's own cmd/gprobe config loader uses.
package ic10config

import (
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// Config holds every value a VM run needs beyond the prefab database and
// program sources themselves.
type Config struct {
	// TickBudget is the default per-tick instruction budget handed to
	// orchestrator.VM (spec.md §4.6: "Default budget per tick: 128
	// instructions").
	TickBudget int

	// TicksPerSecond is decoded from the TOML document but not read
	// anywhere in this module; both commands pass a fixed 10 to
	// orchestrator.VM.Tick.
	TicksPerSecond float64

	// DefaultMemorySize is decoded from the TOML document but not read
	// anywhere in this module; prefab memory sizes come from the catalog.
	DefaultMemorySize int

	// Seed is decoded from the TOML document but not read anywhere in
	// this module; no IC's `rand` generator is reseeded from it.
	Seed int32
}

// Default returns the configuration a VM run uses absent a TOML file.
func Default() Config {
	return Config{
		TickBudget:        128,
		TicksPerSecond:    10,
		DefaultMemorySize: 512,
	}
}

// tomlSettings mirrors the teacher's cmd/gprobe config loader: TOML keys
// are matched to Go struct field names verbatim, with no case folding or
// underscore normalization, so a typo'd key is a load error instead of a
// silently ignored field.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("ic10config: field %q is not defined in %s", field, rt.String())
	},
}

// Load reads and decodes a TOML document from path, starting from
// Default() so an omitted key keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("ic10config: opening %s: %w", path, err)
	}
	defer f.Close()
	if err := tomlSettings.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("ic10config: decoding %s: %w", path, err)
	}
	return cfg, nil
}
