// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// TemplateKind is the tagged union discriminant of an ObjectTemplate
// (spec.md §4.2): nine variants ordered from bare structure to the
// richest item kind.
type TemplateKind uint8

const (
	TemplateStructure TemplateKind = iota
	TemplateStructureSlots
	TemplateStructureLogic
	TemplateStructureLogicDevice
	TemplateStructureLogicDeviceMemory
	TemplateItem
	TemplateItemSlots
	TemplateItemLogic
	TemplateItemLogicMemory
)

var templateKindTable = newEnumTable("TemplateKind", []EnumEntry{
	{Name: "Structure", Value: uint16(TemplateStructure)},
	{Name: "StructureSlots", Value: uint16(TemplateStructureSlots)},
	{Name: "StructureLogic", Value: uint16(TemplateStructureLogic)},
	{Name: "StructureLogicDevice", Value: uint16(TemplateStructureLogicDevice)},
	{Name: "StructureLogicDeviceMemory", Value: uint16(TemplateStructureLogicDeviceMemory)},
	{Name: "Item", Value: uint16(TemplateItem)},
	{Name: "ItemSlots", Value: uint16(TemplateItemSlots)},
	{Name: "ItemLogic", Value: uint16(TemplateItemLogic)},
	{Name: "ItemLogicMemory", Value: uint16(TemplateItemLogicMemory)},
})

func (k TemplateKind) String() string {
	name, _ := templateKindTable.Name(uint16(k))
	return name
}

// MarshalJSON renders a TemplateKind as its canonical string, matching the
// offline-generated catalog document's shape (spec.md §6).
func (k TemplateKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses a TemplateKind from its canonical string.
func (k *TemplateKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := templateKindTable.Parse(name)
	if !ok {
		return &ErrUnknownEnumMember{Kind: "TemplateKind", Token: name}
	}
	*k = TemplateKind(v)
	return nil
}

// SlotTemplate describes one fixed slot a Storage-capable object exposes.
type SlotTemplate struct {
	Name           string          `json:"name"`
	Class          SlotClass       `json:"class"`
	ReadableLogic  []SlotLogicType `json:"readable_logic,omitempty"`
	WriteableLogic []SlotLogicType `json:"writeable_logic,omitempty"`
}

// LogicFieldTemplate describes one logic field and its access mode.
type LogicFieldTemplate struct {
	Field  LogicType `json:"field"`
	Access string    `json:"access"` // "R", "W", or "RW"
}

// DeviceTemplate describes the Device capability facet of a template:
// connection count and an optional six-slot pin table.
type DeviceTemplate struct {
	Connections int  `json:"connections"`
	HasPins     bool `json:"has_pins"`
}

// ItemTemplate describes the Item capability facet of a template.
type ItemTemplate struct {
	SlotClass      SlotClass    `json:"slot_class"`
	SortingClass   SortingClass `json:"sorting_class"`
	MaxQuantity    uint32       `json:"max_quantity"`
	FilterGasType  *GasType     `json:"filter_gas_type,omitempty"`
	HasReagents    bool         `json:"has_reagents"`
}

// PrefabEntry is one row of the read-only prefab database.
type PrefabEntry struct {
	Name        string       `json:"name"`
	Hash        int32        `json:"hash"`
	DisplayName string       `json:"display_name"`
	Description string       `json:"description"`
	Kind        TemplateKind `json:"kind"`

	Slots       []SlotTemplate        `json:"slots,omitempty"`
	LogicFields []LogicFieldTemplate  `json:"logic_fields,omitempty"`
	Modes       map[uint32]string     `json:"modes,omitempty"`
	Device      *DeviceTemplate       `json:"device,omitempty"`
	MemorySize  int                   `json:"memory_size,omitempty"`
	Item        *ItemTemplate         `json:"item,omitempty"`
}

// HasSlots reports whether the template variant carries a Storage facet.
func (e *PrefabEntry) HasSlots() bool {
	switch e.Kind {
	case TemplateStructureSlots, TemplateItemSlots:
		return true
	default:
		return false
	}
}

// HasLogic reports whether the template variant carries a Logicable facet.
func (e *PrefabEntry) HasLogic() bool {
	switch e.Kind {
	case TemplateStructureLogic, TemplateStructureLogicDevice, TemplateStructureLogicDeviceMemory,
		TemplateItemLogic, TemplateItemLogicMemory:
		return true
	default:
		return false
	}
}

// HasDevice reports whether the template variant carries a Device facet.
func (e *PrefabEntry) HasDevice() bool {
	switch e.Kind {
	case TemplateStructureLogicDevice, TemplateStructureLogicDeviceMemory:
		return true
	default:
		return false
	}
}

// HasMemory reports whether the template variant carries Memory
// (read/write) facets.
func (e *PrefabEntry) HasMemory() bool {
	switch e.Kind {
	case TemplateStructureLogicDeviceMemory, TemplateItemLogicMemory:
		return true
	default:
		return false
	}
}

// HasItem reports whether the template variant carries an Item facet.
func (e *PrefabEntry) HasItem() bool {
	switch e.Kind {
	case TemplateItem, TemplateItemSlots, TemplateItemLogic, TemplateItemLogicMemory:
		return true
	default:
		return false
	}
}

// prefabDocument mirrors the offline-generated catalog document's shape
// (spec.md §6): `{ prefabs: { name → ObjectTemplate }, prefabs_by_hash: { hash → name }, ... }`.
// The remaining top-level keys (reagents, enums, structures, devices,
// items, logicable_items) are retrieval indices the offline generator
// emits for tooling; the VM only consumes `prefabs`.
type prefabDocument struct {
	Prefabs map[string]*PrefabEntry `json:"prefabs"`
}

// PrefabDB is the read-only, VM-wide prefab catalog (spec.md §4.2).
// Addressable by hash (the fast path batch ops use) or by name.
type PrefabDB struct {
	byHash map[int32]*PrefabEntry
	byName map[string]*PrefabEntry
}

// ErrUnknownPrefab is returned when a hash or name has no catalog entry.
type ErrUnknownPrefab struct {
	Hash int32
	Name string
}

func (e *ErrUnknownPrefab) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("catalog: unknown prefab %q", e.Name)
	}
	return fmt.Sprintf("catalog: unknown prefab hash %d", e.Hash)
}

// LoadPrefabDB reads the offline-generated catalog document from r and
// builds the read-only lookup maps. Entries whose declared Hash is zero
// have it computed from Name via HashString, so hand-authored fixture
// documents (tests) need not pre-compute hashes.
func LoadPrefabDB(r io.Reader) (*PrefabDB, error) {
	var doc prefabDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decoding prefab document: %w", err)
	}
	db := &PrefabDB{
		byHash: make(map[int32]*PrefabEntry, len(doc.Prefabs)),
		byName: make(map[string]*PrefabEntry, len(doc.Prefabs)),
	}
	for name, entry := range doc.Prefabs {
		entry.Name = name
		if entry.Hash == 0 {
			entry.Hash = HashString(name)
		}
		db.byHash[entry.Hash] = entry
		db.byName[name] = entry
	}
	return db, nil
}

// LoadPrefabDBFile loads a prefab document from disk. For files above
// mmapThreshold it memory-maps the file (github.com/edsrzf/mmap-go)
// rather than reading it fully into the heap before decoding — the same
// large-read-only-table tradeoff the geth lineage makes for its
// freezer/trie tables, applied here to the (potentially large,
// modded-content-inflated) prefab catalog.
func LoadPrefabDBFile(path string) (*PrefabDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening prefab file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("catalog: stat prefab file: %w", err)
	}

	const mmapThreshold = 1 << 20 // 1 MiB
	if info.Size() < mmapThreshold {
		return LoadPrefabDB(f)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("catalog: mmap prefab file: %w", err)
	}
	defer m.Unmap()

	return LoadPrefabDB(bytesReader(m))
}

// bytesReader adapts an mmap.MMap ([]byte) to io.Reader without an extra
// copy of the backing array.
func bytesReader(b []byte) io.Reader {
	return &sliceReader{b: b}
}

type sliceReader struct {
	b   []byte
	pos int
}

func (s *sliceReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.b) {
		return 0, io.EOF
	}
	n := copy(p, s.b[s.pos:])
	s.pos += n
	return n, nil
}

// ByHash resolves a prefab by its signed-32 CRC32 identity hash.
func (db *PrefabDB) ByHash(hash int32) (*PrefabEntry, error) {
	e, ok := db.byHash[hash]
	if !ok {
		return nil, &ErrUnknownPrefab{Hash: hash}
	}
	return e, nil
}

// ByName resolves a prefab by its declared name.
func (db *PrefabDB) ByName(name string) (*PrefabEntry, error) {
	e, ok := db.byName[name]
	if !ok {
		return nil, &ErrUnknownPrefab{Name: name}
	}
	return e, nil
}

// Len returns the number of catalog entries.
func (db *PrefabDB) Len() int { return len(db.byName) }
