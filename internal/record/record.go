// Package record defines the canonical inventory record consumed by the
// renderer and the normalizers that produce it from raw save data.
package record

import (
	"fmt"
	"strings"
)

// Kind tags the two record variants.
type Kind int

const (
	KindBackpack Kind = iota
	KindContainer
)

// SlotItem is one stack inside an inventory slot.
type SlotItem struct {
	ID    string
	Count int64
}

// Upgrade is one installed backpack upgrade. Order is display order.
type Upgrade struct {
	ID    string
	Count int64
}

// Record is the normalized unit the layout engine renders. Absent slots in
// Inventory mean empty. Never mutated after creation.
type Record struct {
	Kind      Kind
	DisplayID string
	Inventory map[int]SlotItem
	Upgrades  []Upgrade

	// Backpack fields.
	UUID       string
	PlayerName string
	AccessTime int64 // unix millis, 0 = never accessed

	// Container fields.
	X, Y, Z   string
	Dimension string
	Dungeon   bool
	Rows      int    // grid row cap, 0 = derive from max slot
	RawItems  string // raw JSON of the items field, searched by the -nbt filter
}

// Identity names the record for output files and diagnostics.
func (r *Record) Identity() string {
	if r.Kind == KindContainer {
		safe := strings.ReplaceAll(r.DisplayID, ":", "_")
		return fmt.Sprintf("%s_%s_%s_%s", safe, r.X, r.Y, r.Z)
	}
	return r.UUID
}

// MaxSlot returns the highest occupied slot index, or -1 when empty.
func (r *Record) MaxSlot() int {
	max := -1
	for slot := range r.Inventory {
		if slot > max {
			max = slot
		}
	}
	return max
}

// CleanItemID lowercases an item id and strips quotes and whitespace.
func CleanItemID(id string) string {
	id = strings.ReplaceAll(id, `"`, "")
	id = strings.ReplaceAll(id, "'", "")
	return strings.ToLower(strings.TrimSpace(id))
}

// IsAir reports whether a cleaned id denotes an empty slot.
func IsAir(id string) bool {
	return strings.Contains(id, "air")
}
