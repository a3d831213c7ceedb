// Package container loads the JSON dump of world containers (chests,
// barrels, shulker boxes) and normalizes each entry into a render record.
package container

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"backpack-visualizer/internal/record"
	"backpack-visualizer/internal/tagtree"
)

const gridCols = 9

// Load reads a container dump file: a JSON array of container objects.
func Load(path string) ([]tagtree.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("container: read %s: %w", path, err)
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("container: parse %s: %w", path, err)
	}

	nodes := make([]tagtree.Node, len(list))
	for i, c := range list {
		nodes[i] = tagtree.Wrap(c)
	}
	return nodes, nil
}

// Normalize converts one raw container object into a Record. The items field
// is either a slot-keyed object or a plain array; an explicit per-item Slot
// field overrides the key or positional index in both shapes.
func Normalize(c tagtree.Node) record.Record {
	inv := make(map[int]record.SlotItem)

	items := c.Get("items")
	if items.IsMap() {
		for _, key := range items.Keys() {
			slot, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			addItem(inv, items.Get(key), slot)
		}
	} else {
		for i, it := range items.List() {
			addItem(inv, it, i)
		}
	}

	maxSlot := 0
	for slot := range inv {
		if slot > maxSlot {
			maxSlot = slot
		}
	}
	rows := maxSlot/gridCols + 1
	if rows > gridCols {
		rows = gridCols
	}

	id := c.Get("id").Str()
	if id == "" {
		id = "minecraft:chest"
	}
	dim := c.Get("dimension").Str()
	if dim == "" {
		dim = "Unknown"
	}

	rawItems, _ := json.Marshal(items.Raw())

	return record.Record{
		Kind:      record.KindContainer,
		DisplayID: id,
		X:         coordString(c.Get("x")),
		Y:         coordString(c.Get("y")),
		Z:         coordString(c.Get("z")),
		Dimension: dim,
		Dungeon:   c.Get("is_dungeon").Bool(),
		Inventory: inv,
		Rows:      rows,
		RawItems:  string(rawItems),
	}
}

func addItem(inv map[int]record.SlotItem, it tagtree.Node, fallbackSlot int) {
	if !it.IsMap() {
		return
	}
	id := record.CleanItemID(it.Get("id").Str())
	if id == "" || record.IsAir(id) {
		return
	}
	count := it.Get("count").IntOr(0)
	if count == 0 {
		count = it.Get("Count").IntOr(1)
	}
	slot := int(it.Get("Slot").IntOr(int64(fallbackSlot)))
	inv[slot] = record.SlotItem{ID: id, Count: count}
}

func coordString(n tagtree.Node) string {
	if s := n.Str(); s != "" {
		return s
	}
	if i, ok := n.Int(); ok {
		return strconv.FormatInt(i, 10)
	}
	return "?"
}
