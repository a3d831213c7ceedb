package record

import (
	"backpack-visualizer/internal/mcuuid"
	"backpack-visualizer/internal/tagtree"
)

// BackpackDisplayID is the atlas id used for the backpack portrait slot.
const BackpackDisplayID = "sophisticatedbackpacks:backpack"

// ParseBackpacks converts the located payload into normalized backpack
// records. Records without a decodable uuid are dropped; the skipped count is
// returned so the driver can report how many entries were malformed rather
// than losing them silently.
func ParseBackpacks(payload tagtree.Node, owners map[string]Owner) (records []Record, skipped int) {
	for _, bc := range payload.Get("backpackContents").List() {
		ints := bc.Get("uuid").Ints()
		if ints == nil {
			ints = bc.Get("backpackUuid").Ints()
		}
		uuid, ok := mcuuid.FromInts(ints)
		if !ok {
			skipped++
			continue
		}

		contents := bc.Get("contents")

		inv := make(map[int]SlotItem)
		for i, it := range contents.Get("inventory").Get("Items").List() {
			id := CleanItemID(it.Get("id").Str())
			if id == "" || IsAir(id) {
				continue
			}
			count := it.Get("count").IntOr(1)
			slot := int(it.Get("Slot").IntOr(int64(i)))
			inv[slot] = SlotItem{ID: id, Count: count}
		}

		var upgrades []Upgrade
		for _, it := range contents.Get("upgradeInventory").Get("Items").List() {
			id := CleanItemID(it.Get("id").Str())
			if id == "" {
				continue
			}
			upgrades = append(upgrades, Upgrade{ID: id, Count: it.Get("count").IntOr(1)})
		}

		rec := Record{
			Kind:       KindBackpack,
			DisplayID:  BackpackDisplayID,
			UUID:       uuid,
			PlayerName: "Unknown",
			Inventory:  inv,
			Upgrades:   upgrades,
		}
		if o, ok := owners[uuid]; ok {
			rec.PlayerName = o.PlayerName
			rec.AccessTime = o.AccessTime
		}
		records = append(records, rec)
	}
	return records, skipped
}
