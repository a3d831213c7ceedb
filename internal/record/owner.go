package record

import (
	"backpack-visualizer/internal/mcuuid"
	"backpack-visualizer/internal/tagtree"
)

// Owner is the last known accessor of one backpack.
type Owner struct {
	PlayerName string
	AccessTime int64 // unix millis, 0 = unknown
}

// BuildOwnerIndex maps backpack uuid to owner metadata from the access-log
// list. Entries whose uuid cannot be decoded are skipped; the last entry for
// a uuid wins. Field names vary between mod versions, so both spellings of
// each field are accepted.
func BuildOwnerIndex(accessLog tagtree.Node) map[string]Owner {
	idx := make(map[string]Owner)
	for _, entry := range accessLog.List() {
		ints := entry.Get("backpackUuid").Ints()
		if ints == nil {
			ints = entry.Get("uuid").Ints()
		}
		uuid, ok := mcuuid.FromInts(ints)
		if !ok {
			continue
		}

		name := entry.Get("playerName").Str()
		if name == "" {
			name = entry.Get("player").Str()
		}

		access := entry.Get("accessTime").IntOr(0)
		if access == 0 {
			access = entry.Get("lastAccess").IntOr(0)
		}

		idx[uuid] = Owner{PlayerName: name, AccessTime: access}
	}
	return idx
}
