package filter

import (
	"testing"

	"backpack-visualizer/internal/record"
)

func backpack() *record.Record {
	return &record.Record{
		Kind:       record.KindBackpack,
		UUID:       "bb20b460-4996-02d2-8000-00000000002a",
		PlayerName: "Steve",
		Inventory: map[int]record.SlotItem{
			0: {ID: "minecraft:flint", Count: 3},
			9: {ID: "minecraft:diamond_sword", Count: 1},
		},
		Upgrades: []record.Upgrade{
			{ID: "sophisticatedbackpacks:stack_upgrade_tier_2"},
		},
	}
}

func container() *record.Record {
	return &record.Record{
		Kind:      record.KindContainer,
		DisplayID: "minecraft:trapped_chest",
		X:         "1", Y: "2", Z: "3",
		Dungeon:   true,
		Inventory: map[int]record.SlotItem{0: {ID: "minecraft:emerald", Count: 5}},
		RawItems:  `[{"id":"minecraft:emerald","count":5}]`,
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		r    *record.Record
		want bool
	}{
		{"empty criteria pass", Criteria{}, backpack(), true},
		{"owner name case-insensitive", Criteria{Owner: "steve"}, backpack(), true},
		{"owner uuid substring", Criteria{Owner: "bb20b460"}, backpack(), true},
		{"owner miss", Criteria{Owner: "alex"}, backpack(), false},
		{"item substring", Criteria{Item: "diamond"}, backpack(), true},
		{"item miss", Criteria{Item: "netherite"}, backpack(), false},
		{"upgrade substring", Criteria{Upgrade: "stack"}, backpack(), true},
		{"upgrade miss", Criteria{Upgrade: "magnet"}, backpack(), false},
		{"combined all pass", Criteria{Owner: "Steve", Item: "flint", Upgrade: "tier_2"}, backpack(), true},
		{"combined one fails", Criteria{Owner: "Steve", Item: "netherite"}, backpack(), false},
		{"query matches item", Criteria{Query: "sword"}, backpack(), true},
		{"query matches upgrade", Criteria{Query: "stack_upgrade"}, backpack(), true},
		{"query miss", Criteria{Query: "beacon"}, backpack(), false},
		{"container type substring", Criteria{ContainerType: "trapped"}, container(), true},
		{"container type miss", Criteria{ContainerType: "barrel"}, container(), false},
		{"container type ignored for backpacks", Criteria{ContainerType: "barrel"}, backpack(), true},
		{"nodungeon excludes", Criteria{NoDungeon: true}, container(), false},
		{"nodungeon ignored for backpacks", Criteria{NoDungeon: true}, backpack(), true},
		{"rawnbt substring", Criteria{RawNBT: `"count":5`}, container(), true},
		{"rawnbt miss", Criteria{RawNBT: "ender_pearl"}, container(), false},
		{"container owner matches identity", Criteria{Owner: "1_2_3"}, container(), true},
		{"container item filter", Criteria{Item: "emerald"}, container(), true},
	}
	for _, tt := range tests {
		if got := tt.c.Matches(tt.r); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}
