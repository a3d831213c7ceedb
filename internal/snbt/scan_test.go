package snbt

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBlock = `backpackContents: [{
    backpackUuid: [I; -1155484576, 1234567890, -2147483648, 42],
    playerName: "Steve",
    accessTime: 1700000000000L,
    inventory: {
        Items: [
            {Slot: 0b, id: "minecraft:flint", count: 3},
            {Slot: 1b, id: "minecraft:diamond_sword", count: 1}
        ]
    }
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanBlocks(t *testing.T) {
	doc := "header: {}\n" + sampleBlock + "\n" +
		"other: 1\n" +
		`backpackContents: [{ playerName: Alex }]` + "\n"
	path := writeTemp(t, "dump.snbt", doc)

	var blocks []string
	if err := ScanBlocks(path, func(b string) { blocks = append(blocks, b) }); err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if ExtractOwner(blocks[0]).PlayerName != "Steve" {
		t.Errorf("block 0 owner = %q", ExtractOwner(blocks[0]).PlayerName)
	}
	if ExtractOwner(blocks[1]).PlayerName != "Alex" {
		t.Errorf("block 1 owner = %q (unquoted name)", ExtractOwner(blocks[1]).PlayerName)
	}
}

func TestExtractOwner(t *testing.T) {
	info := ExtractOwner(sampleBlock)
	if info.PlayerName != "Steve" {
		t.Errorf("PlayerName = %q", info.PlayerName)
	}
	if info.UUID != "bb20b460-4996-02d2-8000-00000000002a" {
		t.Errorf("UUID = %q", info.UUID)
	}
	if info.AccessTime != 1700000000000 {
		t.Errorf("AccessTime = %d", info.AccessTime)
	}
}

func TestExtractOwnerMissingFields(t *testing.T) {
	info := ExtractOwner("backpackContents: [{}]")
	if info.PlayerName != "" || info.UUID != "" || info.AccessTime != 0 {
		t.Errorf("got %+v, want zero OwnerInfo", info)
	}
}

func TestSummarizeItems(t *testing.T) {
	items := SummarizeItems(sampleBlock, 10)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "minecraft:flint" || items[0].Count != 3 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].ID != "minecraft:diamond_sword" || items[1].Count != 1 {
		t.Errorf("item 1 = %+v", items[1])
	}

	if got := SummarizeItems(sampleBlock, 1); len(got) != 1 {
		t.Errorf("maxItems not honored: got %d", len(got))
	}
}

func TestSummarizeItemsCountBeforeID(t *testing.T) {
	items := SummarizeItems(`Items: [{count: 7, id: "minecraft:stone"}]`, 10)
	if len(items) != 1 || items[0].Count != 7 {
		t.Errorf("got %+v, want count 7 from the preceding window", items)
	}
}

func TestSummarizeItemsAdjacentItemsKeepOwnCounts(t *testing.T) {
	// Two items well within 120 chars of each other: the second must not
	// inherit the first's count.
	block := `{id: "minecraft:flint", count: 3}, {id: "minecraft:stick", count: 1}`
	items := SummarizeItems(block, 10)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Count != 3 || items[1].Count != 1 {
		t.Errorf("counts = %d, %d, want 3, 1", items[0].Count, items[1].Count)
	}
}

func TestSummarizeItemsNoCount(t *testing.T) {
	items := SummarizeItems(`Items: [{id: "minecraft:stone"}]`, 10)
	if len(items) != 1 || items[0].Count != -1 {
		t.Errorf("got %+v, want count -1 when absent", items)
	}
}

func TestLooksBinary(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"nbt compound", []byte{0x0a, 0x00, 0x00}, true},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, true},
		{"nul byte", []byte("text\x00more"), true},
		{"plain text", []byte("backpackContents: [{}]"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		path := writeTemp(t, tt.name, string(tt.content))
		if got := LooksBinary(path); got != tt.want {
			t.Errorf("%s: LooksBinary = %v, want %v", tt.name, got, tt.want)
		}
	}
}
