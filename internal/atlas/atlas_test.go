package atlas

import (
	"image"
	"testing"
)

func testAtlas(sprites map[string]Rect) *Atlas {
	return New(sprites, image.NewNRGBA(image.Rect(0, 0, 64, 64)))
}

func TestResolveFallbackChain(t *testing.T) {
	a := testAtlas(map[string]Rect{
		"minecraft:flint": {X: 0, Y: 0, Width: 16, Height: 16},
		"dirt":            {X: 16, Y: 0, Width: 16, Height: 16},
		"chest":           {X: 32, Y: 0, Width: 16, Height: 16},
		"mod:odd_widget":  {X: 48, Y: 0, Width: 16, Height: 16},
	})

	tests := []struct {
		id   string
		want Rect
	}{
		// exact
		{"minecraft:flint", Rect{0, 0, 16, 16}},
		// bare name gains the minecraft: namespace
		{"flint", Rect{0, 0, 16, 16}},
		// namespaced id falls back to the bare key
		{"minecraft:dirt", Rect{16, 0, 16, 16}},
		// container family substring
		{"ironchests:iron_chest", Rect{32, 0, 16, 16}},
		// short-name suffix scan across namespaces
		{"othermod:odd_widget", Rect{48, 0, 16, 16}},
		// normalization: quotes and case
		{`"Minecraft:Flint"`, Rect{0, 0, 16, 16}},
	}
	for _, tt := range tests {
		got, ok := a.resolve(cleanID(tt.id))
		if !ok {
			t.Errorf("resolve(%q): no sprite", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("resolve(%q) = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

func TestLookupSubRegion(t *testing.T) {
	a := testAtlas(map[string]Rect{"minecraft:flint": {X: 16, Y: 16, Width: 16, Height: 16}})

	img := a.Lookup("minecraft:flint")
	if img == nil {
		t.Fatal("nil sprite for listed id")
	}
	b := img.Bounds()
	if b.Min.X != 16 || b.Min.Y != 16 || b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("bounds = %v", b)
	}
}

func TestLookupMissing(t *testing.T) {
	a := testAtlas(map[string]Rect{})

	if got := a.Lookup("mod:nothing"); got != nil {
		t.Errorf("Lookup on empty atlas = %v, want nil", got)
	}
	if got := a.MissingCount(); got != 1 {
		t.Errorf("MissingCount = %d, want 1", got)
	}

	// Repeats of the same id do not grow the set; air never counts.
	a.Lookup("mod:nothing")
	a.Lookup("minecraft:air")
	a.Lookup("air")
	if got := a.MissingCount(); got != 1 {
		t.Errorf("MissingCount after repeats = %d, want 1", got)
	}
}

func TestParseMapShapes(t *testing.T) {
	wrapped := []byte(`{"sprites":{"a":{"x":1,"y":2,"width":3,"height":4}}}`)
	flat := []byte(`{"a":{"x":1,"y":2,"width":3,"height":4}}`)

	for _, raw := range [][]byte{wrapped, flat} {
		m, err := ParseMap(raw)
		if err != nil {
			t.Fatalf("ParseMap(%s): %v", raw, err)
		}
		if got := m["a"]; got != (Rect{1, 2, 3, 4}) {
			t.Errorf("ParseMap(%s)[a] = %+v", raw, got)
		}
	}

	if _, err := ParseMap([]byte(`[]`)); err == nil {
		t.Error("ParseMap on array: expected error")
	}
}
