package tagtree

import (
	"errors"
	"testing"
)

func payload() map[string]any {
	return map[string]any{
		"backpackContents": []any{},
		"accessLogRecords": []any{},
	}
}

func TestLocateDirect(t *testing.T) {
	node, path, err := Locate(Wrap(payload()))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !node.Has("backpackContents") {
		t.Error("located node missing backpackContents")
	}
	if path != "root" {
		t.Errorf("path = %q, want root", path)
	}
}

func TestLocateDataWrapper(t *testing.T) {
	doc := map[string]any{"data": payload()}
	node, path, err := Locate(Wrap(doc))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !node.Has("backpackContents") {
		t.Error("located node missing backpackContents")
	}
	if path != "root.data" {
		t.Errorf("path = %q, want root.data", path)
	}
}

func TestLocateExtraWrapping(t *testing.T) {
	// Two extra generic levels above the payload still resolve.
	doc := map[string]any{
		"level": map[string]any{
			"save": map[string]any{"data": payload()},
		},
	}
	node, _, err := Locate(Wrap(doc))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !node.Has("backpackContents") {
		t.Error("located node missing backpackContents")
	}
}

func TestLocateBeyondBound(t *testing.T) {
	doc := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": map[string]any{
					"d": payload(),
				},
			},
		},
	}
	if _, _, err := Locate(Wrap(doc)); !errors.Is(err, ErrPayloadNotFound) {
		t.Errorf("Locate err = %v, want ErrPayloadNotFound", err)
	}
}

func TestLocateNonMapRoot(t *testing.T) {
	if _, _, err := Locate(Wrap([]any{payload()})); !errors.Is(err, ErrPayloadNotFound) {
		t.Errorf("Locate err = %v, want ErrPayloadNotFound", err)
	}
}
