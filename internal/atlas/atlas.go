// Package atlas resolves item ids to sub-rectangles of the shared icon
// sheet, with namespace-normalization fallbacks for ids the sheet does not
// list verbatim.
package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"strings"
	"sync"
)

const defaultNamespace = "minecraft:"

// Rect is one sprite's region in the sheet.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Atlas is the sprite index plus the sheet image. Read-only after creation
// except for the missing-id diagnostic set, which is lock-guarded so render
// workers never lose a warning to a racy insert.
type Atlas struct {
	Sprites map[string]Rect
	Sheet   *image.NRGBA

	mu      sync.Mutex
	missing map[string]struct{}
}

// maxMissingPrints caps the number of missing-id lines written to stdout.
// The dedup set itself keeps growing so each id warns at most once.
const maxMissingPrints = 5

// New builds an Atlas from parsed sprite metadata and a decoded sheet.
func New(sprites map[string]Rect, sheet *image.NRGBA) *Atlas {
	return &Atlas{
		Sprites: sprites,
		Sheet:   sheet,
		missing: make(map[string]struct{}),
	}
}

// ParseMap decodes the atlas metadata JSON: either a bare id->rect object or
// the same object wrapped under a "sprites" key.
func ParseMap(raw []byte) (map[string]Rect, error) {
	var wrapped struct {
		Sprites map[string]Rect `json:"sprites"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Sprites) > 0 {
		return wrapped.Sprites, nil
	}

	var flat map[string]Rect
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("atlas: parse metadata: %w", err)
	}
	return flat, nil
}

// Lookup returns the sheet region for an item id, or nil when no sprite
// resolves. Misses are recorded once per id and never block rendering.
func (a *Atlas) Lookup(itemID string) *image.NRGBA {
	clean := cleanID(itemID)

	coords, ok := a.resolve(clean)
	if !ok {
		a.recordMissing(clean)
		return nil
	}

	sub := a.Sheet.SubImage(image.Rect(coords.X, coords.Y, coords.X+coords.Width, coords.Y+coords.Height))
	return sub.(*image.NRGBA)
}

func (a *Atlas) resolve(clean string) (Rect, bool) {
	if r, ok := a.Sprites[clean]; ok {
		return r, true
	}
	if !strings.Contains(clean, ":") {
		if r, ok := a.Sprites[defaultNamespace+clean]; ok {
			return r, true
		}
	}
	if strings.HasPrefix(clean, defaultNamespace) {
		if r, ok := a.Sprites[strings.TrimPrefix(clean, defaultNamespace)]; ok {
			return r, true
		}
	}

	// Known container families map to a representative sprite.
	for _, fam := range [...]struct{ substr, sprite string }{
		{"chest", "chest"},
		{"barrel", "barrel"},
		{"shulker", "shulker_box"},
	} {
		if strings.Contains(clean, fam.substr) {
			if r, ok := a.Sprites[fam.sprite]; ok {
				return r, true
			}
		}
	}

	// Last resort: match any sprite whose short name equals ours.
	short := clean
	if i := strings.LastIndex(clean, ":"); i >= 0 {
		short = clean[i+1:]
	}
	for k, r := range a.Sprites {
		if k == short || strings.HasSuffix(k, ":"+short) {
			return r, true
		}
	}

	return Rect{}, false
}

func (a *Atlas) recordMissing(clean string) {
	if clean == "air" || clean == "minecraft:air" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, seen := a.missing[clean]; seen {
		return
	}
	if len(a.missing) < maxMissingPrints {
		fmt.Printf("[Debug] Missing ID: %s\n", clean)
	}
	a.missing[clean] = struct{}{}
}

// MissingCount reports how many distinct ids failed to resolve.
func (a *Atlas) MissingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.missing)
}

func cleanID(id string) string {
	id = strings.ReplaceAll(id, `"`, "")
	id = strings.ReplaceAll(id, "'", "")
	return strings.ToLower(strings.TrimSpace(id))
}
