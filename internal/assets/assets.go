// Package assets loads the render resources (atlas metadata and sheet, slot
// background, nine-slice border, bitmap font) into a layout Context. Atlas
// and font sheet are required; the rest degrade gracefully.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"

	"backpack-visualizer/internal/atlas"
	"backpack-visualizer/internal/config"
	"backpack-visualizer/internal/fontsheet"
	"backpack-visualizer/internal/layout"
)

// Load reads every asset named by the config and assembles the shared render
// context. A missing atlas is fatal; a missing font only disables text.
func Load(cfg config.Config) (*layout.Context, error) {
	fmt.Printf("[Init] Loading atlas map from %s...\n", cfg.AtlasJSON)
	rawMap, err := os.ReadFile(cfg.AtlasJSON)
	if err != nil {
		return nil, fmt.Errorf("assets: read atlas map: %w", err)
	}
	sprites, err := atlas.ParseMap(rawMap)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}

	fmt.Printf("[Init] Loading atlas image from %s...\n", cfg.AtlasImage)
	sheet, err := LoadNRGBA(cfg.AtlasImage)
	if err != nil {
		return nil, fmt.Errorf("assets: atlas image: %w", err)
	}
	fmt.Printf("[Init] Atlas: %d sprites, %dx%dpx sheet\n",
		len(sprites), sheet.Bounds().Dx(), sheet.Bounds().Dy())

	ctx := &layout.Context{
		Atlas: atlas.New(sprites, sheet),
		Slot:  loadSlot(cfg.SlotImage),
	}

	if border, err := LoadNRGBA(cfg.BorderImage); err == nil {
		ctx.Border = border
		fmt.Println("[Init] Nine-slice border loaded.")
	} else {
		fmt.Printf("[Init] Warning: no border image (%v), nine-slice skipped\n", err)
	}

	font, err := fontsheet.Load(cfg.FontJSON, cfg.FontImage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: font load failed, text will be invisible: %v\n", err)
	} else {
		fmt.Printf("[Init] Font: %d glyphs\n", len(font.Chars))
		ctx.Font = font
	}

	return ctx, nil
}

// LoadNRGBA decodes any registered image format (PNG, JPEG, TGA) to NRGBA.
func LoadNRGBA(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return toNRGBA(src), nil
}

// loadSlot returns the slot background at exactly SlotSize, falling back to
// a synthesized beveled slot when the asset is absent or unreadable.
func loadSlot(path string) *image.NRGBA {
	if img, err := LoadNRGBA(path); err == nil {
		if img.Bounds().Dx() != layout.SlotSize || img.Bounds().Dy() != layout.SlotSize {
			img = resizeNearest(img, layout.SlotSize, layout.SlotSize)
		}
		fmt.Println("[Init] Custom slot background loaded.")
		return img
	}

	fmt.Println("[Init] Generated default slot background.")
	return defaultSlot()
}

func defaultSlot() *image.NRGBA {
	const s = layout.SlotSize
	gray := color.NRGBA{R: 139, G: 139, B: 139, A: 255}
	dark := color.NRGBA{R: 55, G: 55, B: 55, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, s, s))
	fillRect(img, 0, 0, s-1, s-1, gray)
	outlineRect(img, 0, 0, s-1, s-1, dark, 2)
	outlineRect(img, 2, 2, s-1, s-1, white, 2)
	fillRect(img, 2, 2, s-4, s-4, gray)
	return img
}

// fillRect fills the inclusive rectangle [x0,y0]..[x1,y1].
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), image.NewUniform(c), image.Point{}, draw.Src)
}

// outlineRect draws an inward border of the given width around the
// inclusive rectangle.
func outlineRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA, width int) {
	fillRect(img, x0, y0, x1, y0+width-1, c)
	fillRect(img, x0, y1-width+1, x1, y1, c)
	fillRect(img, x0, y0, x0+width-1, y1, c)
	fillRect(img, x1-width+1, y0, x1, y1, c)
}

func resizeNearest(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
