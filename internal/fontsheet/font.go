// Package fontsheet renders pixel-art text from a fixed-grid glyph sheet.
// Glyph widths are measured to the last opaque column so a 16x16-cell sheet
// yields proportional text.
package fontsheet

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Glyph is one sliced character cell plus its tight pixel width. A nil image
// with a nonzero width still advances the cursor, keeping text width stable
// when a glyph cannot draw.
type Glyph struct {
	Img   *image.NRGBA
	Width int
}

// Font holds the sliced glyph set. A nil *Font is a valid degraded font:
// every render is a no-op returning zero dimensions.
type Font struct {
	Chars      map[rune]Glyph
	CharHeight int

	spaceWidth int
}

type fontMeta struct {
	Providers []fontProvider `json:"providers"`
}

type fontProvider struct {
	Type  string   `json:"type"`
	Chars []string `json:"chars"`
}

// Load reads the font metadata JSON (a providers list with one bitmap entry
// whose chars rows map onto a 16x16 cell grid) and the sheet image, and
// slices every glyph.
func Load(jsonPath, imgPath string) (*Font, error) {
	metaRaw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("fontsheet: read %s: %w", jsonPath, err)
	}
	var meta fontMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("fontsheet: parse %s: %w", jsonPath, err)
	}

	var rows []string
	for _, p := range meta.Providers {
		if p.Type == "bitmap" {
			rows = p.Chars
			break
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fontsheet: no bitmap provider in %s", jsonPath)
	}

	f, err := os.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("fontsheet: read %s: %w", imgPath, err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("fontsheet: decode %s: %w", imgPath, err)
	}
	return New(rows, toNRGBA(src))
}

// New slices the glyph grid out of an already-decoded sheet.
func New(rows []string, sheet *image.NRGBA) (*Font, error) {
	cellW := sheet.Bounds().Dx() / 16
	cellH := sheet.Bounds().Dy() / 16
	if cellW == 0 || cellH == 0 {
		return nil, fmt.Errorf("fontsheet: sheet too small: %v", sheet.Bounds())
	}

	font := &Font{
		Chars:      make(map[rune]Glyph),
		CharHeight: cellH,
		spaceWidth: max(2, cellW/2),
	}

	for r, rowStr := range rows {
		c := 0
		for _, ch := range rowStr {
			x := c * cellW
			y := r * cellH
			c++
			cell := image.NewNRGBA(image.Rect(0, 0, cellW, cellH))
			draw.Draw(cell, cell.Bounds(), sheet, image.Pt(x, y), draw.Src)
			font.Chars[ch] = Glyph{Img: cell, Width: tightWidth(cell)}
		}
	}

	if _, ok := font.Chars[' ']; !ok {
		font.Chars[' '] = Glyph{
			Img:   image.NewNRGBA(image.Rect(0, 0, font.spaceWidth, cellH)),
			Width: font.spaceWidth,
		}
	}

	return font, nil
}

// tightWidth scans columns right-to-left for the first opaque pixel. Fully
// transparent cells fall back to a third of the cell width.
func tightWidth(img *image.NRGBA) int {
	b := img.Bounds()
	for x := b.Max.X - 1; x >= b.Min.X; x-- {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if img.Pix[img.PixOffset(x, y)+3] > 0 {
				return x - b.Min.X + 1
			}
		}
	}
	return b.Dx() / 3
}

const glyphGap = 1

// Render draws text at native glyph size with a drop shadow. It returns the
// composited image, the cursor width (excluding the 2px canvas margin for the
// shadow) and the glyph height. Unknown characters substitute '?'; characters
// without either glyph are dropped. Total width depends only on the measured
// glyph widths, never on the color or shadow flag.
func (f *Font) Render(text string, col color.NRGBA, shadow bool) (*image.NRGBA, int, int) {
	if f == nil || text == "" {
		return nil, 0, 0
	}

	var glyphs []Glyph
	for _, ch := range text {
		g, ok := f.Chars[ch]
		if !ok {
			g, ok = f.Chars['?']
		}
		if ok {
			glyphs = append(glyphs, g)
		}
	}
	if len(glyphs) == 0 {
		return nil, 0, 0
	}

	total := glyphGap * (len(glyphs) - 1)
	for _, g := range glyphs {
		total += g.Width
	}
	height := f.CharHeight

	canvas := image.NewNRGBA(image.Rect(0, 0, total+2, height+2))
	shadowCol := color.NRGBA{R: col.R / 4, G: col.G / 4, B: col.B / 4, A: 255}
	mainCol := color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}

	x := 0
	for _, g := range glyphs {
		if g.Img == nil {
			x += g.Width + glyphGap
			continue
		}
		if shadow {
			stamp(canvas, g.Img, x+1, 1, shadowCol)
		}
		stamp(canvas, g.Img, x, 0, mainCol)
		x += g.Width + glyphGap
	}

	return canvas, total, height
}

// stamp fills the glyph's alpha mask with a flat color onto dst.
func stamp(dst, glyph *image.NRGBA, dx, dy int, col color.NRGBA) {
	b := glyph.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := glyph.Pix[glyph.PixOffset(x, y)+3]
			if a == 0 {
				continue
			}
			tx := dx + x - b.Min.X
			ty := dy + y - b.Min.Y
			if tx < 0 || ty < 0 || tx >= dst.Bounds().Dx() || ty >= dst.Bounds().Dy() {
				continue
			}
			i := dst.PixOffset(tx, ty)
			dst.Pix[i] = col.R
			dst.Pix[i+1] = col.G
			dst.Pix[i+2] = col.B
			dst.Pix[i+3] = a
		}
	}
}

// Draw renders text, integer-upscales it with nearest-neighbor filtering and
// composites it onto dst. With alignRight the given x is the right edge.
// Returns the scaled block dimensions.
func (f *Font) Draw(dst *image.NRGBA, x, y int, text string, col color.NRGBA, scale int, alignRight bool) (int, int) {
	rendered, _, _ := f.Render(text, col, true)
	if rendered == nil {
		return 0, 0
	}

	newW := rendered.Bounds().Dx() * scale
	newH := rendered.Bounds().Dy() * scale
	scaled := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), rendered, rendered.Bounds(), xdraw.Over, nil)

	if alignRight {
		x -= newW
	}
	draw.Draw(dst, image.Rect(x, y, x+newW, y+newH), scaled, image.Point{}, draw.Over)
	return newW, newH
}

// Height returns the unscaled glyph height, or 0 for a degraded font.
func (f *Font) Height() int {
	if f == nil {
		return 0
	}
	return f.CharHeight
}

// Measure returns the scaled pixel width of text without drawing it.
func (f *Font) Measure(text string, scale int) int {
	rendered, _, _ := f.Render(text, color.NRGBA{R: 255, G: 255, B: 255}, true)
	if rendered == nil {
		return 0
	}
	return rendered.Bounds().Dx() * scale
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
