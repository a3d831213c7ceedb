// Package layout composes normalized inventory records into pixel-art
// raster images: header text block, upgrade row, slot grid, item icons and
// quantity labels.
package layout

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"backpack-visualizer/internal/atlas"
	"backpack-visualizer/internal/fontsheet"
	"backpack-visualizer/internal/record"
)

const (
	// SlotSize is the rendered size of one inventory cell.
	SlotSize = 128
	// IconSize keeps the vanilla 16-in-18 icon-to-slot ratio.
	IconSize = SlotSize * 16 / 18

	GridCols            = 9
	DefaultHeaderHeight = 240
	Padding             = 24

	TextScaleMain  = 6
	TextScaleCount = 5
	TextScaleLabel = 6

	lineHeight  = 65
	headSize    = SlotSize
	upgradeGap  = 10
	countMargin = 8
)

var (
	backgroundColor = color.NRGBA{R: 198, G: 198, B: 198, A: 255}
	labelColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Context carries the shared read-only render resources. Built once at
// startup and handed to every worker; only the atlas miss set mutates, behind
// its own lock.
type Context struct {
	Atlas  *atlas.Atlas
	Font   *fontsheet.Font
	Slot   *image.NRGBA // 128x128 slot background
	Border *image.NRGBA // optional 11x11 nine-slice source, nil to skip
}

// Render composes the full image for one record. avatar, when non-nil, is
// pasted over the portrait slot (backpacks only); otherwise the record's
// display id is looked up in the atlas.
func (ctx *Context) Render(rec *record.Record, avatar *image.NRGBA) *image.NRGBA {
	isContainer := rec.Kind == record.KindContainer

	var textLines []string
	if isContainer {
		dungeon := "No"
		if rec.Dungeon {
			dungeon = "YES"
		}
		textLines = []string{
			"Type: " + rec.DisplayID,
			fmt.Sprintf("Pos: %s, %s, %s", rec.X, rec.Y, rec.Z),
			"Dim: " + rec.Dimension,
			"Dungeon: " + dungeon,
		}
	} else {
		uuid := rec.UUID
		if len(uuid) > 8 {
			uuid = uuid[:8]
		}
		textLines = []string{
			"Owner: " + rec.PlayerName,
			"Last: " + FormatShortDate(rec.AccessTime),
			"UUID: " + uuid + "...",
		}
	}

	maxTextWidth := 0
	for _, line := range textLines {
		if w := ctx.Font.Measure(line, TextScaleMain); w > maxTextWidth {
			maxTextWidth = w
		}
	}

	headX := Padding
	textStartX := headX + headSize + 32
	textEndX := textStartX + maxTextWidth
	imgWidth := GridCols*SlotSize + Padding*2

	textYBase := Padding + 10
	textBlockBottom := textYBase + len(textLines)*lineHeight
	headerHeight := textBlockBottom + Padding
	if headerHeight < DefaultHeaderHeight {
		headerHeight = DefaultHeaderHeight
	}

	// Upgrade row placement: top-right by default, relocated below the text
	// block when the text would run into it. The row grows rightward below
	// the text and leftward in the top-right branch; flipping either
	// direction overlaps the header border.
	upgrades := rec.Upgrades
	if isContainer {
		upgrades = nil
	}
	collision := false
	upgY := Padding + 60
	upgStartX := 0
	if len(upgrades) > 0 {
		blockWidth := len(upgrades)*SlotSize + (len(upgrades)-1)*upgradeGap
		defaultStartX := imgWidth - Padding - blockWidth

		collision = textEndX+20 > defaultStartX
		if collision {
			labelH := 8 * TextScaleLabel
			upgY = textBlockBottom + labelH + 20
			upgStartX = textStartX
			if h := upgY + SlotSize + 20; h > headerHeight {
				headerHeight = h
			}
		} else {
			upgStartX = imgWidth - Padding - SlotSize
		}
	}

	rows := rec.MaxSlot()/GridCols + 1
	if rows < 1 {
		rows = 1
	}
	if rec.Rows > 0 && rows > rec.Rows {
		rows = rec.Rows
	}

	imgHeight := headerHeight + rows*SlotSize + Padding*2

	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	// Portrait slot.
	headY := Padding + 10
	paste(img, ctx.Slot, headX, headY)
	if avatar != nil {
		pasteOver(img, scaleNearest(avatar, headSize, headSize), headX, headY)
	} else if icon := ctx.Atlas.Lookup(rec.DisplayID); icon != nil {
		off := (SlotSize - IconSize) / 2
		pasteOver(img, scaleNearest(icon, IconSize, IconSize), headX+off, headY+off)
	}

	for i, line := range textLines {
		ctx.Font.Draw(img, textStartX, textYBase+i*lineHeight, line, labelColor, TextScaleMain, false)
	}

	if len(upgrades) > 0 {
		lblX := imgWidth - Padding
		lblY := Padding - 5
		alignRight := true
		if collision {
			lblX = textStartX
			lblY = upgY - 8*TextScaleLabel - 5
			alignRight = false
		}
		ctx.Font.Draw(img, lblX, lblY, "Upgrades:", labelColor, TextScaleLabel, alignRight)

		for i, upg := range upgrades {
			var ux int
			if collision {
				ux = upgStartX + i*(SlotSize+upgradeGap)
			} else {
				ux = upgStartX - i*(SlotSize+upgradeGap)
			}
			paste(img, ctx.Slot, ux, upgY)
			if icon := ctx.Atlas.Lookup(upg.ID); icon != nil {
				off := (SlotSize - IconSize) / 2
				pasteOver(img, scaleNearest(icon, IconSize, IconSize), ux+off, upgY+off)
			}
		}
	}

	// Inventory grid.
	gridStartX := Padding
	gridStartY := headerHeight + Padding
	for row := 0; row < rows; row++ {
		for col := 0; col < GridCols; col++ {
			slotIdx := row*GridCols + col
			x := gridStartX + col*SlotSize
			y := gridStartY + row*SlotSize

			paste(img, ctx.Slot, x, y)

			item, ok := rec.Inventory[slotIdx]
			if !ok {
				continue
			}
			if icon := ctx.Atlas.Lookup(item.ID); icon != nil {
				off := (SlotSize - IconSize) / 2
				pasteOver(img, scaleNearest(icon, IconSize, IconSize), x+off, y+off)
			}
			if item.Count > 1 {
				ctx.drawCountLabel(img, x, y, item.Count)
			}
		}
	}

	return ctx.applyNineSlice(img)
}

// drawCountLabel renders the stack size bottom-right in the slot, trying
// scales from the default down to 1 until the label fits.
func (ctx *Context) drawCountLabel(img *image.NRGBA, x, y int, count int64) {
	label := FormatCount(count)
	maxW := SlotSize - countMargin

	scale := TextScaleCount
	for s := TextScaleCount; s >= 1; s-- {
		scale = s
		if ctx.Font.Measure(label, s) <= maxW {
			break
		}
	}

	textW := ctx.Font.Measure(label, scale)
	textH := ctx.Font.Height() * scale
	tx := x + SlotSize - textW - 4
	ty := y + SlotSize - textH - 4
	ctx.Font.Draw(img, tx, ty, label, labelColor, scale, false)
}

func scaleNearest(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// paste copies src onto dst replacing the destination rectangle.
func paste(dst, src *image.NRGBA, x, y int) {
	if src == nil {
		return
	}
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Src)
}

// pasteOver alpha-composites src onto dst.
func pasteOver(dst, src *image.NRGBA, x, y int) {
	if src == nil {
		return
	}
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Over)
}
