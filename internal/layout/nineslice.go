package layout

import (
	"image"
)

// Nine-slice source geometry: an 11x11 border image with 5px corners and
// 1px stretchable edges.
const (
	sliceCornerSrc = 5
	sliceSrcSize   = 11
)

// uiScale maps source border pixels to canvas pixels (one texel of the
// original 18px slot art is SlotSize/18 canvas pixels).
const destCorner = sliceCornerSrc * SlotSize / 18

// applyNineSlice wraps the composited canvas in the border image, keeping
// corners unscaled (beyond the fixed UI scale) and stretching only the edge
// strips. Returns the content unchanged when no border asset is loaded.
func (ctx *Context) applyNineSlice(content *image.NRGBA) *image.NRGBA {
	if ctx.Border == nil {
		return content
	}

	w := content.Bounds().Dx()
	h := content.Bounds().Dy()

	out := image.NewNRGBA(image.Rect(0, 0, w+destCorner*2, h+destCorner*2))
	paste(out, content, destCorner, destCorner)

	crop := func(x0, y0, x1, y1 int) *image.NRGBA {
		return ctx.Border.SubImage(image.Rect(x0, y0, x1, y1)).(*image.NRGBA)
	}

	tl := crop(0, 0, 5, 5)
	top := crop(5, 0, 6, 5)
	tr := crop(6, 0, 11, 5)
	left := crop(0, 5, 5, 6)
	right := crop(6, 5, 11, 6)
	bl := crop(0, 6, 5, 11)
	bottom := crop(5, 6, 6, 11)
	br := crop(6, 6, 11, 11)

	pasteOver(out, scaleNearest(tl, destCorner, destCorner), 0, 0)
	pasteOver(out, scaleNearest(tr, destCorner, destCorner), w+destCorner, 0)
	pasteOver(out, scaleNearest(bl, destCorner, destCorner), 0, h+destCorner)
	pasteOver(out, scaleNearest(br, destCorner, destCorner), w+destCorner, h+destCorner)

	pasteOver(out, scaleNearest(top, w, destCorner), destCorner, 0)
	pasteOver(out, scaleNearest(bottom, w, destCorner), destCorner, h+destCorner)
	pasteOver(out, scaleNearest(left, destCorner, h), 0, destCorner)
	pasteOver(out, scaleNearest(right, destCorner, h), w+destCorner, destCorner)

	return out
}
