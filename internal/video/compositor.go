package video

import (
	"image"
	"image/draw"
)

// compositeFrame assembles one output frame: the shadow layer is
// alpha-composited over the canvas, then the foreground is pasted at the
// content offset through its mask. canvas must be a caller-owned copy — the
// shared background is never mutated. A nil mask means fully opaque; a nil
// shadow means fully transparent.
func compositeFrame(canvas *image.RGBA, foreground *image.RGBA, mask *image.Alpha, shadow *image.RGBA, offsetX, offsetY int) {
	if shadow != nil {
		draw.Draw(canvas, canvas.Bounds(), shadow, image.Point{}, draw.Over)
	}

	fg := foreground.Bounds()
	target := image.Rect(offsetX, offsetY, offsetX+fg.Dx(), offsetY+fg.Dy())
	if mask != nil {
		draw.DrawMask(canvas, target, foreground, fg.Min, mask, mask.Bounds().Min, draw.Over)
	} else {
		draw.Draw(canvas, target, foreground, fg.Min, draw.Src)
	}
}

// cloneRGBA copies an image so compositing cannot touch the original.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
