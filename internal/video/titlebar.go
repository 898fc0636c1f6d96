package video

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

const (
	titleBarHeight  = 42
	buttonRadius    = 7
	buttonLeftInset = 13
	buttonSpacing   = 8
)

// Traffic-light button colors, left to right.
var buttonColors = [3]color.RGBA{
	{R: 254, G: 92, B: 84, A: 255},
	{R: 253, G: 188, B: 46, A: 255},
	{R: 36, G: 201, B: 62, A: 255},
}

// drawTitleBar paints a solid bar across the top of the frame and three
// filled indicator circles, emulating a desktop window title bar.
func drawTitleBar(frame *image.RGBA, fill color.RGBA) {
	width := frame.Bounds().Dx()
	bar := image.Rect(0, 0, width, titleBarHeight)
	draw.Draw(frame, bar, image.NewUniform(fill), image.Point{}, draw.Src)

	centerY := titleBarHeight / 2
	for i, c := range buttonColors {
		centerX := buttonLeftInset + buttonSpacing*(i+1) + buttonRadius*(2*i+1)
		fillCircle(frame, centerX, centerY, buttonRadius, c)
	}
}

// fillCircle rasterizes an anti-aliased filled circle, shading edge pixels
// by their center's distance to the radius.
func fillCircle(dst *image.RGBA, cx, cy, r int, c color.RGBA) {
	bounds := dst.Bounds()
	fr := float64(r)
	for y := cy - r - 1; y <= cy+r+1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - r - 1; x <= cx+r+1; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			d := math.Hypot(float64(x-cx), float64(y-cy))
			cover := fr + 0.5 - d
			if cover <= 0 {
				continue
			}
			if cover >= 1 {
				dst.SetRGBA(x, y, c)
				continue
			}
			blendPixel(dst, x, y, c, cover)
		}
	}
}

func blendPixel(dst *image.RGBA, x, y int, c color.RGBA, cover float64) {
	old := dst.RGBAAt(x, y)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a)*cover + float64(b)*(1-cover)))
	}
	dst.SetRGBA(x, y, color.RGBA{
		R: mix(c.R, old.R),
		G: mix(c.G, old.G),
		B: mix(c.B, old.B),
		A: 255,
	})
}
