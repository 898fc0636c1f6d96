package video

import (
	"image"
	"image/color"
	"testing"
)

func TestRoundedRectMaskCoverage(t *testing.T) {
	const w, h, r = 100, 80, 16
	mask := roundedRectMask(w, h, r)

	// Center and edge midpoints are inside the shape.
	inside := []image.Point{
		{w / 2, h / 2},
		{w / 2, 1},
		{w / 2, h - 2},
		{1, h / 2},
		{w - 2, h / 2},
	}
	for _, pt := range inside {
		if mask.AlphaAt(pt.X, pt.Y).A != 255 {
			t.Errorf("pixel %v should be opaque", pt)
		}
	}

	// The extreme corners lie outside the corner curves.
	corners := []image.Point{
		{0, 0},
		{w - 1, 0},
		{0, h - 1},
		{w - 1, h - 1},
	}
	for _, pt := range corners {
		if mask.AlphaAt(pt.X, pt.Y).A != 0 {
			t.Errorf("corner pixel %v should be transparent", pt)
		}
	}
}

func TestRoundedRectMaskCornerCurve(t *testing.T) {
	const w, h, r = 100, 80, 20
	mask := roundedRectMask(w, h, r)

	// A point just inside the corner circle (45 degrees from the corner
	// anchor at (r, r)) must be covered.
	rf := float64(r)
	onDiag := int(rf - rf/1.4142 + 2)
	if mask.AlphaAt(onDiag, onDiag).A != 255 {
		t.Errorf("point (%d, %d) inside corner arc should be opaque", onDiag, onDiag)
	}

	// A point between the corner and the arc must not be.
	if mask.AlphaAt(2, 2).A != 0 {
		t.Error("point (2, 2) outside corner arc should be transparent")
	}
}

func TestGaussianBlurUniformUnchanged(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 32, 32))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	dst := gaussianBlurAlpha(src, 4)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := dst.AlphaAt(x, y).A
			if got < 199 || got > 201 {
				t.Fatalf("uniform image changed under blur: pixel (%d, %d) = %d", x, y, got)
			}
		}
	}
}

func TestGaussianBlurZeroRadiusIsIdentity(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 8, 8))
	src.SetAlpha(4, 4, color.Alpha{A: 255})
	if got := gaussianBlurAlpha(src, 0); got != src {
		t.Error("radius 0 should return the source image unchanged")
	}
}

func TestGaussianBlurSpreads(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 21, 21))
	src.Pix[10*src.Stride+10] = 255

	dst := gaussianBlurAlpha(src, 4)
	center := dst.AlphaAt(10, 10).A
	neighbor := dst.AlphaAt(12, 10).A
	far := dst.AlphaAt(0, 0).A

	if center == 255 {
		t.Error("impulse should lose mass to neighbors")
	}
	if neighbor == 0 {
		t.Error("blur should spread mass to nearby pixels")
	}
	if neighbor >= center {
		t.Error("blur should decay away from the impulse")
	}
	if far != 0 {
		t.Errorf("mass should not reach beyond the kernel: corner = %d", far)
	}
}

func TestShadowLayerOpacity(t *testing.T) {
	c := newMaskShadowCache()
	key := CacheKey{OffsetX: 30, OffsetY: 30, Radius: 0, ShadowBlur: 2, ShadowOpacity: 0.5}

	shadow := c.shadow(key, 160, 160, 100, 100)
	if shadow == nil {
		t.Fatal("shadow expected")
	}

	// Deep inside the rectangle the blur sees a constant plateau, so the
	// alpha equals round(255 * opacity). RGB stays 0 (black shadow).
	cx, cy := 80, 80
	i := shadow.PixOffset(cx, cy)
	a := shadow.Pix[i+3]
	if a < 127 || a > 129 {
		t.Errorf("plateau alpha = %d, want ~128", a)
	}
	if shadow.Pix[i] != 0 || shadow.Pix[i+1] != 0 || shadow.Pix[i+2] != 0 {
		t.Error("shadow color should be black")
	}

	// Far from the rectangle the layer is transparent.
	if shadow.Pix[shadow.PixOffset(2, 2)+3] != 0 {
		t.Error("shadow should be transparent away from the content")
	}
}
