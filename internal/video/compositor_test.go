package video

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestCompositeZeroStylePassThrough(t *testing.T) {
	// Canvas equals content size, no mask, no shadow: the output is the
	// foreground, untouched.
	canvas := solidFrame(8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fg := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range fg.Pix {
		fg.Pix[i] = uint8(i % 251)
	}
	fgCopy := cloneRGBA(fg)

	compositeFrame(canvas, fg, nil, nil, 0, 0)

	if !bytes.Equal(canvas.Pix, fgCopy.Pix) {
		t.Error("zero-style composite must reproduce the foreground exactly")
	}
	if !bytes.Equal(fg.Pix, fgCopy.Pix) {
		t.Error("composite must not mutate the foreground")
	}
}

func TestCompositePreservesBackgroundOutsideContent(t *testing.T) {
	bgColor := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	canvas := solidFrame(20, 20, bgColor)
	fg := solidFrame(10, 10, color.RGBA{R: 200, A: 255})

	compositeFrame(canvas, fg, nil, nil, 5, 5)

	if got := canvas.RGBAAt(0, 0); got != bgColor {
		t.Errorf("background corner overwritten: %v", got)
	}
	if got := canvas.RGBAAt(5, 5); got.R != 200 {
		t.Errorf("foreground not pasted at offset: %v", got)
	}
	if got := canvas.RGBAAt(14, 14); got.R != 200 {
		t.Errorf("foreground extent wrong: %v", got)
	}
	if got := canvas.RGBAAt(15, 15); got != bgColor {
		t.Errorf("pixel past the foreground overwritten: %v", got)
	}
}

func TestCompositeMaskedCorners(t *testing.T) {
	bgColor := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	canvas := solidFrame(40, 40, bgColor)
	fg := solidFrame(20, 20, color.RGBA{G: 250, A: 255})
	mask := roundedRectMask(20, 20, 6)

	compositeFrame(canvas, fg, mask, nil, 10, 10)

	// The masked foreground corner lets the background through.
	if got := canvas.RGBAAt(10, 10); got != bgColor {
		t.Errorf("rounded corner should show background: %v", got)
	}
	if got := canvas.RGBAAt(20, 20); got.G != 250 {
		t.Errorf("foreground center missing: %v", got)
	}
}

func TestCompositeShadowDarkensBackground(t *testing.T) {
	canvas := solidFrame(60, 60, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	cache := newMaskShadowCache()
	key := CacheKey{OffsetX: 20, OffsetY: 20, Radius: 0, ShadowBlur: 4, ShadowOpacity: 0.8}
	shadow := cache.shadow(key, 60, 60, 20, 20)
	fg := solidFrame(20, 20, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	compositeFrame(canvas, fg, nil, shadow, 20, 20)

	// Just outside the content edge the blurred shadow bleeds onto the
	// white background.
	edge := canvas.RGBAAt(18, 30)
	if edge.R >= 255 {
		t.Errorf("shadow should darken the background near the content: %v", edge)
	}
	// Far away the background is untouched.
	if got := canvas.RGBAAt(2, 2); got.R != 255 {
		t.Errorf("shadow reached too far: %v", got)
	}
}

func TestCloneRGBAIndependent(t *testing.T) {
	src := solidFrame(4, 4, color.RGBA{R: 7, A: 255})
	dst := cloneRGBA(src)
	dst.SetRGBA(0, 0, color.RGBA{R: 99, A: 255})

	if src.RGBAAt(0, 0).R != 7 {
		t.Error("mutating the clone leaked into the source")
	}
}
