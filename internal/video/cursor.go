package video

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/screenkit/screenkit/internal/config"
)

// ErrSpriteNoAlpha reports a cursor sprite without an alpha channel. The
// overlay blends through the sprite's alpha, so an opaque format is a
// precondition violation, caught at load time.
var ErrSpriteNoAlpha = errors.New("cursor sprite must have an alpha channel")

// LoadCursorSprite decodes the cursor image. The sprite is loaded once per
// run and treated as immutable; per-frame scaling works on copies.
func LoadCursorSprite(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cursor image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor image %s: %w", path, err)
	}

	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
	default:
		return nil, fmt.Errorf("%w: got %T", ErrSpriteNoAlpha, img)
	}

	sprite := image.NewNRGBA(img.Bounds())
	draw.Draw(sprite, sprite.Bounds(), img, img.Bounds().Min, draw.Src)
	return sprite, nil
}

// overlayCursor blends the sprite onto the frame at (x, y). Positions
// outside [0, frameWidth]×[0, frameHeight] are a no-op — capture-region
// arithmetic can push the cursor slightly past the edge and that is not an
// error. The sprite is clipped to the part that fits inside the frame.
func overlayCursor(frame *image.RGBA, sprite *image.NRGBA, x, y int, scale float64) {
	bounds := frame.Bounds()
	frameWidth, frameHeight := bounds.Dx(), bounds.Dy()
	if x < 0 || x > frameWidth || y < 0 || y > frameHeight {
		return
	}

	src := sprite
	if scale > 0 {
		w := int(float64(sprite.Bounds().Dx()) * scale * config.BaseCursorScale)
		h := int(float64(sprite.Bounds().Dy()) * scale * config.BaseCursorScale)
		if w < 1 || h < 1 {
			return
		}
		scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), sprite, sprite.Bounds(), xdraw.Src, nil)
		src = scaled
	}

	target := image.Rect(x, y, x+src.Bounds().Dx(), y+src.Bounds().Dy()).Intersect(bounds)
	draw.Draw(frame, target, src, image.Point{}, draw.Over)
}
