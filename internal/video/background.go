package video

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/screenkit/screenkit/internal/config"
)

// ErrInvalidColor reports a malformed hex string or RGB triple.
var ErrInvalidColor = errors.New("invalid color")

type backgroundKind int

const (
	backgroundFile backgroundKind = iota
	backgroundPreset
	backgroundColor
)

// Background is a resolved background specification: an image file, a named
// wallpaper preset, or a solid color.
type Background struct {
	kind backgroundKind
	path string
	rgb  color.RGBA
}

// BackgroundFile references an image on disk.
func BackgroundFile(path string) Background {
	return Background{kind: backgroundFile, path: path}
}

// BackgroundPreset references a bundled wallpaper by asset path.
func BackgroundPreset(assetPath string) Background {
	return Background{kind: backgroundPreset, path: assetPath}
}

// BackgroundColor is a solid fill.
func BackgroundColor(c color.RGBA) Background {
	return Background{kind: backgroundColor, rgb: c}
}

// BackgroundRGB validates an explicit triple: exactly 3 components in [0, 255].
func BackgroundRGB(rgb []int) (Background, error) {
	if len(rgb) != 3 {
		return Background{}, fmt.Errorf("%w: RGB triple must have 3 components, got %d", ErrInvalidColor, len(rgb))
	}
	for _, c := range rgb {
		if c < 0 || c > 255 {
			return Background{}, fmt.Errorf("%w: RGB component %d out of range [0, 255]", ErrInvalidColor, c)
		}
	}
	return BackgroundColor(color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}), nil
}

// ParseBackground resolves a background string in order: an existing file
// path, a known preset name, a 6-hex-digit color. Anything else fails.
func ParseBackground(spec string, opts *config.Enhance) (Background, error) {
	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		return BackgroundFile(spec), nil
	}
	if rel, ok := config.BackgroundMap[spec]; ok {
		return BackgroundPreset(opts.AssetPath(rel)), nil
	}
	if rgb, err := ParseHexColor(spec); err == nil {
		return BackgroundColor(rgb), nil
	}
	return Background{}, fmt.Errorf("%w: %q is not a file, preset, or hex color", ErrInvalidColor, spec)
}

// ParseHexColor parses a 6-hex-digit color string, with or without a
// leading "#".
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: hex color must have 6 digits, got %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q is not hexadecimal", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// Resolve produces the background canvas, always exactly canvas-sized.
// Image-backed backgrounds are loaded once per run and scaled to fit.
func (b Background) Resolve(canvasWidth, canvasHeight int) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))

	switch b.kind {
	case backgroundColor:
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(b.rgb), image.Point{}, draw.Src)
		return canvas, nil
	case backgroundFile, backgroundPreset:
		f, err := os.Open(b.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open background image: %w", err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode background image %s: %w", b.path, err)
		}
		xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		return canvas, nil
	default:
		return nil, fmt.Errorf("%w: unresolved background", ErrInvalidColor)
	}
}
