package video

import (
	"image"
	"math"
)

// bezierResolution is the number of line segments each corner curve is
// tessellated into. Tessellating quadratic Béziers into polygons avoids a
// native rounded-rectangle primitive and keeps results identical across
// rendering backends.
const bezierResolution = 16

type point struct {
	X, Y float64
}

// roundedRectMask builds a single-channel mask with a filled rounded
// rectangle covering the whole image.
func roundedRectMask(width, height, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	fillRoundedRect(mask, 0, 0, width, height, radius, 255)
	return mask
}

// fillRoundedRect fills the rectangle (x1, y1)-(x2, y2) with rounded
// corners of the given radius: first the inner octagon formed by cutting
// each corner at the radius offset, then one tessellated curve polygon per
// corner.
func fillRoundedRect(dst *image.Alpha, x1, y1, x2, y2, radius int, value uint8) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	fx1, fy1, fx2, fy2, r := float64(x1), float64(y1), float64(x2), float64(y2), float64(radius)

	octagon := []point{
		{fx1, fy1 + r}, {fx1 + r, fy1},
		{fx2 - r, fy1}, {fx2, fy1 + r},
		{fx2, fy2 - r}, {fx2 - r, fy2},
		{fx1 + r, fy2}, {fx1, fy2 - r},
	}
	fillPolygon(dst, octagon, value)

	// Each corner is a quadratic Bézier between the two tangent points,
	// anchored at the corner itself.
	corners := [4][3]point{
		{{fx1, fy1 + r}, {fx1, fy1}, {fx1 + r, fy1}},
		{{fx2 - r, fy1}, {fx2, fy1}, {fx2, fy1 + r}},
		{{fx2, fy2 - r}, {fx2, fy2}, {fx2 - r, fy2}},
		{{fx1 + r, fy2}, {fx1, fy2}, {fx1, fy2 - r}},
	}
	for _, c := range corners {
		fillPolygon(dst, tessellateQuad(c[0], c[1], c[2], bezierResolution), value)
	}
}

// tessellateQuad samples a quadratic Bézier through (p0, anchor, p2) into n
// points.
func tessellateQuad(p0, anchor, p2 point, n int) []point {
	pts := make([]point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		u := 1 - t
		pts[i] = point{
			X: u*u*p0.X + 2*u*t*anchor.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*anchor.Y + t*t*p2.Y,
		}
	}
	return pts
}

// fillPolygon rasterizes a filled polygon into the alpha image using an
// even-odd scanline sweep. Sampling happens at pixel centers.
func fillPolygon(dst *image.Alpha, pts []point, value uint8) {
	if len(pts) < 3 {
		return
	}
	bounds := dst.Bounds()

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	yStart := max(bounds.Min.Y, int(math.Floor(minY)))
	yEnd := min(bounds.Max.Y-1, int(math.Ceil(maxY)))

	xs := make([]float64, 0, len(pts))
	for y := yStart; y <= yEnd; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]

		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= cy) == (b.Y <= cy) {
				continue
			}
			t := (cy - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		if len(xs) < 2 {
			continue
		}
		sortFloats(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(bounds.Min.X, int(math.Round(xs[i])))
			x1 := min(bounds.Max.X-1, int(math.Round(xs[i+1]))-1)
			// A span narrower than a pixel still covers its center.
			if x1 < x0 && xs[i+1] > xs[i] {
				x1 = x0
			}
			row := dst.PixOffset(x0, y)
			for x := x0; x <= x1; x++ {
				dst.Pix[row+(x-x0)] = value
			}
		}
	}
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// gaussianBlurAlpha applies a separable Gaussian blur to a single-channel
// image. The blur radius maps to sigma = radius/2 with a 3-sigma kernel.
func gaussianBlurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	sigma := float64(radius) / 2
	half := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Horizontal pass into a scratch buffer, then vertical.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for k := -half; k <= half; k++ {
				sx := clamp(x+k, 0, w-1)
				acc += kernel[k+half] * float64(src.Pix[y*src.Stride+sx])
			}
			tmp[y*w+x] = acc
		}
	}

	dst := image.NewAlpha(bounds)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for k := -half; k <= half; k++ {
				sy := clamp(y+k, 0, h-1)
				acc += kernel[k+half] * tmp[sy*w+x]
			}
			dst.Pix[y*dst.Stride+x] = uint8(math.Round(acc))
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
