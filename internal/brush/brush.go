// Package brush stamps circular, falloff-weighted dabs onto a pixel buffer.
//
// A stroke from start to end is sampled at max(|dx|, |dy|) evenly spaced
// points (at least one step), so consecutive dabs are never more than one
// pixel apart and a zero-length stroke still places a dab.
package brush

import (
	"math"

	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// Softness bounds.
const (
	MinSoftness = 0.01
	MaxSoftness = 1.0
)

// Point is a position in buffer pixel coordinates.
type Point struct {
	X, Y float64
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Params describes a brush. Use NewParams to apply the clamp policy.
type Params struct {
	// Radius is the dab radius in pixels, at least 1.
	Radius float64

	// Softness in [0.01, 1] sets the falloff exponent 2*Softness.
	Softness float64

	// Opacity in [0, 1] scales both color blending and erasing.
	Opacity float64

	// Color is the paint color; its alpha is ignored.
	Color color.ColorU8
}

// NewParams builds clamped brush parameters.
//
// size is clamped to >= 0 and halved into a radius that floors at 1,
// softness is clamped to [0.01, 1] and opacity to [0, 1]. NaN inputs are
// treated as 0 before clamping.
func NewParams(size, softness, opacity float32, c color.ColorU8) Params {
	s := color.Clamp(float64(size), 0, math.MaxFloat32)
	return Params{
		Radius:   max(s/2, 1),
		Softness: color.Clamp(float64(softness), MinSoftness, MaxSoftness),
		Opacity:  color.Clamp(float64(opacity), 0, 1),
		Color:    c,
	}
}

// Falloff returns 1 - (distance/radius)^(2*softness): 1 at the dab centre,
// 0 at the rim.
func (p Params) Falloff(distance float64) float64 {
	return 1 - math.Pow(distance/p.Radius, 2*p.Softness)
}

// Steps returns the number of intervals a stroke from start to end is split
// into: round(max(|dx|, |dy|)), at least 1.
func Steps(start, end Point) int {
	d := max(math.Abs(end.X-start.X), math.Abs(end.Y-start.Y))
	if !(d >= 1) {
		return 1
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(d))
}

// Stroke stamps steps+1 dabs evenly spaced from start to end, inclusive.
// It returns the number of dabs placed; a stroke with a non-finite endpoint
// places none.
func Stroke(buf *intImage.Buffer, start, end Point, p Params, erase bool) int {
	if !start.finite() || !end.finite() {
		return 0
	}
	steps := Steps(start, end)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		Stamp(buf, Point{
			X: start.X + (end.X-start.X)*t,
			Y: start.Y + (end.Y-start.Y)*t,
		}, p, erase)
	}
	return steps + 1
}

// Stamp applies one dab centred at c. Pixels are addressed by their integer
// coordinates, so the pixel at an integral centre has distance 0. The dab's
// bounding box is clipped to the buffer.
func Stamp(buf *intImage.Buffer, c Point, p Params, erase bool) {
	if math.IsNaN(c.X) || math.IsNaN(c.Y) {
		return
	}

	minX, maxX, ok := span(c.X, p.Radius, buf.Width())
	if !ok {
		return
	}
	minY, maxY, ok := span(c.Y, p.Radius, buf.Height())
	if !ok {
		return
	}

	data := buf.Data()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			distance := math.Hypot(float64(x)-c.X, float64(y)-c.Y)
			if distance > p.Radius {
				continue
			}
			falloff := p.Falloff(distance)
			i := buf.Index(x, y)
			px := data[i : i+intImage.Channels : i+intImage.Channels]

			if erase {
				px[3] = color.RoundChannel(float64(px[3]) * (1 - falloff*p.Opacity))
				continue
			}

			weight := falloff * p.Opacity
			px[0] = blendChannel(px[0], p.Color.R, weight)
			px[1] = blendChannel(px[1], p.Color.G, weight)
			px[2] = blendChannel(px[2], p.Color.B, weight)
			px[3] = max(px[3], color.TruncChannel(p.Opacity*255*falloff))
		}
	}
}

// blendChannel moves current toward target by weight, truncating toward zero.
func blendChannel(current, target uint8, weight float64) uint8 {
	c := float64(current)
	return color.TruncChannel(c + (float64(target)-c)*weight)
}

// span returns the inclusive pixel range [floor(c-r), ceil(c+r)] clipped to
// [0, size-1], and false when it is empty.
func span(c, r float64, size int) (lo, hi int, ok bool) {
	loF := math.Floor(c - r)
	hiF := math.Ceil(c + r)
	if hiF < 0 || loF > float64(size-1) || size == 0 {
		return 0, 0, false
	}
	lo = int(max(loF, 0))
	hi = int(min(hiF, float64(size-1)))
	return lo, hi, lo <= hi
}
