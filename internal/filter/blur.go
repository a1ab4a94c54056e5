package filter

import (
	"math"

	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// BlurScale converts blur intensity to a radius in pixels.
const BlurScale = 5

// BlurRadius returns max(1, round(intensity*BlurScale)).
// Negative and NaN intensities are treated as 0.
func BlurRadius(intensity float32) int {
	v := color.Clamp(float64(intensity), 0, math.MaxInt32/BlurScale)
	r := int(math.Round(v * BlurScale))
	if r < 1 {
		return 1
	}
	return r
}

// BoxBlurFilter replaces every pixel with the unweighted mean of the
// (2*Radius+1)^2 window around it. The window is clipped to the buffer:
// edge pixels average over fewer samples, with no padding or wrapping.
// All four channels are averaged and the mean is truncated.
//
// The window sum is separable, so Apply runs a horizontal and a vertical
// prefix-sum pass and costs O(w*h) regardless of radius.
type BoxBlurFilter struct {
	// Radius is the window half-size in pixels.
	Radius int
}

// NewBoxBlurFilter creates a box blur with the given radius.
func NewBoxBlurFilter(radius int) *BoxBlurFilter {
	return &BoxBlurFilter{Radius: radius}
}

// Apply writes the blurred image of src into dst.
func (f *BoxBlurFilter) Apply(src *intImage.Buffer, dst []byte) {
	width, height := src.Width(), src.Height()
	if width == 0 || height == 0 {
		return
	}

	radius := f.Radius
	if radius < 0 {
		radius = 0
	}
	// A window wider than the buffer covers the same pixels as one that
	// just spans it.
	if limit := max(width, height); radius > limit {
		radius = limit
	}

	// Pass 1: horizontal window sums (src -> temp)
	temp := make([]uint32, width*height*intImage.Channels)
	blurHorizontal(src.Data(), temp, width, height, radius)

	// Pass 2: vertical window sums of temp, divided by the window area
	blurVertical(temp, dst, width, height, radius)
}

// blurHorizontal stores, for each pixel, the per-channel sum over the
// clipped horizontal window [x-r, x+r].
func blurHorizontal(src []byte, temp []uint32, width, height, radius int) {
	prefix := make([]uint32, (width+1)*intImage.Channels)

	for y := 0; y < height; y++ {
		row := y * width * intImage.Channels

		for x := 0; x < width; x++ {
			s := row + x*intImage.Channels
			p := x * intImage.Channels
			for c := 0; c < intImage.Channels; c++ {
				prefix[p+intImage.Channels+c] = prefix[p+c] + uint32(src[s+c])
			}
		}

		for x := 0; x < width; x++ {
			lo := max(x-radius, 0) * intImage.Channels
			hi := (min(x+radius, width-1) + 1) * intImage.Channels
			t := row + x*intImage.Channels
			for c := 0; c < intImage.Channels; c++ {
				temp[t+c] = prefix[hi+c] - prefix[lo+c]
			}
		}
	}
}

// blurVertical sums temp over the clipped vertical window [y-r, y+r] and
// writes the truncated mean to dst.
func blurVertical(temp []uint32, dst []byte, width, height, radius int) {
	stride := width * intImage.Channels
	prefix := make([]uint64, (height+1)*intImage.Channels)

	for x := 0; x < width; x++ {
		col := x * intImage.Channels

		for y := 0; y < height; y++ {
			t := y*stride + col
			p := y * intImage.Channels
			for c := 0; c < intImage.Channels; c++ {
				prefix[p+intImage.Channels+c] = prefix[p+c] + uint64(temp[t+c])
			}
		}

		countX := uint64(min(x+radius, width-1) - max(x-radius, 0) + 1)

		for y := 0; y < height; y++ {
			loY := max(y-radius, 0)
			hiY := min(y+radius, height-1)
			count := countX * uint64(hiY-loY+1)

			lo := loY * intImage.Channels
			hi := (hiY + 1) * intImage.Channels
			d := y*stride + col
			for c := 0; c < intImage.Channels; c++ {
				dst[d+c] = uint8((prefix[hi+c] - prefix[lo+c]) / count)
			}
		}
	}
}
