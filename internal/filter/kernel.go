package filter

import (
	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// Kernel3 is a 3x3 integer convolution kernel, indexed [row][column].
type Kernel3 [3][3]int

// SharpenKernel boosts the centre pixel against its 4-neighbours.
var SharpenKernel = Kernel3{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// ConvolveFilter applies a 3x3 kernel to the RGB channels of interior
// pixels (1 <= x < w-1, 1 <= y < h-1). The 1-pixel border and the alpha
// channel are copied unchanged. Sums are divided by Divisor with truncation
// toward zero and clamped to [0, 255].
type ConvolveFilter struct {
	Kernel  Kernel3
	Divisor int
}

// NewConvolveFilter creates a convolution filter.
// A zero divisor is treated as 1.
func NewConvolveFilter(kernel Kernel3, divisor int) *ConvolveFilter {
	if divisor == 0 {
		divisor = 1
	}
	return &ConvolveFilter{Kernel: kernel, Divisor: divisor}
}

// NewSharpenFilter creates the fixed sharpen filter.
func NewSharpenFilter() *ConvolveFilter {
	return NewConvolveFilter(SharpenKernel, 1)
}

// Apply writes the convolved image of src into dst.
func (f *ConvolveFilter) Apply(src *intImage.Buffer, dst []byte) {
	data := src.Data()
	copy(dst, data)

	width, height := src.Width(), src.Height()
	divisor := f.Divisor
	if divisor == 0 {
		divisor = 1
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			var r, g, b int

			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					weight := f.Kernel[ky][kx]
					if weight == 0 {
						continue
					}
					i := src.Index(x+kx-1, y+ky-1)
					r += int(data[i+0]) * weight
					g += int(data[i+1]) * weight
					b += int(data[i+2]) * weight
				}
			}

			i := src.Index(x, y)
			dst[i+0] = color.ClampChannel(r / divisor)
			dst[i+1] = color.ClampChannel(g / divisor)
			dst[i+2] = color.ClampChannel(b / divisor)
		}
	}
}
