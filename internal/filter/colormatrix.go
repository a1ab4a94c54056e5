package filter

import (
	"math"

	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// ColorMatrixFilter applies a 4x5 color transformation matrix to each pixel.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Channels are in [0, 255] during the transformation; results are rounded
// and clamped back to bytes.
type ColorMatrixFilter struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float64
}

// BrightnessScale converts brightness intensity to a channel offset.
const BrightnessScale = 255

// NewColorMatrixFilter creates a color matrix filter with the given matrix.
func NewColorMatrixFilter(matrix [20]float64) *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: matrix}
}

// NewIdentityColorMatrix creates a color matrix filter that passes through unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float64{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
	}
}

// NewGrayscaleFilter sets R, G and B to round(0.299R + 0.587G + 0.114B).
func NewGrayscaleFilter() *ColorMatrixFilter {
	const (
		lr = color.LumaR
		lg = color.LumaG
		lb = color.LumaB
	)
	return &ColorMatrixFilter{
		Matrix: [20]float64{
			lr, lg, lb, 0, 0,
			lr, lg, lb, 0, 0,
			lr, lg, lb, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertFilter maps each color channel c to 255-c.
func NewInvertFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float64{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
	}
}

// NewBrightnessFilter adds round(intensity*255) to each color channel.
// intensity is clamped to [-1, 1]; NaN is treated as 0.
func NewBrightnessFilter(intensity float32) *ColorMatrixFilter {
	offset := BrightnessOffset(intensity)
	return &ColorMatrixFilter{
		Matrix: [20]float64{
			1, 0, 0, 0, offset,
			0, 1, 0, 0, offset,
			0, 0, 1, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// BrightnessOffset returns round(clamp(intensity, -1, 1) * 255).
func BrightnessOffset(intensity float32) float64 {
	return math.Round(color.Clamp(float64(intensity), -1, 1) * BrightnessScale)
}

// ApplyInPlace transforms every pixel of buf.
func (f *ColorMatrixFilter) ApplyInPlace(buf *intImage.Buffer) {
	m := &f.Matrix
	data := buf.Data()

	for i := 0; i+intImage.Channels <= len(data); i += intImage.Channels {
		r := float64(data[i+0])
		g := float64(data[i+1])
		b := float64(data[i+2])
		a := float64(data[i+3])

		data[i+0] = color.RoundChannel(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		data[i+1] = color.RoundChannel(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		data[i+2] = color.RoundChannel(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		data[i+3] = color.RoundChannel(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
	}
}

// IsIdentity reports whether the matrix leaves every pixel unchanged.
func (f *ColorMatrixFilter) IsIdentity() bool {
	return f.Matrix == NewIdentityColorMatrix().Matrix
}
