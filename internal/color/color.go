// Package color provides the 8-bit color value and channel arithmetic shared
// by the canvas mutation engines.
package color

import "math"

// ColorU8 represents a straight (non-premultiplied) color with uint8
// components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// Luma weights (ITU-R BT.601).
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// ClampChannel clamps an integer to [0, 255] and converts to uint8.
func ClampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// TruncChannel truncates a float toward zero and clamps it to [0, 255].
// NaN maps to 0.
func TruncChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// RoundChannel rounds a float half away from zero and clamps it to [0, 255].
// NaN maps to 0.
func RoundChannel(v float64) uint8 {
	return TruncChannel(math.Round(v))
}

// Luma returns round(0.299R + 0.587G + 0.114B).
func Luma(r, g, b uint8) uint8 {
	return RoundChannel(LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b))
}

// Clamp clamps v to [lo, hi]. NaN is treated as 0 before clamping.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
