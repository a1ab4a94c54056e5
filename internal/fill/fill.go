// Package fill implements 4-connected flood fill over a pixel buffer.
//
// The fill is a breadth-first traversal with no visited set. A pixel is
// painted only when, at dequeue time, it still holds the target color; once
// painted it can never match the target again, so duplicate queue entries
// are discarded when they come up. Neighbours are enqueued unconditionally.
package fill

import (
	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// Replacement returns the color a fill writes: (r, g, b, round(opacity*255)).
// opacity is clamped to [0, 1]; NaN is treated as 0.
func Replacement(c color.ColorU8, opacity float32) color.ColorU8 {
	c.A = color.RoundChannel(color.Clamp(float64(opacity), 0, 1) * 255)
	return c
}

// point is a queued pixel coordinate.
type point struct {
	x, y int
}

// Fill replaces the 4-connected region of pixels matching the seed's color
// with replacement. It returns the number of pixels painted; 0 when the
// seed is out of bounds or already holds replacement.
func Fill(buf *intImage.Buffer, x, y int, replacement color.ColorU8) int {
	if !buf.InBounds(x, y) {
		return 0
	}
	target := buf.Pixel(x, y)
	if target == replacement {
		return 0
	}

	width, height := buf.Width(), buf.Height()
	painted := 0

	queue := []point{{x, y}}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		if buf.Pixel(p.x, p.y) != target {
			continue
		}
		buf.SetPixel(p.x, p.y, replacement)
		painted++

		if p.x > 0 {
			queue = append(queue, point{p.x - 1, p.y})
		}
		if p.x+1 < width {
			queue = append(queue, point{p.x + 1, p.y})
		}
		if p.y > 0 {
			queue = append(queue, point{p.x, p.y - 1})
		}
		if p.y+1 < height {
			queue = append(queue, point{p.x, p.y + 1})
		}

		// Drop the consumed prefix once it dominates the slice.
		if head >= 4096 && head*2 >= len(queue) {
			queue = append(queue[:0], queue[head+1:]...)
			head = -1
		}
	}

	return painted
}
