// Package filter provides the whole-buffer filters of the canvas engine.
//
// Two kinds of filter live here:
//   - Neighbourhood filters (box blur, 3x3 convolution) read the source
//     buffer and write every byte of a separate destination slice, so no
//     output pixel ever observes a partially filtered neighbour.
//   - Point filters (grayscale, invert, brightness) are 4x5 color matrices
//     applied in place, one pixel at a time.
//
// Results are clamped to [0, 255]. Alpha is averaged by the blur and left
// untouched by every other filter.
package filter
