// Package image provides the pixel buffer owned by a canvas engine.
//
// A Buffer is a single straight-alpha RGBA8 plane stored row-major with no
// row padding: pixel (x, y) occupies bytes [(y*width+x)*4, +4).
package image

import (
	"errors"
	"math"

	"github.com/gogpu/canvas/internal/color"
)

// Channels is the number of bytes per pixel.
const Channels = 4

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when the byte length does not match
	// width*height*4, or when a dimension is negative.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")
)

// Buffer is an RGBA8 pixel buffer.
//
// Pixel and SetPixel do not bounds-check; callers clip coordinates first.
// Buffer is not safe for concurrent use.
type Buffer struct {
	data   []byte
	width  int
	height int
}

// ByteLen returns width*height*4, or an error if the dimensions are negative
// or the size overflows int.
func ByteLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, ErrInvalidDimensions
	}
	if width != 0 && height > math.MaxInt/Channels/width {
		return 0, ErrInvalidDimensions
	}
	return width * height * Channels, nil
}

// New creates a zero-filled (transparent black) buffer.
func New(width, height int) (*Buffer, error) {
	n, err := ByteLen(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		data:   make([]byte, n),
		width:  width,
		height: height,
	}, nil
}

// FromBytes creates a buffer holding a copy of data.
// len(data) must equal width*height*4.
func FromBytes(data []byte, width, height int) (*Buffer, error) {
	n, err := ByteLen(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, ErrInvalidDimensions
	}
	b := &Buffer{
		data:   make([]byte, n),
		width:  width,
		height: height,
	}
	copy(b.data, data)
	return b, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Data returns the underlying pixel slice. Writes go straight to the buffer.
func (b *Buffer) Data() []byte {
	return b.data
}

// Len returns the size of the pixel data in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Index returns the byte offset of pixel (x, y).
func (b *Buffer) Index(x, y int) int {
	return (y*b.width + x) * Channels
}

// InBounds reports whether (x, y) addresses a pixel.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Pixel returns the color at (x, y).
func (b *Buffer) Pixel(x, y int) color.ColorU8 {
	i := b.Index(x, y)
	p := b.data[i : i+Channels : i+Channels]
	return color.ColorU8{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// SetPixel writes c at (x, y).
func (b *Buffer) SetPixel(x, y int, c color.ColorU8) {
	i := b.Index(x, y)
	p := b.data[i : i+Channels : i+Channels]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}

// Bytes returns an independent copy of the pixel data.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		data:   b.Bytes(),
		width:  b.width,
		height: b.height,
	}
}

// Restore installs data as the buffer contents. The buffer takes ownership
// of data; its length must equal Len().
func (b *Buffer) Restore(data []byte) error {
	if len(data) != len(b.data) {
		return ErrInvalidDimensions
	}
	b.data = data
	return nil
}

// Swap installs data and returns the previous pixel slice.
// Filters that compute into a scratch slice use it to publish the result.
func (b *Buffer) Swap(data []byte) []byte {
	old := b.data
	b.data = data
	return old
}

// Clear sets all pixels to transparent black.
func (b *Buffer) Clear() {
	clear(b.data)
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.ColorU8) {
	for i := 0; i < len(b.data); i += Channels {
		b.data[i+0] = c.R
		b.data[i+1] = c.G
		b.data[i+2] = c.B
		b.data[i+3] = c.A
	}
}

// Equal reports whether two buffers have the same dimensions and bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	return string(b.data) == string(other.data)
}

// IsEmpty returns true if the buffer has zero dimensions.
func (b *Buffer) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}
