package filter

import intImage "github.com/gogpu/canvas/internal/image"

// Filter computes a filtered copy of src into dst.
// dst must have length src.Len(); every byte of dst is written.
type Filter interface {
	Apply(src *intImage.Buffer, dst []byte)
}

// PointFilter transforms each pixel independently, in place.
type PointFilter interface {
	ApplyInPlace(buf *intImage.Buffer)
}
