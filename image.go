package canvas

import (
	"image"

	intImage "github.com/gogpu/canvas/internal/image"
)

// ToImage returns a copy of the canvas as an *image.NRGBA, ready for the
// standard image encoders.
func (e *Engine) ToImage() *image.NRGBA {
	return e.buf.ToStdImage()
}

// LoadImage replaces the buffer with img converted to straight-alpha RGBA8
// and sets the dimensions to img's bounds. Like Load, it discards all
// history.
func (e *Engine) LoadImage(img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	e.replace(intImage.FromStdImage(img))
	return nil
}
