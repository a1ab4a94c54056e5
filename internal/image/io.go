package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Registered decoders: PNG and JPEG from the standard library, BMP, TIFF
	// and WebP from x/image.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Load decodes the image file at path into a Buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: read file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes decodes an encoded image held in memory.
func LoadFromBytes(data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (*Buffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage converts any image.Image into a straight-alpha Buffer.
func FromStdImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf := &Buffer{
		data:   make([]byte, width*height*Channels),
		width:  width,
		height: height,
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		rowBytes := width * Channels
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.data[y*rowBytes:], nrgba.Pix[srcStart:srcStart+rowBytes])
		}
		return buf
	}

	// x/image/draw un-premultiplies when the destination is NRGBA.
	dst := buf.nrgbaView()
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return buf
}

// ToStdImage returns a copy of the buffer as *image.NRGBA.
func (b *Buffer) ToStdImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// nrgbaView wraps the buffer's pixels without copying.
func (b *Buffer) nrgbaView() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.width * Channels,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// Resize returns a new buffer scaled to width x height with Catmull-Rom
// resampling.
func Resize(src *Buffer, width, height int) (*Buffer, error) {
	dst, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if dst.IsEmpty() || src.IsEmpty() {
		return dst, nil
	}
	if width == src.width && height == src.height {
		copy(dst.data, src.data)
		return dst, nil
	}
	view := dst.nrgbaView()
	xdraw.CatmullRom.Scale(view, view.Bounds(), src.nrgbaView(), src.nrgbaView().Bounds(), xdraw.Src, nil)
	return dst, nil
}

// EncodePNG encodes the buffer as PNG to w.
func (b *Buffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.nrgbaView()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the buffer as a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
