package canvas

import (
	"errors"

	intImage "github.com/gogpu/canvas/internal/image"
)

// Common errors.
var (
	// ErrInvalidDimensions is returned by New, Load and LoadImage when a
	// dimension is negative, the size overflows, or the data length is not
	// width*height*4.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrNilImage is returned by LoadImage for a nil image.
	ErrNilImage = errors.New("canvas: nil image")

	// ErrUnknownFilter is returned by ParseFilterKind.
	ErrUnknownFilter = errors.New("canvas: unknown filter")
)
