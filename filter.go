package canvas

import (
	"fmt"
	"strings"
)

// FilterKind selects a whole-buffer filter for ApplyFilter.
type FilterKind int

const (
	// Blur is a box blur of radius max(1, round(intensity*5)).
	Blur FilterKind = iota

	// Sharpen convolves interior pixels with a fixed 3x3 sharpen kernel.
	// Intensity is ignored.
	Sharpen

	// Invert replaces each color channel c with 255-c. Intensity is ignored.
	Invert

	// Grayscale replaces color with its rounded Rec. 601 luma.
	// Intensity is ignored.
	Grayscale

	// Brightness adds round(intensity*255) to each color channel.
	Brightness
)

var filterNames = [...]string{
	Blur:       "blur",
	Sharpen:    "sharpen",
	Invert:     "invert",
	Grayscale:  "grayscale",
	Brightness: "brightness",
}

// String returns the lower-case filter name.
func (k FilterKind) String() string {
	if k.valid() {
		return filterNames[k]
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}

func (k FilterKind) valid() bool {
	return k >= 0 && int(k) < len(filterNames)
}

// ParseFilterKind returns the FilterKind named s, case-insensitively.
func ParseFilterKind(s string) (FilterKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range filterNames {
		if n == name {
			return FilterKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}
