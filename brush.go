package canvas

import (
	"github.com/gogpu/canvas/internal/brush"
	"github.com/gogpu/canvas/internal/color"
)

// BrushOptions configures Stroke and Fill.
// There are no implicit defaults: the zero value paints nothing visible.
type BrushOptions struct {
	// Size is the brush diameter in pixels. The dab radius is
	// max(Size/2, 1).
	Size float32

	// Softness in [0.01, 1] shapes the radial falloff 1-(d/r)^(2*Softness).
	// Low values give a hard edge.
	Softness float32

	// Opacity in [0, 1]. For Fill it sets the replacement alpha.
	Opacity float32

	// R, G, B is the paint color.
	R, G, B uint8
}

// color returns the paint color; alpha is decided by the operation.
func (o BrushOptions) paint() color.ColorU8 {
	return color.ColorU8{R: o.R, G: o.G, B: o.B}
}

// params converts the options into clamped brush parameters.
func (o BrushOptions) params() brush.Params {
	return brush.NewParams(o.Size, o.Softness, o.Opacity, o.paint())
}
