package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/canvas/internal/brush"
	"github.com/gogpu/canvas/internal/fill"
	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/internal/history"
	intImage "github.com/gogpu/canvas/internal/image"
)

// scratchSlices is the number of spare pixel slices an engine keeps for
// filters and history restores.
const scratchSlices = 2

// Engine is a raster canvas: one RGBA8 buffer plus its undo history.
//
// Engine is not safe for concurrent use.
type Engine struct {
	buf     *intImage.Buffer
	history *history.Stack
	scratch *intImage.Pool
}

// New creates an engine with a zero-filled (transparent black) buffer and
// empty history. Zero dimensions are allowed; negative dimensions return
// ErrInvalidDimensions.
func New(width, height int, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	buf, err := intImage.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas: new %dx%d: %w", width, height, err)
	}

	codec, err := o.codec()
	if err != nil {
		return nil, fmt.Errorf("canvas: history codec: %w", err)
	}

	return &Engine{
		buf:     buf,
		history: history.New(o.historyLimit, codec),
		scratch: intImage.NewPool(scratchSlices),
	}, nil
}

// Width returns the buffer width in pixels.
func (e *Engine) Width() int {
	return e.buf.Width()
}

// Height returns the buffer height in pixels.
func (e *Engine) Height() int {
	return e.buf.Height()
}

// Export returns an independent copy of the pixel bytes.
func (e *Engine) Export() []byte {
	return e.buf.Bytes()
}

// Pixel returns the color at (x, y). ok is false when (x, y) is outside
// the buffer.
func (e *Engine) Pixel(x, y int) (r, g, b, a uint8, ok bool) {
	if !e.buf.InBounds(x, y) {
		return 0, 0, 0, 0, false
	}
	c := e.buf.Pixel(x, y)
	return c.R, c.G, c.B, c.A, true
}

// Load replaces the buffer with a copy of data and sets the dimensions.
// len(data) must equal width*height*4; otherwise ErrInvalidDimensions is
// returned and the engine is unchanged. Load discards all history.
func (e *Engine) Load(data []byte, width, height int) error {
	buf, err := intImage.FromBytes(data, width, height)
	if err != nil {
		return fmt.Errorf("canvas: load %dx%d from %d bytes: %w", width, height, len(data), err)
	}
	e.replace(buf)
	return nil
}

// replace installs buf as the new canvas and resets history.
func (e *Engine) replace(buf *intImage.Buffer) {
	e.buf = buf
	e.history.Reset()
	e.scratch.Reset()
	Logger().Info("canvas: buffer loaded", "width", buf.Width(), "height", buf.Height())
}

// Clear sets every pixel to transparent black.
func (e *Engine) Clear() {
	e.snapshot()
	e.buf.Clear()
}

// Stroke paints (or, with erase, removes alpha along) the segment from
// (startX, startY) to (endX, endY). Dabs are placed at most one pixel
// apart, so a zero-length stroke places a single dab. Pixels outside the
// buffer are skipped.
func (e *Engine) Stroke(startX, startY, endX, endY float32, opts BrushOptions, erase bool) {
	e.snapshot()

	start := brush.Point{X: float64(startX), Y: float64(startY)}
	end := brush.Point{X: float64(endX), Y: float64(endY)}
	dabs := brush.Stroke(e.buf, start, end, opts.params(), erase)

	Logger().Debug("canvas: stroke", "dabs", dabs, "erase", erase)
}

// Fill replaces the 4-connected region sharing the color of (x, y) with
// (R, G, B, round(Opacity*255)). An out-of-bounds seed does nothing. A
// fill whose replacement equals the seed color leaves the pixels unchanged
// but still records a history entry.
func (e *Engine) Fill(x, y int, opts BrushOptions) {
	if !e.buf.InBounds(x, y) {
		Logger().Debug("canvas: fill seed out of bounds", "x", x, "y", y)
		return
	}

	e.snapshot()

	replacement := fill.Replacement(opts.paint(), opts.Opacity)
	if e.buf.Pixel(x, y) == replacement {
		Logger().Debug("canvas: fill no-op, seed already holds replacement", "x", x, "y", y)
		return
	}
	painted := fill.Fill(e.buf, x, y, replacement)

	Logger().Debug("canvas: fill", "x", x, "y", y, "pixels", painted)
}

// ApplyFilter applies a whole-buffer filter. intensity is used by Blur
// (clamped to >= 0) and Brightness (clamped to [-1, 1]) and ignored by the
// others. An unknown kind does nothing.
func (e *Engine) ApplyFilter(kind FilterKind, intensity float32) {
	if !kind.valid() {
		Logger().Warn("canvas: unknown filter", "kind", kind)
		return
	}

	e.snapshot()

	var point filter.PointFilter
	switch kind {
	case Blur:
		radius := filter.BlurRadius(intensity)
		e.convolve(filter.NewBoxBlurFilter(radius))
		Logger().Debug("canvas: blur", "radius", radius)
		return
	case Sharpen:
		e.convolve(filter.NewSharpenFilter())
		return
	case Invert:
		point = filter.NewInvertFilter()
	case Grayscale:
		point = filter.NewGrayscaleFilter()
	case Brightness:
		point = filter.NewBrightnessFilter(intensity)
	}
	point.ApplyInPlace(e.buf)
}

// convolve runs a neighbourhood filter into a scratch slice and swaps the
// result in.
func (e *Engine) convolve(f filter.Filter) {
	dst := e.scratch.Get(e.buf.Len())
	f.Apply(e.buf, dst)
	e.scratch.Put(e.buf.Swap(dst))
}

// Undo restores the state before the most recent mutation. It returns
// false, changing nothing, when there is nothing to undo.
func (e *Engine) Undo() bool {
	state, err := e.history.Undo(e.buf.Data())
	return e.restore("undo", state, err, history.ErrNothingToUndo)
}

// Redo reapplies the most recently undone mutation. It returns false,
// changing nothing, when there is nothing to redo.
func (e *Engine) Redo() bool {
	state, err := e.history.Redo(e.buf.Data())
	return e.restore("redo", state, err, history.ErrNothingToRedo)
}

func (e *Engine) restore(op string, state []byte, err, empty error) bool {
	if err != nil {
		if !errors.Is(err, empty) {
			Logger().Warn("canvas: "+op+" failed", "err", err)
		}
		return false
	}
	old := e.buf.Data()
	if err := e.buf.Restore(state); err != nil {
		Logger().Warn("canvas: "+op+" snapshot size mismatch", "got", len(state), "want", len(old))
		return false
	}
	e.scratch.Put(old)
	return true
}

// snapshot records the current buffer before a mutation.
func (e *Engine) snapshot() {
	if evicted := e.history.Snapshot(e.buf.Data()); evicted > 0 {
		Logger().Debug("canvas: history full, evicted oldest", "evicted", evicted, "limit", e.history.Limit())
	}
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoDepth returns the number of available undo steps.
func (e *Engine) UndoDepth() int {
	return e.history.UndoLen()
}

// RedoDepth returns the number of available redo steps.
func (e *Engine) RedoDepth() int {
	return e.history.RedoLen()
}

// HistoryBytes returns the memory held by stored snapshots, after
// compression.
func (e *Engine) HistoryBytes() int {
	return e.history.Bytes()
}
