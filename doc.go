// Package canvas provides a raster canvas engine for Go.
//
// # Overview
//
// An Engine owns one straight-alpha RGBA8 pixel buffer and mutates it in
// place: soft circular brush strokes, eraser strokes, 4-connected flood
// fill, and whole-buffer filters (box blur, sharpen, grayscale, invert,
// brightness). Every mutation is undoable through a bounded snapshot
// history.
//
// The engine is the core of a drawing surface. Input handling, UI, file
// formats and transport belong to the host application, which calls engine
// operations synchronously and reads the result back with Export.
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	e, err := canvas.New(512, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Soft red stroke
//	e.Stroke(10, 10, 500, 400, canvas.BrushOptions{
//	    Size: 24, Softness: 0.5, Opacity: 0.8, R: 255,
//	}, false)
//
//	// Fill the background and blur
//	e.Fill(0, 511, canvas.BrushOptions{Opacity: 1, B: 255})
//	e.ApplyFilter(canvas.Blur, 0.4)
//
//	e.Undo() // removes the blur
//	pixels := e.Export()
//
// # Pixel Layout
//
// Pixel (x, y) occupies bytes [(y*Width()+x)*4, +4) of Export and Load,
// channel order R, G, B, A, rows top to bottom with no padding. Channels
// are not premultiplied.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Brush centres are float32; pixels are addressed by integer coordinates
//
// # History
//
// Each mutating call (Clear, Stroke, Fill, ApplyFilter) first pushes a full
// snapshot onto the undo stack and clears the redo stack. The undo stack
// holds at most 32 snapshots by default (see WithHistoryLimit); the oldest
// is evicted first. Snapshots may be zstd-compressed (see
// WithCompressedHistory) and always restore byte-exactly. Load and
// LoadImage replace the buffer and discard all history.
//
// # Input Policy
//
// Invalid dimensions are the only reported error. Other numeric inputs are
// clamped: Opacity to [0,1], Softness to [0.01,1], Size to >= 0, blur
// intensity to >= 0 and brightness intensity to [-1,1]. NaN counts as 0.
// Strokes clip to the buffer and fills with an out-of-bounds seed do
// nothing.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Separate engines share no state
// apart from the package logger and may be used from different goroutines.
package canvas
