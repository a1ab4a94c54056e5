package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
)

var redBrush = BrushOptions{Size: 2, Softness: 1, Opacity: 1, R: 255}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"square", 16, 16, false},
		{"wide", 300, 1, false},
		{"zero", 0, 0, false},
		{"zero height", 5, 0, false},
		{"negative width", -1, 4, true},
		{"negative height", 4, -1, true},
		{"overflow", math.MaxInt / 2, math.MaxInt / 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.w, tt.h)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d) error = %v", tt.w, tt.h, err)
			}
			if e.Width() != tt.w || e.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", e.Width(), e.Height(), tt.w, tt.h)
			}
			data := e.Export()
			if len(data) != tt.w*tt.h*4 {
				t.Errorf("len(Export()) = %d, want %d", len(data), tt.w*tt.h*4)
			}
			for i, v := range data {
				if v != 0 {
					t.Fatalf("byte %d = %d, want zero-filled buffer", i, v)
				}
			}
			if e.CanUndo() || e.CanRedo() {
				t.Error("new engine has history")
			}
		})
	}
}

func TestExportIsCopy(t *testing.T) {
	e := mustNew(t, 2, 2)
	data := e.Export()
	data[0] = 99

	if r, _, _, _, _ := e.Pixel(0, 0); r != 0 {
		t.Error("mutating Export() result changed the canvas")
	}
}

func TestExportLengthAfterEveryOperation(t *testing.T) {
	e := mustNew(t, 7, 5)
	check := func(step string) {
		t.Helper()
		if got, want := len(e.Export()), e.Width()*e.Height()*4; got != want {
			t.Errorf("after %s: len(Export()) = %d, want %d", step, got, want)
		}
	}

	e.Stroke(0, 0, 6, 4, BrushOptions{Size: 3, Softness: 0.5, Opacity: 1, G: 255}, false)
	check("stroke")
	e.Fill(6, 0, BrushOptions{Opacity: 1, B: 255})
	check("fill")
	for _, k := range []FilterKind{Blur, Sharpen, Invert, Grayscale, Brightness} {
		e.ApplyFilter(k, 0.5)
		check(k.String())
	}
	e.Undo()
	check("undo")
	e.Redo()
	check("redo")
	if err := e.Load(make([]byte, 3*9*4), 3, 9); err != nil {
		t.Fatal(err)
	}
	check("load")
	e.Clear()
	check("clear")
}

func TestLoad(t *testing.T) {
	e := mustNew(t, 4, 4)
	e.Clear()

	data := solid(2, 3, 10, 20, 30, 40)
	if err := e.Load(data, 2, 3); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	data[0] = 0 // Load must copy

	if e.Width() != 2 || e.Height() != 3 {
		t.Errorf("size = %dx%d, want 2x3", e.Width(), e.Height())
	}
	if !bytes.Equal(e.Export(), solid(2, 3, 10, 20, 30, 40)) {
		t.Error("Export() does not match loaded data")
	}
	if e.CanUndo() || e.CanRedo() {
		t.Error("Load() kept history")
	}
}

func TestLoadInvalidLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		n    int
		w, h int
	}{
		{"short", 15, 2, 2},
		{"long", 17, 2, 2},
		{"negative", 0, -1, 0},
		{"mismatched size", 16, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := randomEngine(t, 3, 3, 1)
			e.ApplyFilter(Invert, 0)
			before := e.Export()

			err := e.Load(make([]byte, tt.n), tt.w, tt.h)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("Load() error = %v, want ErrInvalidDimensions", err)
			}
			if e.Width() != 3 || e.Height() != 3 {
				t.Errorf("size changed to %dx%d", e.Width(), e.Height())
			}
			if !bytes.Equal(e.Export(), before) {
				t.Error("failed Load() changed pixels")
			}
			if e.UndoDepth() != 1 {
				t.Errorf("UndoDepth() = %d, want 1", e.UndoDepth())
			}
		})
	}
}

func TestPixel(t *testing.T) {
	e := mustNew(t, 2, 2)
	if err := e.Load([]byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}, 2, 2); err != nil {
		t.Fatal(err)
	}

	r, g, b, a, ok := e.Pixel(0, 1)
	if !ok || r != 9 || g != 10 || b != 11 || a != 12 {
		t.Errorf("Pixel(0, 1) = (%d, %d, %d, %d, %v), want (9, 10, 11, 12, true)", r, g, b, a, ok)
	}
	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, 2}, {0, -1}} {
		if _, _, _, _, ok := e.Pixel(p[0], p[1]); ok {
			t.Errorf("Pixel(%d, %d) ok = true, want false", p[0], p[1])
		}
	}
}

func TestUndoRedoExact(t *testing.T) {
	mutations := []struct {
		name string
		fn   func(e *Engine)
	}{
		{"clear", func(e *Engine) { e.Clear() }},
		{"stroke", func(e *Engine) {
			e.Stroke(1, 1, 14, 9, BrushOptions{Size: 5, Softness: 0.3, Opacity: 0.7, R: 10, G: 200, B: 90}, false)
		}},
		{"erase", func(e *Engine) {
			e.Stroke(15, 0, 0, 11, BrushOptions{Size: 4, Softness: 1, Opacity: 0.5}, true)
		}},
		{"fill", func(e *Engine) { e.Fill(3, 3, BrushOptions{Opacity: 1, R: 1, G: 2, B: 3}) }},
		{"blur", func(e *Engine) { e.ApplyFilter(Blur, 0.4) }},
		{"sharpen", func(e *Engine) { e.ApplyFilter(Sharpen, 0) }},
		{"invert", func(e *Engine) { e.ApplyFilter(Invert, 0) }},
		{"grayscale", func(e *Engine) { e.ApplyFilter(Grayscale, 0) }},
		{"brightness", func(e *Engine) { e.ApplyFilter(Brightness, -0.3) }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			e := randomEngine(t, 16, 12, 42)
			pre := e.Export()

			m.fn(e)
			post := e.Export()

			if !e.Undo() {
				t.Fatal("Undo() = false, want true")
			}
			if !bytes.Equal(e.Export(), pre) {
				t.Error("Undo() did not restore the exact pre-state")
			}
			if !e.Redo() {
				t.Fatal("Redo() = false, want true")
			}
			if !bytes.Equal(e.Export(), post) {
				t.Error("Redo() did not restore the exact post-state")
			}
		})
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	e := randomEngine(t, 4, 4, 3)
	before := e.Export()

	if e.Undo() {
		t.Error("Undo() on empty history = true")
	}
	if e.Redo() {
		t.Error("Redo() on empty history = true")
	}
	if !bytes.Equal(e.Export(), before) {
		t.Error("failed undo/redo changed pixels")
	}
}

func TestHistoryLimit(t *testing.T) {
	e := mustNew(t, 2, 2)

	// Mutation i turns the whole canvas to red i.
	for i := 1; i <= 40; i++ {
		e.Fill(0, 0, BrushOptions{Opacity: 1, R: uint8(i)})
	}

	undos := 0
	for e.Undo() {
		undos++
	}
	if undos != 32 {
		t.Errorf("successful undos = %d, want 32", undos)
	}

	// The 9th mutation's pre-state is the result of the 8th.
	if want := solid(2, 2, 8, 0, 0, 255); !bytes.Equal(e.Export(), want) {
		t.Errorf("Export() = %v, want %v", e.Export(), want)
	}
	if e.RedoDepth() != 32 {
		t.Errorf("RedoDepth() = %d, want 32", e.RedoDepth())
	}
}

func TestMutationClearsRedo(t *testing.T) {
	mutations := map[string]func(e *Engine){
		"clear":  func(e *Engine) { e.Clear() },
		"stroke": func(e *Engine) { e.Stroke(0, 0, 1, 1, redBrush, false) },
		"fill":   func(e *Engine) { e.Fill(0, 0, BrushOptions{Opacity: 1, G: 9}) },
		"filter": func(e *Engine) { e.ApplyFilter(Invert, 0) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			e := mustNew(t, 4, 4)
			e.Clear()
			e.Clear()
			e.Undo()
			e.Undo()
			if e.RedoDepth() != 2 {
				t.Fatalf("RedoDepth() = %d, want 2", e.RedoDepth())
			}

			mutate(e)

			if e.CanRedo() {
				t.Error("mutation did not clear redo")
			}
			if e.Redo() {
				t.Error("Redo() = true after mutation")
			}
		})
	}
}

func TestClear(t *testing.T) {
	e := randomEngine(t, 5, 5, 9)
	e.Clear()

	if !bytes.Equal(e.Export(), make([]byte, 5*5*4)) {
		t.Error("Clear() did not zero the buffer")
	}
	if e.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", e.UndoDepth())
	}
}

func TestStrokeDabAtOrigin(t *testing.T) {
	e := mustNew(t, 4, 4)

	e.Stroke(0, 0, 0, 0, redBrush, false)

	r, g, b, a, _ := e.Pixel(0, 0)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("Pixel(0, 0) = (%d, %d, %d, %d), want (255, 0, 0, 255)", r, g, b, a)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if math.Hypot(float64(x), float64(y)) <= 1 {
				continue
			}
			if r, g, b, a, _ := e.Pixel(x, y); r|g|b|a != 0 {
				t.Errorf("Pixel(%d, %d) = (%d, %d, %d, %d), want untouched", x, y, r, g, b, a)
			}
		}
	}
}

func TestStrokeErase(t *testing.T) {
	e := mustNew(t, 5, 5)
	if err := e.Load(solid(5, 5, 10, 20, 30, 200), 5, 5); err != nil {
		t.Fatal(err)
	}

	e.Stroke(2, 2, 2, 2, BrushOptions{Size: 2, Softness: 1, Opacity: 1}, true)

	r, g, b, a, _ := e.Pixel(2, 2)
	if a != 0 {
		t.Errorf("erased centre alpha = %d, want 0", a)
	}
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("erase changed color to (%d, %d, %d)", r, g, b)
	}
	if _, _, _, a, _ := e.Pixel(0, 0); a != 200 {
		t.Errorf("pixel outside the dab alpha = %d, want 200", a)
	}
}

func TestStrokeOffCanvas(t *testing.T) {
	e := mustNew(t, 4, 4)

	e.Stroke(-50, -50, -20, -30, BrushOptions{Size: 4, Softness: 1, Opacity: 1, R: 255}, false)

	if !bytes.Equal(e.Export(), make([]byte, 4*4*4)) {
		t.Error("off-canvas stroke changed pixels")
	}
	if e.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", e.UndoDepth())
	}
}

func TestFillUniform(t *testing.T) {
	e := mustNew(t, 6, 4)

	e.Fill(3, 2, BrushOptions{Opacity: 1, R: 12, G: 34, B: 56})

	if want := solid(6, 4, 12, 34, 56, 255); !bytes.Equal(e.Export(), want) {
		t.Error("fill on a uniform buffer did not paint every pixel")
	}
}

func TestFillRespectsBoundary(t *testing.T) {
	e := mustNew(t, 5, 5)
	// Vertical wall at x=2.
	e.Stroke(2, -3, 2, 8, BrushOptions{Size: 1, Softness: 1, Opacity: 1, B: 255}, false)

	e.Fill(0, 0, BrushOptions{Opacity: 1, R: 255})

	if r, _, _, _, _ := e.Pixel(1, 4); r != 255 {
		t.Error("left region not filled")
	}
	if r, _, _, a, _ := e.Pixel(4, 0); r != 0 || a != 0 {
		t.Error("fill crossed the wall")
	}
}

func TestFillNoOpConsumesHistory(t *testing.T) {
	e := mustNew(t, 3, 3)
	if err := e.Load(solid(3, 3, 1, 2, 3, 255), 3, 3); err != nil {
		t.Fatal(err)
	}
	before := e.Export()

	e.Fill(1, 1, BrushOptions{Opacity: 1, R: 1, G: 2, B: 3})

	if !bytes.Equal(e.Export(), before) {
		t.Error("no-op fill changed pixels")
	}
	if e.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", e.UndoDepth())
	}
	if !e.Undo() || !bytes.Equal(e.Export(), before) {
		t.Error("undoing a no-op fill did not restore the same bytes")
	}
}

func TestFillOutOfBounds(t *testing.T) {
	e := mustNew(t, 3, 3)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		e.Fill(p[0], p[1], BrushOptions{Opacity: 1, R: 255})
	}

	if e.CanUndo() {
		t.Error("out-of-bounds fill recorded history")
	}
	if !bytes.Equal(e.Export(), make([]byte, 3*3*4)) {
		t.Error("out-of-bounds fill changed pixels")
	}
}

func TestFillOpacity(t *testing.T) {
	e := mustNew(t, 2, 2)

	e.Fill(0, 0, BrushOptions{Opacity: 0.5, R: 255})

	if _, _, _, a, _ := e.Pixel(1, 1); a != 128 {
		t.Errorf("alpha = %d, want round(0.5*255) = 128", a)
	}
}

func TestApplyFilterBlur(t *testing.T) {
	e := mustNew(t, 3, 1)
	if err := e.Load([]byte{
		0, 0, 0, 255,
		90, 90, 90, 255,
		180, 180, 180, 255,
	}, 3, 1); err != nil {
		t.Fatal(err)
	}

	e.ApplyFilter(Blur, 0.1) // radius 1

	want := []byte{
		45, 45, 45, 255,
		90, 90, 90, 255,
		135, 135, 135, 255,
	}
	if got := e.Export(); !bytes.Equal(got, want) {
		t.Errorf("blur = %v, want %v", got, want)
	}
}

func TestApplyFilterBlurUniform(t *testing.T) {
	data := solid(9, 7, 33, 66, 99, 132)
	e := mustNew(t, 9, 7)
	if err := e.Load(data, 9, 7); err != nil {
		t.Fatal(err)
	}

	for _, intensity := range []float32{0, 0.2, 1, 50, -3} {
		e.ApplyFilter(Blur, intensity)
		if !bytes.Equal(e.Export(), data) {
			t.Errorf("Blur(%v) changed a uniform buffer", intensity)
		}
	}
}

func TestApplyFilterSharpen(t *testing.T) {
	t.Run("opaque white", func(t *testing.T) {
		e := mustNew(t, 3, 3)
		data := solid(3, 3, 255, 255, 255, 255)
		if err := e.Load(data, 3, 3); err != nil {
			t.Fatal(err)
		}
		e.ApplyFilter(Sharpen, 0)
		if !bytes.Equal(e.Export(), data) {
			t.Error("sharpen changed opaque white")
		}
	})

	t.Run("bright centre", func(t *testing.T) {
		e := mustNew(t, 3, 3)
		data := solid(3, 3, 50, 50, 50, 200)
		copy(data[4*4:], []byte{100, 60, 40, 10})
		if err := e.Load(data, 3, 3); err != nil {
			t.Fatal(err)
		}

		e.ApplyFilter(Sharpen, 0)

		got := e.Export()
		// 5*c - 4*50, clamped; alpha untouched.
		if want := []byte{255, 100, 0, 10}; !bytes.Equal(got[16:20], want) {
			t.Errorf("centre = %v, want %v", got[16:20], want)
		}
		for i := 0; i < len(got); i += 4 {
			if i == 16 {
				continue
			}
			if !bytes.Equal(got[i:i+4], data[i:i+4]) {
				t.Errorf("border pixel %d changed to %v", i/4, got[i:i+4])
			}
		}
	})
}

func TestApplyFilterGrayscale(t *testing.T) {
	e := mustNew(t, 1, 1)
	if err := e.Load([]byte{255, 0, 0, 77}, 1, 1); err != nil {
		t.Fatal(err)
	}

	e.ApplyFilter(Grayscale, 0)

	if got, want := e.Export(), []byte{76, 76, 76, 77}; !bytes.Equal(got, want) {
		t.Errorf("grayscale = %v, want %v", got, want)
	}
}

func TestGrayscaleIdempotent(t *testing.T) {
	e := randomEngine(t, 17, 13, 5)
	e.ApplyFilter(Grayscale, 0)
	once := e.Export()

	e.ApplyFilter(Grayscale, 0)

	if !bytes.Equal(e.Export(), once) {
		t.Error("grayscale is not idempotent")
	}
}

func TestInvertInvolution(t *testing.T) {
	e := randomEngine(t, 17, 13, 6)
	orig := e.Export()

	e.ApplyFilter(Invert, 0)
	inverted := e.Export()
	if !bytes.Equal(alphas(inverted), alphas(orig)) {
		t.Error("invert changed alpha")
	}
	if inverted[0] != 255-orig[0] {
		t.Errorf("inverted R = %d, want %d", inverted[0], 255-orig[0])
	}

	e.ApplyFilter(Invert, 0)
	if !bytes.Equal(e.Export(), orig) {
		t.Error("double invert is not the identity")
	}
}

func TestApplyFilterBrightness(t *testing.T) {
	tests := []struct {
		intensity float32
		want      []byte
	}{
		{0, []byte{100, 200, 0, 50}},
		{0.5, []byte{228, 255, 128, 50}},
		{-0.5, []byte{0, 72, 0, 50}},
		{4, []byte{255, 255, 255, 50}},
		{-4, []byte{0, 0, 0, 50}},
		{float32(math.NaN()), []byte{100, 200, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.intensity), func(t *testing.T) {
			e := mustNew(t, 1, 1)
			if err := e.Load([]byte{100, 200, 0, 50}, 1, 1); err != nil {
				t.Fatal(err)
			}
			e.ApplyFilter(Brightness, tt.intensity)
			if got := e.Export(); !bytes.Equal(got, tt.want) {
				t.Errorf("Brightness(%v) = %v, want %v", tt.intensity, got, tt.want)
			}
		})
	}
}

func TestBrightnessZeroIdentity(t *testing.T) {
	e := randomEngine(t, 11, 9, 7)
	orig := e.Export()

	e.ApplyFilter(Brightness, 0)

	if !bytes.Equal(e.Export(), orig) {
		t.Error("Brightness(0) is not the identity")
	}
}

func TestApplyFilterUnknownKind(t *testing.T) {
	e := randomEngine(t, 3, 3, 8)
	orig := e.Export()

	e.ApplyFilter(FilterKind(99), 1)

	if e.CanUndo() {
		t.Error("unknown filter recorded history")
	}
	if !bytes.Equal(e.Export(), orig) {
		t.Error("unknown filter changed pixels")
	}
}

func TestZeroSizedEngine(t *testing.T) {
	e := mustNew(t, 0, 0)

	e.Stroke(0, 0, 10, 10, redBrush, false)
	e.Fill(0, 0, redBrush)
	for _, k := range []FilterKind{Blur, Sharpen, Invert, Grayscale, Brightness} {
		e.ApplyFilter(k, 1)
	}
	e.Clear()

	if len(e.Export()) != 0 {
		t.Error("zero-sized engine exported pixels")
	}
	if !e.Undo() {
		t.Error("Undo() = false after mutations")
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a := mustNew(t, 4, 4)
	b := mustNew(t, 4, 4)

	a.Fill(0, 0, BrushOptions{Opacity: 1, R: 255})

	if !bytes.Equal(b.Export(), make([]byte, 4*4*4)) {
		t.Error("mutating one engine changed another")
	}
	if b.CanUndo() {
		t.Error("engines share history")
	}
}

func BenchmarkStroke(b *testing.B) {
	e := mustNew(b, 512, 512)
	opts := BrushOptions{Size: 24, Softness: 0.5, Opacity: 0.8, R: 255}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Stroke(10, 10, 500, 400, opts, false)
	}
}

func BenchmarkApplyFilter(b *testing.B) {
	for _, k := range []FilterKind{Blur, Sharpen, Grayscale} {
		b.Run(k.String(), func(b *testing.B) {
			e := randomEngine(b, 512, 512, 1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.ApplyFilter(k, 0.6)
			}
		})
	}
}

func BenchmarkUndoRedo(b *testing.B) {
	e := randomEngine(b, 512, 512, 2)
	e.ApplyFilter(Invert, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Undo()
		e.Redo()
	}
}
