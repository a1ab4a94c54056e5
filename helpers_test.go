package canvas

import (
	"math/rand/v2"
	"testing"
)

// mustNew creates an engine or fails the test.
func mustNew(t testing.TB, w, h int, opts ...Option) *Engine {
	t.Helper()
	e, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return e
}

// randomEngine creates an engine loaded with deterministic random pixels.
func randomEngine(t testing.TB, w, h int, seed uint64) *Engine {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]byte, w*h*4)
	for i := range data {
		data[i] = byte(rng.UintN(256))
	}
	e := mustNew(t, w, h)
	if err := e.Load(data, w, h); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return e
}

// solid returns w*h pixels of one color.
func solid(w, h int, r, g, b, a uint8) []byte {
	data := make([]byte, w*h*4)
	for i := 0; i < len(data); i += 4 {
		data[i+0] = r
		data[i+1] = g
		data[i+2] = b
		data[i+3] = a
	}
	return data
}

// alphas returns the alpha channel of data.
func alphas(data []byte) []byte {
	out := make([]byte, 0, len(data)/4)
	for i := 3; i < len(data); i += 4 {
		out = append(out, data[i])
	}
	return out
}
