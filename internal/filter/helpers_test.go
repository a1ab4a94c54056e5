package filter

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/canvas/internal/color"
	intImage "github.com/gogpu/canvas/internal/image"
)

// Test helper functions shared across filter tests.

// createTestBuffer creates a buffer filled with the given color.
func createTestBuffer(t testing.TB, w, h int, c color.ColorU8) *intImage.Buffer {
	t.Helper()
	buf, err := intImage.New(w, h)
	if err != nil {
		t.Fatalf("intImage.New(%d, %d) error = %v", w, h, err)
	}
	buf.Fill(c)
	return buf
}

// randomBuffer creates a buffer of deterministic pseudo-random bytes.
func randomBuffer(t testing.TB, w, h int, seed uint64) *intImage.Buffer {
	t.Helper()
	buf := createTestBuffer(t, w, h, color.ColorU8{})
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := buf.Data()
	for i := range data {
		data[i] = uint8(rng.IntN(256))
	}
	return buf
}

// applyFilter runs f on buf and swaps the result in.
func applyFilter(buf *intImage.Buffer, f Filter) {
	dst := make([]byte, buf.Len())
	f.Apply(buf, dst)
	buf.Swap(dst)
}
