package history

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ErrCorruptSnapshot is returned when a decoded snapshot has the wrong size.
var ErrCorruptSnapshot = errors.New("history: corrupt snapshot")

// Codec converts buffer snapshots to and from their stored form.
//
// Encode must return storage independent of src. Decode receives the
// encoded bytes and the original length and must reproduce src exactly;
// the returned slice is owned by the caller.
type Codec interface {
	Name() string
	Encode(src []byte) []byte
	Decode(enc []byte, size int) ([]byte, error)
}

// rawCodec stores plain copies.
type rawCodec struct{}

// RawCodec returns the codec that stores uncompressed copies.
func RawCodec() Codec {
	return rawCodec{}
}

func (rawCodec) Name() string { return "raw" }

func (rawCodec) Encode(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)
	return out
}

// Decode hands the stored copy back; it is only ever decoded once, when its
// entry is popped.
func (rawCodec) Decode(enc []byte, size int) ([]byte, error) {
	if len(enc) != size {
		return nil, ErrCorruptSnapshot
	}
	return enc, nil
}

// zstdCodec compresses snapshots with zstd.
type zstdCodec struct {
	level zstd.EncoderLevel
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// ZstdCodec returns a codec compressing snapshots at the given zstd level
// (1-22, as accepted by zstd.EncoderLevelFromZstd). Level 0 selects the
// library default. Encoder and decoder run with concurrency 1 and only use
// the stateless EncodeAll/DecodeAll APIs, so no goroutines are started.
func ZstdCodec(level int) (Codec, error) {
	lvl := zstd.SpeedDefault
	if level > 0 {
		lvl = zstd.EncoderLevelFromZstd(level)
	}

	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(lvl),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("history: zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("history: zstd decoder: %w", err)
	}

	return &zstdCodec{level: lvl, enc: enc, dec: dec}, nil
}

func (c *zstdCodec) Name() string { return "zstd-" + c.level.String() }

func (c *zstdCodec) Encode(src []byte) []byte {
	if len(src) == 0 {
		return []byte{}
	}
	return c.enc.EncodeAll(src, make([]byte, 0, len(src)/16+64))
}

func (c *zstdCodec) Decode(enc []byte, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out, err := c.dec.DecodeAll(enc, make([]byte, 0, size))
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, ErrCorruptSnapshot
	}
	return out, nil
}
