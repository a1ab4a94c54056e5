package canvas

import "github.com/gogpu/canvas/internal/history"

// Option configures an Engine during creation.
//
// Example:
//
//	// Default: 32 raw snapshots
//	e, err := canvas.New(800, 600)
//
//	// Deeper, zstd-compressed history
//	e, err := canvas.New(800, 600,
//	    canvas.WithHistoryLimit(100),
//	    canvas.WithCompressedHistory(3),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	historyLimit int
	compress     bool
	zstdLevel    int
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		historyLimit: history.DefaultLimit,
	}
}

// WithHistoryLimit sets the maximum number of undo entries. When the limit
// is exceeded the oldest entry is evicted. Values <= 0 keep the default
// of 32.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithCompressedHistory stores history snapshots zstd-compressed at the
// given level (1 fastest to 22 smallest; 0 selects the library default).
// Snapshots still restore byte-exactly. Compression trades CPU on every
// mutation for much smaller resident history on mostly flat canvases.
func WithCompressedHistory(level int) Option {
	return func(o *options) {
		o.compress = true
		o.zstdLevel = level
	}
}

// codec returns the history codec the options select.
func (o options) codec() (history.Codec, error) {
	if !o.compress {
		return history.RawCodec(), nil
	}
	return history.ZstdCodec(o.zstdLevel)
}
