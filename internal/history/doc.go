// Package history provides snapshot-based undo/redo for a pixel buffer.
//
// # Snapshots
//
// Every mutating canvas operation first calls Snapshot with the current
// pixel bytes. The stack stores an independent, encoded copy:
//
//	stack := history.New(history.DefaultLimit, history.RawCodec())
//
//	stack.Snapshot(buf.Data()) // before mutating
//	// ... mutate buf ...
//
// # Undo and Redo
//
// Undo and Redo take the current bytes, move them onto the opposite stack,
// and return the state to install:
//
//	prev, err := stack.Undo(buf.Data())
//	if errors.Is(err, history.ErrNothingToUndo) { ... }
//
// # Bounds
//
// The undo stack holds at most Limit entries; the oldest is evicted first.
// The redo stack is unbounded but is cleared by every Snapshot, so it can
// never hold more entries than the undo stack held before the undos.
//
// # Codecs
//
// RawCodec stores plain copies. ZstdCodec compresses snapshots with
// klauspost/compress/zstd; decoding is byte-exact, so the choice of codec
// is not observable through Undo and Redo.
package history
