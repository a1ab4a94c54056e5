package history

import (
	"errors"
	"fmt"
)

// DefaultLimit is the default maximum number of undo entries.
const DefaultLimit = 32

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// entry is one stored snapshot.
type entry struct {
	data []byte // codec-encoded
	size int    // decoded length
}

// Stack manages the undo and redo stacks of buffer snapshots.
//
// Stack is not safe for concurrent use.
type Stack struct {
	codec Codec
	limit int

	undoStack []entry
	redoStack []entry
}

// New creates a history stack holding at most limit undo entries.
// A non-positive limit selects DefaultLimit; a nil codec selects RawCodec.
func New(limit int, codec Codec) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if codec == nil {
		codec = RawCodec()
	}
	return &Stack{
		codec: codec,
		limit: limit,
	}
}

// Snapshot pushes a copy of current onto the undo stack and clears the redo
// stack. It returns the number of old entries evicted to stay within Limit.
func (s *Stack) Snapshot(current []byte) int {
	s.undoStack = append(s.undoStack, s.encode(current))

	// Clear redo stack
	clear(s.redoStack)
	s.redoStack = s.redoStack[:0]

	// Enforce max entries, oldest first
	evicted := 0
	for len(s.undoStack) > s.limit {
		s.undoStack = dropOldest(s.undoStack)
		evicted++
	}
	return evicted
}

// Undo moves current onto the redo stack and returns the most recent
// snapshot. With an empty undo stack it returns ErrNothingToUndo and leaves
// both stacks unchanged.
func (s *Stack) Undo(current []byte) ([]byte, error) {
	state, err := s.pop(&s.undoStack, ErrNothingToUndo)
	if err != nil {
		return nil, err
	}
	s.redoStack = append(s.redoStack, s.encode(current))
	return state, nil
}

// Redo moves current onto the undo stack and returns the most recently
// undone state. With an empty redo stack it returns ErrNothingToRedo.
func (s *Stack) Redo(current []byte) ([]byte, error) {
	state, err := s.pop(&s.redoStack, ErrNothingToRedo)
	if err != nil {
		return nil, err
	}
	s.undoStack = append(s.undoStack, s.encode(current))
	return state, nil
}

// pop decodes and removes the top of stack. The stack is left untouched if
// decoding fails.
func (s *Stack) pop(stack *[]entry, empty error) ([]byte, error) {
	n := len(*stack)
	if n == 0 {
		return nil, empty
	}
	top := (*stack)[n-1]
	state, err := s.codec.Decode(top.data, top.size)
	if err != nil {
		return nil, fmt.Errorf("history: decode snapshot: %w", err)
	}
	(*stack)[n-1] = entry{}
	*stack = (*stack)[:n-1]
	return state, nil
}

// encode stores an independent copy of data.
func (s *Stack) encode(data []byte) entry {
	return entry{data: s.codec.Encode(data), size: len(data)}
}

// Reset removes all undo/redo history.
func (s *Stack) Reset() {
	s.undoStack = nil
	s.redoStack = nil
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	return len(s.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	return len(s.redoStack) > 0
}

// UndoLen returns the number of undo entries.
func (s *Stack) UndoLen() int {
	return len(s.undoStack)
}

// RedoLen returns the number of redo entries.
func (s *Stack) RedoLen() int {
	return len(s.redoStack)
}

// Limit returns the maximum number of undo entries.
func (s *Stack) Limit() int {
	return s.limit
}

// Codec returns the snapshot codec.
func (s *Stack) Codec() Codec {
	return s.codec
}

// Bytes returns the stored (encoded) size of all entries.
func (s *Stack) Bytes() int {
	total := 0
	for _, e := range s.undoStack {
		total += len(e.data)
	}
	for _, e := range s.redoStack {
		total += len(e.data)
	}
	return total
}

// dropOldest removes the first entry in place so the backing array does
// not keep the evicted snapshot reachable.
func dropOldest(stack []entry) []entry {
	copy(stack, stack[1:])
	stack[len(stack)-1] = entry{}
	return stack[:len(stack)-1]
}
