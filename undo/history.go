// Package undo implements a bounded, linear undo/redo history.
//
// A History stores blocks of change records. Each block is one user-visible
// action; undoing or redoing a block is all-or-nothing. The record type is a
// type parameter so the history knows nothing about what a change means.
package undo

// DefaultLimit matches vim's default 'undolevels'.
const DefaultLimit = 1000

// History is an ordered list of change blocks plus the index of the last
// applied block (-1 when nothing is applied).
type History[C any] struct {
	blocks  [][]C
	current int
	limit   int
}

// New returns an empty history holding at most limit blocks.
// A limit <= 0 selects DefaultLimit.
func New[C any](limit int) *History[C] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History[C]{current: -1, limit: limit}
}

// Add appends a block. Any blocks after the current index (the redo branch)
// are discarded first. When the history grows past its limit the oldest
// block is dropped and the index shifts with it.
func (h *History[C]) Add(block []C) {
	if len(block) == 0 {
		return
	}
	if h.current < len(h.blocks)-1 {
		h.blocks = h.blocks[:h.current+1]
	}

	b := make([]C, len(block))
	copy(b, block)
	h.blocks = append(h.blocks, b)
	h.current++

	for len(h.blocks) > h.limit {
		h.blocks[0] = nil
		h.blocks = h.blocks[1:]
		h.current--
	}
}

// Undo returns the block at the current index and steps back.
// ok is false when nothing is left to undo.
func (h *History[C]) Undo() (block []C, ok bool) {
	if h.current < 0 {
		return nil, false
	}
	block = h.blocks[h.current]
	h.current--
	return block, true
}

// Redo steps forward and returns that block.
// ok is false when the index is already at the tail.
func (h *History[C]) Redo() (block []C, ok bool) {
	if h.current >= len(h.blocks)-1 {
		return nil, false
	}
	h.current++
	return h.blocks[h.current], true
}

func (h *History[C]) CanUndo() bool { return h.current >= 0 }

func (h *History[C]) CanRedo() bool { return h.current < len(h.blocks)-1 }

// Len returns the number of stored blocks.
func (h *History[C]) Len() int { return len(h.blocks) }

// Index returns the index of the last applied block, -1 if none.
func (h *History[C]) Index() int { return h.current }

// Limit returns the configured maximum number of blocks.
func (h *History[C]) Limit() int { return h.limit }

// Clear drops every block.
func (h *History[C]) Clear() {
	h.blocks = nil
	h.current = -1
}
