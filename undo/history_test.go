package undo

import (
	"reflect"
	"testing"
)

func TestHistoryUndoRedo(t *testing.T) {
	h := New[string](10)

	if _, ok := h.Undo(); ok {
		t.Fatalf("Undo on empty history should fail")
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("Redo on empty history should fail")
	}

	h.Add([]string{"a"})
	h.Add([]string{"b1", "b2"})

	if got, want := h.Index(), 1; got != want {
		t.Fatalf("index=%d, want %d", got, want)
	}

	block, ok := h.Undo()
	if !ok || !reflect.DeepEqual(block, []string{"b1", "b2"}) {
		t.Fatalf("Undo = %v, %v; want [b1 b2], true", block, ok)
	}
	block, ok = h.Undo()
	if !ok || !reflect.DeepEqual(block, []string{"a"}) {
		t.Fatalf("Undo = %v, %v; want [a], true", block, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Fatalf("third Undo should fail")
	}
	if got, want := h.Index(), -1; got != want {
		t.Fatalf("index=%d, want %d", got, want)
	}

	block, ok = h.Redo()
	if !ok || !reflect.DeepEqual(block, []string{"a"}) {
		t.Fatalf("Redo = %v, %v; want [a], true", block, ok)
	}
	block, ok = h.Redo()
	if !ok || !reflect.DeepEqual(block, []string{"b1", "b2"}) {
		t.Fatalf("Redo = %v, %v; want [b1 b2], true", block, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("Redo at tail should fail")
	}
}

func TestHistoryAddDiscardsRedoBranch(t *testing.T) {
	h := New[int](10)
	h.Add([]int{1})
	h.Add([]int{2})
	h.Undo()
	h.Add([]int{3})

	if h.CanRedo() {
		t.Errorf("CanRedo after new block should be false")
	}
	if _, ok := h.Redo(); ok {
		t.Errorf("Redo should fail once the branch is discarded")
	}
	if got, want := h.Len(), 2; got != want {
		t.Errorf("len=%d, want %d", got, want)
	}

	block, _ := h.Undo()
	if !reflect.DeepEqual(block, []int{3}) {
		t.Errorf("Undo = %v, want [3]", block)
	}
	block, _ = h.Undo()
	if !reflect.DeepEqual(block, []int{1}) {
		t.Errorf("Undo = %v, want [1]", block)
	}
}

func TestHistoryLimit(t *testing.T) {
	h := New[int](3)
	for i := 0; i < 10; i++ {
		h.Add([]int{i})
		if h.Len() > 3 {
			t.Fatalf("len=%d exceeds limit 3", h.Len())
		}
	}
	if got, want := h.Index(), 2; got != want {
		t.Fatalf("index=%d, want %d", got, want)
	}

	var seen []int
	for {
		block, ok := h.Undo()
		if !ok {
			break
		}
		seen = append(seen, block[0])
	}
	if want := []int{9, 8, 7}; !reflect.DeepEqual(seen, want) {
		t.Errorf("undone blocks = %v, want %v", seen, want)
	}
}

func TestHistoryLimitAfterUndo(t *testing.T) {
	h := New[int](2)
	h.Add([]int{1})
	h.Add([]int{2})
	h.Undo()
	h.Add([]int{3})
	h.Add([]int{4})

	if got, want := h.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	block, _ := h.Undo()
	if block[0] != 4 {
		t.Errorf("Undo = %v, want [4]", block)
	}
	block, _ = h.Undo()
	if block[0] != 3 {
		t.Errorf("Undo = %v, want [3]", block)
	}
	if h.CanUndo() {
		t.Errorf("block 1 should have been dropped")
	}
}

func TestHistoryIgnoresEmptyBlock(t *testing.T) {
	h := New[int](0)
	h.Add(nil)
	if h.Len() != 0 || h.CanUndo() {
		t.Errorf("empty block should not be recorded")
	}
	if got, want := h.Limit(), DefaultLimit; got != want {
		t.Errorf("limit=%d, want %d", got, want)
	}
}

func TestHistoryClear(t *testing.T) {
	h := New[int](5)
	h.Add([]int{1})
	h.Add([]int{2})
	h.Undo()
	h.Clear()
	if h.CanUndo() || h.CanRedo() || h.Len() != 0 || h.Index() != -1 {
		t.Errorf("Clear left state behind: len=%d index=%d", h.Len(), h.Index())
	}
}
