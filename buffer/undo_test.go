package buffer

import (
	"reflect"
	"testing"
)

type snapshot struct {
	lines  []string
	cursor Pos
}

func snap(b *Buffer) snapshot {
	return snapshot{lines: b.DisplayLines(), cursor: b.Cursor()}
}

func TestUndoRedoInverse(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		cursor Pos
		anchor Pos
		lines  []string
		reg    Register
		op     func(b *Buffer)
	}{
		{"insert char", Insert, Pos{0, 1}, Pos{}, []string{"abc"}, Register{}, func(b *Buffer) { b.InsertChar('X') }},
		{"insert char at end", Insert, Pos{0, 3}, Pos{}, []string{"abc"}, Register{}, func(b *Buffer) { b.InsertChar('d') }},
		{"delete char", Normal, Pos{0, 1}, Pos{}, []string{"abc"}, Register{}, func(b *Buffer) { b.DeleteCharAtCursor() }},
		{"delete last char", Normal, Pos{0, 2}, Pos{}, []string{"abc"}, Register{}, func(b *Buffer) { b.DeleteCharAtCursor() }},
		{"backspace", Insert, Pos{0, 2}, Pos{}, []string{"abc"}, Register{}, func(b *Buffer) { b.Backspace() }},
		{"backspace join", Insert, Pos{1, 0}, Pos{}, []string{"ab", "cd", "ef"}, Register{}, func(b *Buffer) { b.Backspace() }},
		{"backspace join empty", Insert, Pos{1, 0}, Pos{}, []string{"", ""}, Register{}, func(b *Buffer) { b.Backspace() }},
		{"newline", Insert, Pos{0, 2}, Pos{}, []string{"hello"}, Register{}, func(b *Buffer) { b.InsertNewline() }},
		{"newline at end", Insert, Pos{0, 5}, Pos{}, []string{"hello"}, Register{}, func(b *Buffer) { b.InsertNewline() }},
		{"line below", Normal, Pos{0, 1}, Pos{}, []string{"a", "b"}, Register{}, func(b *Buffer) { b.InsertLineBelow() }},
		{"line above", Normal, Pos{1, 0}, Pos{}, []string{"a", "b"}, Register{}, func(b *Buffer) { b.InsertLineAbove() }},
		{"delete line", Normal, Pos{1, 2}, Pos{}, []string{"one", "two", "three"}, Register{}, func(b *Buffer) { b.DeleteLine() }},
		{"delete only line", Normal, Pos{0, 2}, Pos{}, []string{"solo"}, Register{}, func(b *Buffer) { b.DeleteLine() }},
		{"delete selection", Visual, Pos{2, 1}, Pos{0, 2}, []string{"hello", "world", "again"}, Register{}, func(b *Buffer) { b.DeleteSelection() }},
		{"delete selection reversed", Visual, Pos{0, 1}, Pos{0, 3}, []string{"abcdef"}, Register{}, func(b *Buffer) { b.DeleteSelection() }},
		{"delete lines", Normal, Pos{1, 0}, Pos{}, []string{"a", "b", "c", "d"}, Register{}, func(b *Buffer) { b.DeleteLines(1, 2) }},
		{"delete all lines", Normal, Pos{2, 0}, Pos{}, []string{"a", "b", "c", "d"}, Register{}, func(b *Buffer) { b.DeleteLines(0, 3) }},
		{"paste text", Insert, Pos{0, 5}, Pos{}, []string{"hello world"}, Register{}, func(b *Buffer) { b.PasteText("X\nY\nZ") }},
		{"paste linewise after", Normal, Pos{0, 0}, Pos{}, []string{"a", "b"}, Register{Text: "x\ny", Linewise: true}, func(b *Buffer) { b.PasteFromRegister(true) }},
		{"paste linewise before", Normal, Pos{1, 0}, Pos{}, []string{"a", "b"}, Register{Text: "x", Linewise: true}, func(b *Buffer) { b.PasteFromRegister(false) }},
		{"paste charwise after", Normal, Pos{0, 1}, Pos{}, []string{"abc"}, Register{Text: "XY"}, func(b *Buffer) { b.PasteFromRegister(true) }},
		{"paste charwise multi", Normal, Pos{0, 0}, Pos{}, []string{"abc"}, Register{Text: "1\n2"}, func(b *Buffer) { b.PasteFromRegister(false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBuffer(tt.mode, tt.cursor, tt.lines...)
			b.anchor = tt.anchor
			b.register = tt.reg
			before := snap(b)

			tt.op(b)
			after := snap(b)
			if reflect.DeepEqual(before, after) {
				t.Fatalf("operation did not change the buffer")
			}

			if !b.Undo() {
				t.Fatalf("Undo returned false")
			}
			if got := snap(b); !reflect.DeepEqual(got, before) {
				t.Fatalf("after undo got %+v, want %+v", got, before)
			}

			if !b.Redo() {
				t.Fatalf("Redo returned false")
			}
			if got := snap(b); !reflect.DeepEqual(got, after) {
				t.Fatalf("after redo got %+v, want %+v", got, after)
			}

			b.Undo()
			if got := snap(b); !reflect.DeepEqual(got, before) {
				t.Fatalf("after second undo got %+v, want %+v", got, before)
			}
		})
	}
}

func TestUndoScenarios(t *testing.T) {
	t.Run("type then undo", func(t *testing.T) {
		b, _ := newTestBuffer(Insert, Pos{Row: 0, Col: 3}, "abc")
		b.InsertChar('d')
		assertLines(t, b, "abcd")
		assertCursor(t, b, Pos{Row: 0, Col: 4})
		b.Undo()
		assertLines(t, b, "abc")
		assertCursor(t, b, Pos{Row: 0, Col: 3})
	})

	t.Run("delete all lines then undo", func(t *testing.T) {
		b, _ := newTestBuffer(Normal, Pos{}, "one", "two", "three", "four")
		b.DeleteLines(0, 3)
		assertLines(t, b, "")
		b.Undo()
		assertLines(t, b, "one", "two", "three", "four")
	})

	t.Run("empty history", func(t *testing.T) {
		b, _ := newTestBuffer(Normal, Pos{}, "abc")
		if b.Undo() {
			t.Errorf("Undo on fresh buffer should fail")
		}
		if b.Redo() {
			t.Errorf("Redo on fresh buffer should fail")
		}
	})
}

func TestRedoBranchDiscarded(t *testing.T) {
	b, _ := newTestBuffer(Insert, Pos{}, "")
	b.InsertChar('a')
	b.InsertChar('b')
	b.Undo()
	b.InsertChar('c')

	if b.Redo() {
		t.Fatalf("Redo after a new change should fail")
	}
	assertLines(t, b, "ac")
}

func TestHistoryCap(t *testing.T) {
	mi := NewModeIndicator(Insert)
	b := New(mi, Options{HistoryLimit: 3})
	for _, r := range "abcde" {
		b.InsertChar(r)
	}
	if got := b.HistoryLen(); got != 3 {
		t.Fatalf("HistoryLen = %d, want 3", got)
	}

	undone := 0
	for b.Undo() {
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d blocks, want 3", undone)
	}
	assertLines(t, b, "ab")
}

func TestChangeGroup(t *testing.T) {
	b, _ := newTestBuffer(Insert, Pos{}, "")
	b.BeginChangeGroup()
	for _, r := range "hi" {
		b.InsertChar(r)
	}
	b.BeginChangeGroup()
	b.InsertNewline()
	b.EndChangeGroup()
	b.InsertChar('!')
	b.EndChangeGroup()

	assertLines(t, b, "hi", "!")
	if got := b.HistoryLen(); got != 1 {
		t.Fatalf("HistoryLen = %d, want 1", got)
	}

	b.Undo()
	assertLines(t, b, "")
	assertCursor(t, b, Pos{})

	b.Redo()
	assertLines(t, b, "hi", "!")
	assertCursor(t, b, Pos{Row: 1, Col: 1})
}

func TestUndoClosesOpenGroup(t *testing.T) {
	b, _ := newTestBuffer(Insert, Pos{}, "")
	b.BeginChangeGroup()
	b.InsertChar('a')
	b.InsertChar('b')

	if !b.Undo() {
		t.Fatalf("Undo should commit and revert the open group")
	}
	assertLines(t, b, "")
	b.EndChangeGroup()
	if b.CanUndo() {
		t.Errorf("stray EndChangeGroup should not add history")
	}
}
