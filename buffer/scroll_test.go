package buffer

import (
	"fmt"
	"testing"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func TestAdjustScroll(t *testing.T) {
	b, _ := newTestBuffer(Normal, Pos{}, numberedLines(50)...)

	b.SetCursor(Pos{Row: 12})
	b.AdjustScroll(10)
	if got := b.ScrollOffset(); got != 3 {
		t.Fatalf("offset = %d, want 3", got)
	}

	b.SetCursor(Pos{Row: 5})
	b.AdjustScroll(10)
	if got := b.ScrollOffset(); got != 3 {
		t.Errorf("cursor inside viewport should not scroll, offset = %d", got)
	}

	b.SetCursor(Pos{Row: 1})
	b.AdjustScroll(10)
	if got := b.ScrollOffset(); got != 1 {
		t.Errorf("offset = %d, want 1", got)
	}

	b.AdjustScroll(0)
	if got := b.ScrollOffset(); got != 1 {
		t.Errorf("zero height should act as one row, offset = %d", got)
	}
}

func TestAdjustHorizontalScroll(t *testing.T) {
	b, _ := newTestBuffer(Insert, Pos{}, "0123456789abcdefghij")

	b.SetCursor(Pos{Col: 9})
	b.AdjustHorizontalScroll(10)
	if got := b.HorizontalScrollOffset(); got != 0 {
		t.Fatalf("last visible column should not scroll, offset = %d", got)
	}

	b.SetCursor(Pos{Col: 10})
	b.AdjustHorizontalScroll(10)
	if got := b.HorizontalScrollOffset(); got != 1 {
		t.Fatalf("offset = %d, want 1", got)
	}

	b.SetCursor(Pos{Col: 0})
	b.AdjustHorizontalScroll(10)
	if got := b.HorizontalScrollOffset(); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
}

func TestAdjustHorizontalScrollCells(t *testing.T) {
	wide := func(r rune) int {
		if r > 0x7f {
			return 2
		}
		return 1
	}
	tests := []struct {
		name  string
		line  string
		col   int
		width int
		want  int
	}{
		{"narrow fits", "0123456789abc", 9, 10, 0},
		{"narrow scrolls like columns", "0123456789abc", 10, 10, 1},
		{"wide fits", "日本語テキスト", 4, 10, 0},
		{"wide scrolls early", "日本語テキスト", 5, 10, 1},
		{"wide last char", "日本語テキスト", 6, 10, 2},
		{"mixed", "ab日本語cd", 5, 6, 3},
		{"past line end", "日本", 2, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBuffer(Insert, Pos{Col: tt.col}, tt.line)
			b.AdjustHorizontalScrollCells(tt.width, wide)
			if got := b.HorizontalScrollOffset(); got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("scrolls back left", func(t *testing.T) {
		b, _ := newTestBuffer(Insert, Pos{Col: 6}, "日本語テキスト")
		b.AdjustHorizontalScrollCells(4, wide)
		b.SetCursor(Pos{Col: 1})
		b.AdjustHorizontalScrollCells(4, wide)
		if got := b.HorizontalScrollOffset(); got != 1 {
			t.Errorf("offset = %d, want 1", got)
		}
	})
}

func TestPageDownUp(t *testing.T) {
	b, _ := newTestBuffer(Normal, Pos{Row: 2}, numberedLines(25)...)

	b.PageDown(10)
	if b.ScrollOffset() != 10 {
		t.Fatalf("offset = %d, want 10", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{Row: 12})

	// only 5 rows left to reveal
	b.PageDown(10)
	if b.ScrollOffset() != 15 {
		t.Fatalf("offset = %d, want 15", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{Row: 17})

	b.PageDown(10)
	assertCursor(t, b, Pos{Row: 24})
	if b.PageDown(10) {
		t.Errorf("PageDown at the bottom with the cursor on the last line should report no move")
	}

	b.PageUp(10)
	if b.ScrollOffset() != 5 {
		t.Fatalf("offset = %d, want 5", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{Row: 14})

	b.PageUp(10)
	b.PageUp(10)
	if b.ScrollOffset() != 0 {
		t.Fatalf("offset = %d, want 0", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{})
}

func TestPageDownShortDocument(t *testing.T) {
	b, _ := newTestBuffer(Normal, Pos{Row: 1, Col: 4}, numberedLines(5)...)
	b.PageDown(10)
	if b.ScrollOffset() != 0 {
		t.Errorf("offset = %d, want 0", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{Row: 4, Col: 4})
}

func TestHalfPage(t *testing.T) {
	b, _ := newTestBuffer(Normal, Pos{Row: 0}, numberedLines(30)...)

	b.HalfPageDown(10)
	if b.ScrollOffset() != 5 {
		t.Fatalf("offset = %d, want 5", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{Row: 5})

	b.HalfPageUp(10)
	if b.ScrollOffset() != 0 {
		t.Fatalf("offset = %d, want 0", b.ScrollOffset())
	}
	assertCursor(t, b, Pos{})

	b.SetCursor(Pos{Row: 3})
	b.HalfPageUp(10)
	assertCursor(t, b, Pos{})

	b.HalfPageDown(1)
	if b.ScrollOffset() != 1 {
		t.Errorf("height 1 should still move one row, offset = %d", b.ScrollOffset())
	}
}

func TestHorizontalScrollCommands(t *testing.T) {
	b, _ := newTestBuffer(Normal, Pos{Row: 0, Col: 3}, "short")

	b.ScrollRight(4)
	b.ScrollHalfScreenRight(20)
	if got := b.HorizontalScrollOffset(); got != 14 {
		t.Fatalf("offset = %d, want 14", got)
	}
	assertCursor(t, b, Pos{Row: 0, Col: 3})

	b.ScrollHalfScreenLeft(20)
	b.ScrollLeft(100)
	if got := b.HorizontalScrollOffset(); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}

	b.ScrollHalfScreenRight(1)
	if got := b.HorizontalScrollOffset(); got != 1 {
		t.Errorf("offset = %d, want 1", got)
	}
}
