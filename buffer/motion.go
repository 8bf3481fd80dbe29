package buffer

import "unicode"

// MaxCursorCol returns the last column the cursor may occupy on the current
// line in mode m.
func (b *Buffer) MaxCursorCol(m Mode) int {
	return m.MaxColumn(b.lineLen(b.cursor.Row))
}

func (b *Buffer) maxCol(row int) int {
	limit := b.bounds.MaxColumn(b.lineLen(row))
	if limit < 0 {
		return 0
	}
	return limit
}

// ClampCursor re-applies the current bounds. Callers invoke it after a mode
// change that tightens the bound (insert -> normal, visual -> normal).
func (b *Buffer) ClampCursor() {
	b.clampCursor()
}

func (b *Buffer) clampCursor() {
	if b.cursor.Row < 0 {
		b.cursor.Row = 0
	}
	if b.cursor.Row >= len(b.lines) {
		b.cursor.Row = len(b.lines) - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if limit := b.maxCol(b.cursor.Row); b.cursor.Col > limit {
		b.cursor.Col = limit
	}
}

// MoveLeft moves one column left. It does not cross line starts.
func (b *Buffer) MoveLeft() bool {
	if b.cursor.Col == 0 {
		return false
	}
	b.cursor.Col--
	b.clampCursor()
	return true
}

// MoveRight moves one column right within the current bounds.
func (b *Buffer) MoveRight() bool {
	if b.cursor.Col >= b.maxCol(b.cursor.Row) {
		return false
	}
	b.cursor.Col++
	return true
}

// MoveUp moves one row up, clamping the column to the new line.
func (b *Buffer) MoveUp() bool {
	if b.cursor.Row == 0 {
		return false
	}
	b.cursor.Row--
	b.clampCursor()
	return true
}

// MoveDown moves one row down, clamping the column to the new line.
func (b *Buffer) MoveDown() bool {
	if b.cursor.Row >= len(b.lines)-1 {
		return false
	}
	b.cursor.Row++
	b.clampCursor()
	return true
}

func (b *Buffer) MoveToLineStart() bool {
	if b.cursor.Col == 0 {
		return false
	}
	b.cursor.Col = 0
	return true
}

// MoveToLineEnd goes to the last character (normal) or past it (insert).
func (b *Buffer) MoveToLineEnd() bool {
	end := b.maxCol(b.cursor.Row)
	if b.cursor.Col == end {
		return false
	}
	b.cursor.Col = end
	return true
}

// MoveToFirstNonBlank is vim's ^.
func (b *Buffer) MoveToFirstNonBlank() bool {
	col := 0
	for _, r := range b.lines[b.cursor.Row] {
		if !unicode.IsSpace(r) {
			break
		}
		col++
	}
	prev := b.cursor
	b.cursor.Col = col
	b.clampCursor()
	return b.cursor != prev
}

// MoveToFirstLine is vim's gg.
func (b *Buffer) MoveToFirstLine() bool {
	prev := b.cursor
	b.cursor = Pos{}
	b.MoveToFirstNonBlank()
	return b.cursor != prev
}

// MoveToLastLine is vim's G.
func (b *Buffer) MoveToLastLine() bool {
	prev := b.cursor
	b.cursor = Pos{Row: len(b.lines) - 1}
	b.MoveToFirstNonBlank()
	return b.cursor != prev
}
