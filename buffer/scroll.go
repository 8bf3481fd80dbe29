package buffer

// AdjustScroll scrolls the least amount that keeps the cursor row inside a
// viewport of height rows.
func (b *Buffer) AdjustScroll(height int) {
	if height <= 0 {
		height = 1
	}
	row := b.cursor.Row
	if row < b.scrollOffset {
		b.scrollOffset = row
	}
	if row >= b.scrollOffset+height {
		b.scrollOffset = row - height + 1
	}
	if b.scrollOffset < 0 {
		b.scrollOffset = 0
	}
}

// AdjustHorizontalScroll does the same for columns. It only scrolls once
// the cursor reaches the edge of the viewport.
func (b *Buffer) AdjustHorizontalScroll(width int) {
	if width <= 0 {
		width = 1
	}
	col := b.cursor.Col
	if col < b.hScrollOffset {
		b.hScrollOffset = col
	}
	if col >= b.hScrollOffset+width {
		b.hScrollOffset = col - width + 1
	}
	if b.hScrollOffset < 0 {
		b.hScrollOffset = 0
	}
}

// AdjustHorizontalScrollCells is AdjustHorizontalScroll for a viewport of
// width screen cells, where cells gives the width of each rune. Columns past
// the line end count as one cell.
func (b *Buffer) AdjustHorizontalScrollCells(width int, cells func(rune) int) {
	if width <= 0 {
		width = 1
	}
	col := b.cursor.Col
	if col < b.hScrollOffset {
		b.hScrollOffset = col
	}
	runes := []rune(b.Line(b.cursor.Row))
	cell := func(c int) int {
		if c < len(runes) {
			return max(cells(runes[c]), 0)
		}
		return 1
	}
	used := 0
	for c := b.hScrollOffset; c <= col; c++ {
		used += cell(c)
	}
	for used > width && b.hScrollOffset < col {
		used -= cell(b.hScrollOffset)
		b.hScrollOffset++
	}
	if b.hScrollOffset < 0 {
		b.hScrollOffset = 0
	}
}

// scrollBy moves the viewport down (step > 0) or up (step < 0) and drags
// the cursor with it so it keeps its place on screen. When the viewport is
// already at the document edge the cursor snaps to the first or last line.
func (b *Buffer) scrollBy(step, height int) bool {
	maxOff := max(0, len(b.lines)-height)
	off := min(max(b.scrollOffset+step, 0), maxOff)
	delta := off - b.scrollOffset
	prev := b.cursor

	if delta == 0 {
		if step > 0 {
			b.cursor.Row = len(b.lines) - 1
		} else {
			b.cursor.Row = 0
		}
	} else {
		b.scrollOffset = off
		b.cursor.Row += delta
	}
	b.clampCursor()
	return b.cursor != prev || delta != 0
}

func (b *Buffer) PageDown(height int) bool {
	if height <= 0 {
		height = 1
	}
	return b.scrollBy(height, height)
}

func (b *Buffer) PageUp(height int) bool {
	if height <= 0 {
		height = 1
	}
	return b.scrollBy(-height, height)
}

// HalfPageDown is ctrl-d.
func (b *Buffer) HalfPageDown(height int) bool {
	if height <= 0 {
		height = 1
	}
	return b.scrollBy(max(1, height/2), height)
}

// HalfPageUp is ctrl-u.
func (b *Buffer) HalfPageUp(height int) bool {
	if height <= 0 {
		height = 1
	}
	return b.scrollBy(-max(1, height/2), height)
}

// ScrollLeft and ScrollRight shift the horizontal offset by n columns and
// leave the cursor alone. The offset never goes below zero; there is no
// upper limit.
func (b *Buffer) ScrollLeft(n int) {
	b.hScrollOffset = max(0, b.hScrollOffset-n)
}

func (b *Buffer) ScrollRight(n int) {
	b.hScrollOffset = max(0, b.hScrollOffset+n)
}

func (b *Buffer) ScrollHalfScreenLeft(width int) {
	b.ScrollLeft(max(1, width/2))
}

func (b *Buffer) ScrollHalfScreenRight(width int) {
	b.ScrollRight(max(1, width/2))
}
