package buffer

import "strings"

// StartSelection drops the visual anchor at the cursor.
func (b *Buffer) StartSelection() {
	b.anchor = b.cursor
}

func (b *Buffer) SelectionAnchor() Pos { return b.anchor }

func (b *Buffer) SetSelectionAnchor(p Pos) { b.anchor = b.clampText(p) }

// SelectionBounds returns the anchor and cursor in document order. Both ends
// are inclusive.
func (b *Buffer) SelectionBounds() (start, end Pos) {
	start, end = b.clampText(b.anchor), b.clampText(b.cursor)
	if ComparePos(start, end) > 0 {
		start, end = end, start
	}
	return start, end
}

// SelectedRows returns the first and last row touched by the selection, for
// linewise visual mode.
func (b *Buffer) SelectedRows() (first, last int) {
	start, end := b.SelectionBounds()
	return start.Row, end.Row
}

// inclusiveEnd turns an inclusive end position into the half-open end used
// by the text helpers. An end resting on an empty line covers that line's
// line break, except on the last line which has none.
func (b *Buffer) inclusiveEnd(end Pos) Pos {
	if end.Col < b.lineLen(end.Row) {
		return Pos{Row: end.Row, Col: end.Col + 1}
	}
	if end.Row < len(b.lines)-1 {
		return Pos{Row: end.Row + 1, Col: 0}
	}
	return Pos{Row: end.Row, Col: b.lineLen(end.Row)}
}

// GetSelectionText returns the characterwise selection, ends included.
func (b *Buffer) GetSelectionText() string {
	start, end := b.SelectionBounds()
	return b.textBetween(start, b.inclusiveEnd(end))
}

// YankSelection copies the selection into the register and moves the cursor
// to its start, as vim does.
func (b *Buffer) YankSelection() {
	start, _ := b.SelectionBounds()
	b.register = Register{Text: b.GetSelectionText()}
	b.cursor = start
	b.clampCursor()
}

// DeleteSelection removes the characterwise selection and yanks it.
func (b *Buffer) DeleteSelection() bool {
	start, end := b.SelectionBounds()
	stop := b.inclusiveEnd(end)
	if ComparePos(start, stop) >= 0 {
		return false
	}
	before := b.cursor
	text := b.removeText(start, stop)
	b.register = Register{Text: text}
	b.cursor = start
	b.clampCursor()
	b.anchor = b.cursor
	b.record(DeleteSelection{Cursors: Cursors{before, b.cursor}, Start: start, Text: text})
	return true
}

func (b *Buffer) normalizeRows(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end >= len(b.lines) {
		end = len(b.lines) - 1
	}
	return start, end
}

// YankLines copies rows start..end inclusive into the register linewise.
func (b *Buffer) YankLines(start, end int) {
	start, end = b.normalizeRows(start, end)
	b.register = Register{Text: strings.Join(b.lines[start:end+1], "\n"), Linewise: true}
	b.cursor.Row = start
	b.clampCursor()
}

// DeleteLines removes rows start..end inclusive and yanks them linewise. If
// nothing would be left, a single empty line remains.
func (b *Buffer) DeleteLines(start, end int) bool {
	start, end = b.normalizeRows(start, end)
	if start > end {
		return false
	}
	before := b.cursor
	removed := make([]string, end-start+1)
	copy(removed, b.lines[start:end+1])
	filler := len(removed) == len(b.lines)
	if filler {
		b.spliceLines(start, len(removed), []string{""})
	} else {
		b.spliceLines(start, len(removed), nil)
	}
	b.register = Register{Text: strings.Join(removed, "\n"), Linewise: true}

	b.cursor.Row = min(start, len(b.lines)-1)
	b.clampCursor()
	b.record(DeleteLines{Cursors: Cursors{before, b.cursor}, Start: start, Lines: removed, Filler: filler})
	return true
}

// PasteFromRegister is vim's p (after) and P. Linewise text goes on new
// lines below or above the cursor; characterwise text goes after or at the
// cursor.
func (b *Buffer) PasteFromRegister(after bool) bool {
	reg := b.register
	if reg.IsEmpty() {
		return false
	}
	if reg.Linewise {
		row := b.cursor.Row
		if after {
			row++
		}
		b.insertLines(row, strings.Split(reg.Text, "\n"))
		return true
	}

	before := b.cursor
	if after && b.lineLen(b.cursor.Row) > 0 {
		b.cursor.Col = min(b.insertPos().Col+1, b.lineLen(b.cursor.Row))
	}
	b.pasteText(reg.Text, before)
	return true
}
