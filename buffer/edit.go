package buffer

import (
	"strings"
	"unicode/utf8"
)

// InsertChar inserts r at the cursor and advances past it. A '\n' splits the
// line instead.
func (b *Buffer) InsertChar(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	before := b.cursor
	at := b.insertPos()
	b.insertText(at, string(r))
	b.cursor = Pos{Row: at.Row, Col: at.Col + 1}
	b.clampCursor()
	b.record(InsertChar{Cursors: Cursors{before, b.cursor}, At: at, Char: r})
}

// DeleteCharAtCursor removes the character under the cursor (vim x). At the
// end of a line there is nothing under the cursor and nothing changes.
func (b *Buffer) DeleteCharAtCursor() bool {
	at := b.insertPos()
	if at.Col >= b.lineLen(at.Row) {
		return false
	}
	before := b.cursor
	removed := b.removeText(at, Pos{Row: at.Row, Col: at.Col + 1})
	r, _ := utf8.DecodeRuneInString(removed)
	b.cursor = at
	b.clampCursor()
	b.record(DeleteChar{Cursors: Cursors{before, b.cursor}, At: at, Char: r})
	return true
}

// Backspace deletes the character before the cursor. At column 0 it joins
// the current line onto the previous one and leaves the cursor at the join.
func (b *Buffer) Backspace() bool {
	cur := b.insertPos()
	var at Pos
	switch {
	case cur.Col > 0:
		at = Pos{Row: cur.Row, Col: cur.Col - 1}
	case cur.Row > 0:
		at = Pos{Row: cur.Row - 1, Col: b.lineLen(cur.Row - 1)}
	default:
		return false
	}
	before := b.cursor
	removed := b.removeText(at, cur)
	b.cursor = at
	b.clampCursor()
	b.record(Backspace{Cursors: Cursors{before, b.cursor}, At: at, Deleted: removed})
	return true
}

// InsertNewline splits the current line at the cursor. The cursor moves to
// the start of the second half.
func (b *Buffer) InsertNewline() {
	before := b.cursor
	at := b.insertPos()
	b.insertText(at, "\n")
	b.cursor = Pos{Row: at.Row + 1, Col: 0}
	b.record(InsertNewline{Cursors: Cursors{before, b.cursor}, At: at})
}

// InsertLineBelow opens an empty line below the current one (vim o).
func (b *Buffer) InsertLineBelow() {
	b.insertLines(b.cursor.Row+1, []string{""})
}

// InsertLineAbove opens an empty line above the current one (vim O). The
// cursor stays on the same row index, which is now the new line.
func (b *Buffer) InsertLineAbove() {
	b.insertLines(b.cursor.Row, []string{""})
}

func (b *Buffer) insertLines(row int, lines []string) {
	if row < 0 {
		row = 0
	}
	if row > len(b.lines) {
		row = len(b.lines)
	}
	before := b.cursor
	ins := make([]string, len(lines))
	copy(ins, lines)
	b.spliceLines(row, 0, ins)
	b.cursor = Pos{Row: row, Col: 0}
	b.clampCursor()
	b.record(InsertLines{Cursors: Cursors{before, b.cursor}, Row: row, Lines: ins})
}

// DeleteLine removes the current line and yanks it linewise. The last
// remaining line is emptied rather than removed.
func (b *Buffer) DeleteLine() bool {
	row := b.cursor.Row
	text := b.lines[row]
	b.register = Register{Text: text, Linewise: true}

	cleared := len(b.lines) == 1
	if cleared && text == "" {
		return false
	}

	before := b.cursor
	if cleared {
		b.lines[0] = ""
	} else {
		b.spliceLines(row, 1, nil)
	}
	b.clampCursor()
	b.record(DeleteLine{Cursors: Cursors{before, b.cursor}, Row: row, Text: text, Cleared: cleared})
	return true
}

// PasteText inserts text characterwise at the cursor. With several lines the
// first joins the text before the cursor, the last joins the text after it
// and the ones between become whole lines. The cursor ends just past the
// pasted text.
func (b *Buffer) PasteText(text string) {
	b.pasteText(text, b.cursor)
}

func (b *Buffer) pasteText(text string, before Pos) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return
	}
	at := b.insertPos()
	b.cursor = b.insertText(at, text)
	b.clampCursor()
	b.record(PasteText{Cursors: Cursors{before, b.cursor}, At: at, Text: text})
}
