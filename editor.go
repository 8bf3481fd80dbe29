package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/slzatz/termnotes/buffer"
)

// Editor is the right hand pane. It owns the mode; the buffer reads it
// through the shared ModeIndicator when clamping the cursor.
type Editor struct {
	mi      *buffer.ModeIndicator
	buf     *buffer.Buffer
	command string // pending normal mode command: "g", "d" or "z"
	repeat  int    // count typed before a command
	Session *Session
	Screen  *Screen
}

func NewEditor(undoLevels int, sess *Session, screen *Screen) *Editor {
	mi := buffer.NewModeIndicator(buffer.Normal)
	return &Editor{
		mi:      mi,
		buf:     buffer.New(mi, buffer.Options{HistoryLimit: undoLevels}),
		Session: sess,
		Screen:  screen,
	}
}

func (e *Editor) mode() buffer.Mode { return e.mi.Mode() }

// setMode switches mode and re-clamps the cursor to the new limit.
func (e *Editor) setMode(m buffer.Mode) {
	e.mi.Set(m)
	e.buf.ClampCursor()
}

// load replaces the document and drops any half typed command.
func (e *Editor) load(text, id string, isNew bool) {
	e.setMode(buffer.Normal)
	e.command = ""
	e.repeat = 0
	e.buf.LoadContent(text, id, isNew)
}

// scroll keeps the cursor inside the text area.
func (e *Editor) scroll() {
	e.buf.AdjustScroll(e.Screen.textLines)
	e.buf.AdjustHorizontalScrollCells(e.Screen.editorCols(), displayWidth)
}

// lastVisibleCol is the last rune column of row that fits on screen from
// the horizontal offset.
func (e *Editor) lastVisibleCol(row int) int {
	runes := []rune(e.buf.Line(row))
	hoff := e.buf.HorizontalScrollOffset()
	width := e.Screen.editorCols()
	used := 0
	c := hoff
	for ; ; c++ {
		w := 1
		if c < len(runes) {
			w = displayWidth(runes[c])
		}
		if used+w > width {
			break
		}
		used += w
	}
	return max(c-1, hoff)
}

// selectedCols returns the half open rune range of row covered by the
// visual selection, or ok=false.
func (e *Editor) selectedCols(row int) (from, to int, ok bool) {
	n := len([]rune(e.buf.Line(row)))
	switch e.mode() {
	case buffer.VisualLine:
		first, last := e.buf.SelectedRows()
		if row < first || row > last {
			return 0, 0, false
		}
		return 0, max(n, 1), true
	case buffer.Visual:
		start, end := e.buf.SelectionBounds()
		if row < start.Row || row > end.Row {
			return 0, 0, false
		}
		from, to = 0, max(n, 1)
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = end.Col + 1
		}
		return from, to, true
	}
	return 0, 0, false
}

func displayWidth(r rune) int {
	if r == '\t' {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// renderLine writes the part of line visible from rune column hoff within
// width screen columns, reversing the selected runes.
func (e *Editor) renderLine(ab *strings.Builder, row int, line string, hoff, width int) {
	runes := []rune(line)
	from, to, sel := e.selectedCols(row)
	used := 0
	inSel := false
	for c := hoff; ; c++ {
		want := sel && c >= from && c < to
		if want != inSel {
			if want {
				ab.WriteString(REVERSE)
			} else {
				ab.WriteString(RESET)
			}
			inSel = want
		}
		if c >= len(runes) {
			// an empty selected line still shows one cell
			if want && c == 0 && used < width {
				ab.WriteByte(' ')
			}
			break
		}
		r := runes[c]
		w := displayWidth(r)
		if used+w > width {
			break
		}
		if r == '\t' {
			r = ' '
		}
		ab.WriteRune(r)
		used += w
	}
	if inSel {
		ab.WriteString(RESET)
	}
}

func (e *Editor) drawText(ab *strings.Builder) {
	s := e.Screen
	off := e.buf.ScrollOffset()
	hoff := e.buf.HorizontalScrollOffset()
	width := s.editorCols()
	for y := 0; y < s.textLines; y++ {
		fmt.Fprintf(ab, "\x1b[%d;%dH\x1b[K", TOP_MARGIN+1+y, s.editorLeft())
		row := off + y
		if row >= e.buf.LineCount() {
			continue
		}
		e.renderLine(ab, row, e.buf.Line(row), hoff, width)
	}
}

// screenCursor returns the 1-based terminal position of the buffer cursor.
func (e *Editor) screenCursor() (row, col int) {
	cur := e.buf.Cursor()
	runes := []rune(e.buf.Line(cur.Row))
	x := 0
	for c := e.buf.HorizontalScrollOffset(); c < cur.Col; c++ {
		if c < len(runes) {
			x += displayWidth(runes[c])
		} else {
			x++
		}
	}
	return TOP_MARGIN + 1 + cur.Row - e.buf.ScrollOffset(), e.Screen.editorLeft() + x
}

func (e *Editor) title() string {
	switch {
	case e.buf.NoteID() == "" && !e.buf.IsNewUnsaved():
		return "[No Note]"
	case e.buf.LineCount() == 1 && e.buf.Line(0) == "":
		return "[New Note]"
	}
	return e.buf.Line(0)
}

func (e *Editor) statusRight() string {
	cur := e.buf.Cursor()
	pos := fmt.Sprintf("%d,%d  %d/%d", cur.Row+1, cur.Col+1, cur.Row+1, e.buf.LineCount())
	if e.buf.IsDirty() {
		pos = "[+] " + pos
	}
	return pos + " "
}
