package main

import (
	"strconv"
	"strings"

	"github.com/slzatz/termnotes/buffer"
)

// editorProcessKey handles a key while the editor has focus. The prompt keys
// belong to the app; everything else goes to the editor.
func (a *App) editorProcessKey(c int) {
	e := a.Editor
	if e.mode() == buffer.Normal && e.command == "" && e.repeat == 0 {
		switch c {
		case ':', '/', '?':
			a.Session.openPrompt(rune(c))
			return
		}
	}
	e.processKey(c)
}

// processKey applies one key in the current mode and keeps the cursor on
// screen afterwards.
func (e *Editor) processKey(c int) {
	switch e.mode() {
	case buffer.Insert:
		e.insertProcessKey(c)
	case buffer.Visual, buffer.VisualLine:
		e.visualProcessKey(c)
	default:
		e.normalProcessKey(c)
	}
	e.scroll()
}

// count consumes the pending count, 1 if none was typed.
func (e *Editor) count() int {
	n := max(e.repeat, 1)
	e.repeat = 0
	return n
}

// times runs fn up to n times, stopping at the first no-op. It reports
// whether fn did anything.
func times(n int, fn func() bool) bool {
	done := false
	for i := 0; i < n; i++ {
		if !fn() {
			break
		}
		done = true
	}
	return done
}

// edit is times for mutations: the repeats undo as one block.
func (e *Editor) edit(n int, fn func() bool) bool {
	e.buf.BeginChangeGroup()
	defer e.buf.EndChangeGroup()
	return times(n, fn)
}

// move applies the motions shared by normal and visual mode. It reports
// whether c was a motion.
func (e *Editor) move(c int) bool {
	b := e.buf
	h := e.Screen.textLines
	switch c {
	case 'h', ARROW_LEFT:
		times(e.count(), b.MoveLeft)
	case 'l', ARROW_RIGHT:
		times(e.count(), b.MoveRight)
	case 'j', ARROW_DOWN:
		times(e.count(), b.MoveDown)
	case 'k', ARROW_UP:
		times(e.count(), b.MoveUp)
	case '0', HOME_KEY:
		b.MoveToLineStart()
	case '$', END_KEY:
		b.MoveToLineEnd()
	case '^':
		b.MoveToFirstNonBlank()
	case 'G':
		if e.repeat > 0 {
			b.SetCursor(buffer.Pos{Row: e.count() - 1})
			b.MoveToFirstNonBlank()
		} else {
			b.MoveToLastLine()
		}
	case ctrlKey('f'), PAGE_DOWN:
		b.PageDown(h)
	case ctrlKey('b'), PAGE_UP:
		b.PageUp(h)
	case ctrlKey('d'):
		b.HalfPageDown(h)
	case ctrlKey('u'):
		b.HalfPageUp(h)
	case 'n':
		if !b.SearchNext() {
			e.searchMissed()
		}
	case 'N':
		if !b.SearchPrevious() {
			e.searchMissed()
		}
	default:
		return false
	}
	e.repeat = 0
	return true
}

func (e *Editor) searchMissed() {
	if q := e.buf.LastSearch(); q != "" {
		e.Session.showMessage("Pattern not found: %s", q)
	} else {
		e.Session.showMessage("No previous search pattern")
	}
}

// search runs a search typed at the / or ? prompt.
func (e *Editor) search(dir rune, query string) {
	var found bool
	if dir == '?' {
		found = e.buf.SearchBackward(query)
	} else {
		found = e.buf.SearchForward(query)
	}
	if !found && query != "" {
		e.Session.showMessage("Pattern not found: %s", query)
	}
	e.scroll()
}

// pending finishes a two key command such as gg or dd.
func (e *Editor) pending(c int) {
	b := e.buf
	cmd := e.command + string(rune(c))
	e.command = ""
	n := e.count()
	switch cmd {
	case "gg":
		b.MoveToFirstLine()
	case "dd":
		if n == 1 {
			b.DeleteLine()
		} else {
			row := b.Cursor().Row
			b.DeleteLines(row, row+n-1)
		}
	case "yy":
		row := b.Cursor().Row
		b.YankLines(row, row+n-1)
	case "zh":
		b.ScrollLeft(n)
		e.cursorIntoView()
	case "zl":
		b.ScrollRight(n)
		e.cursorIntoView()
	case "zH":
		b.ScrollHalfScreenLeft(e.Screen.editorCols())
		e.cursorIntoView()
	case "zL":
		b.ScrollHalfScreenRight(e.Screen.editorCols())
		e.cursorIntoView()
	}
}

// cursorIntoView drags the cursor inside the horizontal viewport after the
// view was scrolled out from under it. On a line too short to reach the
// view the cursor stops at the line end and the view follows it back.
func (e *Editor) cursorIntoView() {
	cur := e.buf.Cursor()
	hoff := e.buf.HorizontalScrollOffset()
	cur.Col = min(max(cur.Col, hoff), e.lastVisibleCol(cur.Row))
	e.buf.SetCursor(cur)
}

func (e *Editor) normalProcessKey(c int) {
	b := e.buf

	if c == ESCAPE {
		e.command = ""
		e.repeat = 0
		e.Session.showMessage("")
		return
	}

	if e.command != "" {
		e.pending(c)
		return
	}

	if c >= '1' && c <= '9' || c == '0' && e.repeat > 0 {
		e.repeat = e.repeat*10 + c - '0'
		return
	}

	if e.move(c) {
		return
	}

	switch c {
	case 'g', 'd', 'y', 'z':
		e.command = string(rune(c))
		return
	case 'x', DEL_KEY:
		e.edit(e.count(), b.DeleteCharAtCursor)
	case 'i':
		e.setMode(buffer.Insert)
	case 'I':
		e.setMode(buffer.Insert)
		b.MoveToFirstNonBlank()
	case 'a':
		e.setMode(buffer.Insert)
		b.MoveRight()
	case 'A':
		e.setMode(buffer.Insert)
		b.MoveToLineEnd()
	case 'o':
		b.InsertLineBelow()
		e.setMode(buffer.Insert)
	case 'O':
		b.InsertLineAbove()
		e.setMode(buffer.Insert)
	case 'p', 'P':
		after := c == 'p'
		e.edit(e.count(), func() bool { return b.PasteFromRegister(after) })
	case 'u':
		if !times(e.count(), b.Undo) {
			e.Session.showMessage("Already at oldest change")
		}
	case ctrlKey('r'):
		if !times(e.count(), b.Redo) {
			e.Session.showMessage("Already at newest change")
		}
	case 'v':
		b.StartSelection()
		e.setMode(buffer.Visual)
	case 'V':
		b.StartSelection()
		e.setMode(buffer.VisualLine)
	}
	e.repeat = 0
}

func (e *Editor) insertProcessKey(c int) {
	b := e.buf
	switch c {
	case ESCAPE:
		// vim leaves insert mode one column to the left
		cur := b.Cursor()
		e.setMode(buffer.Normal)
		b.SetCursor(buffer.Pos{Row: cur.Row, Col: max(cur.Col-1, 0)})
	case ENTER:
		b.InsertNewline()
	case BACKSPACE, ctrlKey('h'):
		b.Backspace()
	case DEL_KEY:
		b.DeleteCharAtCursor()
	case ARROW_LEFT:
		b.MoveLeft()
	case ARROW_RIGHT:
		b.MoveRight()
	case ARROW_UP:
		b.MoveUp()
	case ARROW_DOWN:
		b.MoveDown()
	case HOME_KEY:
		b.MoveToLineStart()
	case END_KEY:
		b.MoveToLineEnd()
	default:
		if isPrintable(c) {
			b.InsertChar(rune(c))
		}
	}
}

func (e *Editor) visualProcessKey(c int) {
	b := e.buf

	if e.command != "" {
		cmd := e.command + string(rune(c))
		e.command = ""
		if cmd == "gg" {
			b.MoveToFirstLine()
		}
		return
	}

	if c >= '1' && c <= '9' || c == '0' && e.repeat > 0 {
		e.repeat = e.repeat*10 + c - '0'
		return
	}

	if e.move(c) {
		return
	}

	linewise := e.mode() == buffer.VisualLine
	switch c {
	case ESCAPE:
		e.setMode(buffer.Normal)
	case 'g':
		e.command = "g"
	case 'y':
		if linewise {
			first, last := b.SelectedRows()
			b.YankLines(first, last)
			e.Session.showMessage("%d lines yanked", last-first+1)
		} else {
			b.YankSelection()
		}
		e.setMode(buffer.Normal)
	case 'd', 'x', DEL_KEY:
		if linewise {
			first, last := b.SelectedRows()
			b.DeleteLines(first, last)
		} else {
			b.DeleteSelection()
		}
		e.setMode(buffer.Normal)
	case 'o':
		// jump to the other end of the selection
		anchor := b.SelectionAnchor()
		b.SetSelectionAnchor(b.Cursor())
		b.SetCursor(anchor)
	case 'v':
		if linewise {
			e.setMode(buffer.Visual)
		} else {
			e.setMode(buffer.Normal)
		}
	case 'V':
		if linewise {
			e.setMode(buffer.Normal)
		} else {
			e.setMode(buffer.VisualLine)
		}
	}
	e.repeat = 0
}

// statusLeft is the mode, the focused pane and the note title.
func (e *Editor) statusLeft() string {
	var sb strings.Builder
	sb.WriteString(" " + e.mode().String())
	if e.command != "" || e.repeat > 0 {
		sb.WriteString(" ")
		if e.repeat > 0 {
			sb.WriteString(strconv.Itoa(e.repeat))
		}
		sb.WriteString(e.command)
	}
	sb.WriteString("  [" + e.Session.focusName() + "]  ")
	sb.WriteString(e.title())
	return sb.String()
}
