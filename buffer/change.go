package buffer

// Cursors is the cursor position before and after a change.
type Cursors struct {
	Before Pos
	After  Pos
}

// Change is one primitive mutation recorded in the undo log. The set of
// implementations is closed; each carries exactly what it needs to be
// re-applied and reverted.
type Change interface {
	cursors() Cursors
	apply(b *Buffer)
	revert(b *Buffer)
}

func (c Cursors) cursors() Cursors { return c }

// InsertChar is a single rune typed at At.
type InsertChar struct {
	Cursors
	At   Pos
	Char rune
}

func (c InsertChar) apply(b *Buffer) { b.insertText(c.At, string(c.Char)) }

func (c InsertChar) revert(b *Buffer) {
	b.removeText(c.At, Pos{Row: c.At.Row, Col: c.At.Col + 1})
}

// DeleteChar is the rune removed from under the cursor.
type DeleteChar struct {
	Cursors
	At   Pos
	Char rune
}

func (c DeleteChar) apply(b *Buffer) {
	b.removeText(c.At, Pos{Row: c.At.Row, Col: c.At.Col + 1})
}

func (c DeleteChar) revert(b *Buffer) { b.insertText(c.At, string(c.Char)) }

// Backspace removed Deleted ending at the old cursor. Deleted is "\n" when
// the current line was joined onto the previous one; At is the join point.
type Backspace struct {
	Cursors
	At      Pos
	Deleted string
}

func (c Backspace) apply(b *Buffer) { b.removeText(c.At, textEnd(c.At, c.Deleted)) }

func (c Backspace) revert(b *Buffer) { b.insertText(c.At, c.Deleted) }

// InsertNewline split the line at At.
type InsertNewline struct {
	Cursors
	At Pos
}

func (c InsertNewline) apply(b *Buffer) { b.insertText(c.At, "\n") }

func (c InsertNewline) revert(b *Buffer) {
	b.removeText(c.At, Pos{Row: c.At.Row + 1, Col: 0})
}

// InsertLines added whole lines starting at Row (o, O and linewise paste).
type InsertLines struct {
	Cursors
	Row   int
	Lines []string
}

func (c InsertLines) apply(b *Buffer) { b.spliceLines(c.Row, 0, c.Lines) }

func (c InsertLines) revert(b *Buffer) { b.spliceLines(c.Row, len(c.Lines), nil) }

// DeleteLine removed line Row. Cleared is set when it was the only line and
// was emptied instead of removed.
type DeleteLine struct {
	Cursors
	Row     int
	Text    string
	Cleared bool
}

func (c DeleteLine) apply(b *Buffer) {
	if c.Cleared {
		b.lines[c.Row] = ""
		return
	}
	b.spliceLines(c.Row, 1, nil)
}

func (c DeleteLine) revert(b *Buffer) {
	if c.Cleared {
		b.lines[c.Row] = c.Text
		return
	}
	b.spliceLines(c.Row, 0, []string{c.Text})
}

// DeleteSelection removed Text starting at Start.
type DeleteSelection struct {
	Cursors
	Start Pos
	Text  string
}

func (c DeleteSelection) apply(b *Buffer) { b.removeText(c.Start, textEnd(c.Start, c.Text)) }

func (c DeleteSelection) revert(b *Buffer) { b.insertText(c.Start, c.Text) }

// DeleteLines removed Lines starting at Start. Filler is set when every line
// went and a single empty line was put in their place.
type DeleteLines struct {
	Cursors
	Start  int
	Lines  []string
	Filler bool
}

func (c DeleteLines) apply(b *Buffer) {
	if c.Filler {
		b.spliceLines(c.Start, len(c.Lines), []string{""})
		return
	}
	b.spliceLines(c.Start, len(c.Lines), nil)
}

func (c DeleteLines) revert(b *Buffer) {
	if c.Filler {
		b.spliceLines(c.Start, 1, c.Lines)
		return
	}
	b.spliceLines(c.Start, 0, c.Lines)
}

// PasteText is a characterwise paste of Text at At.
type PasteText struct {
	Cursors
	At   Pos
	Text string
}

func (c PasteText) apply(b *Buffer) { b.insertText(c.At, c.Text) }

func (c PasteText) revert(b *Buffer) { b.removeText(c.At, textEnd(c.At, c.Text)) }
