// Package buffer is the in-memory document behind the note editor: lines,
// cursor, selection, yank register, search, scroll offsets and an undo log
// whose records invert every mutation exactly.
//
// The buffer performs no I/O and owns no mode. Cursor limits come from an
// injected Bounds, normally a *ModeIndicator shared with the editor.
package buffer

import (
	"strings"

	"github.com/slzatz/termnotes/undo"
)

type Options struct {
	HistoryLimit int // default: undo.DefaultLimit
}

// Buffer is one editing session's document state.
type Buffer struct {
	lines  []string
	cursor Pos
	anchor Pos // visual selection anchor
	bounds Bounds

	scrollOffset  int
	hScrollOffset int

	dirty        bool
	noteID       string
	isNewUnsaved bool

	register      Register
	lastSearch    string
	lastSearchFwd bool

	hist       *undo.History[Change]
	group      []Change
	groupDepth int
}

// New returns a buffer holding a single empty line. A nil bounds clamps the
// cursor as in normal mode.
func New(bounds Bounds, opt Options) *Buffer {
	if bounds == nil {
		bounds = Normal
	}
	return &Buffer{
		lines:  []string{""},
		bounds: bounds,
		hist:   undo.New[Change](opt.HistoryLimit),
	}
}

// LoadContent replaces the document and resets cursor, scroll, selection,
// dirty state and the undo log. The register survives.
func (b *Buffer) LoadContent(text, id string, isNew bool) {
	b.lines = splitLines(text)
	b.cursor = Pos{}
	b.anchor = Pos{}
	b.scrollOffset = 0
	b.hScrollOffset = 0
	b.dirty = false
	b.noteID = id
	b.isNewUnsaved = isNew
	b.hist.Clear()
	b.group = nil
	b.groupDepth = 0
}

// Text returns the document with lines joined by '\n'.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// DisplayLines returns a copy of the lines for rendering.
func (b *Buffer) DisplayLines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Line returns the given row or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) Cursor() Pos { return b.cursor }

// SetCursor moves the cursor, clamped to the document and the current bounds.
func (b *Buffer) SetCursor(p Pos) {
	b.cursor = p
	b.clampCursor()
}

func (b *Buffer) ScrollOffset() int { return b.scrollOffset }

func (b *Buffer) HorizontalScrollOffset() int { return b.hScrollOffset }

func (b *Buffer) IsDirty() bool { return b.dirty }

// NoteID returns the identifier of the note loaded into the buffer, "" if none.
func (b *Buffer) NoteID() string { return b.noteID }

func (b *Buffer) IsNewUnsaved() bool { return b.isNewUnsaved }

// SetNoteID tags the buffer after a collaborator has created its note.
func (b *Buffer) SetNoteID(id string) { b.noteID = id }

// MarkClean is called after a successful save.
func (b *Buffer) MarkClean() {
	b.dirty = false
	b.isNewUnsaved = false
}

func (b *Buffer) Register() Register { return b.register }

func (b *Buffer) SetRegister(r Register) { b.register = r }

func (b *Buffer) CanUndo() bool { return b.hist.CanUndo() }

func (b *Buffer) CanRedo() bool { return b.hist.CanRedo() }

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return runeLen(b.lines[row])
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
