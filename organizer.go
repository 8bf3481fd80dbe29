package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/slzatz/termnotes/storage"
)

// Organizer is the note list in the left pane.
type Organizer struct {
	notes      []*storage.Note
	fr         int    // selected row
	rowoff     int    // the number of rows scrolled off the top
	command    string // pending "d" or "g"
	lastSearch string // repeated by n and N
	Session    *Session
	Screen     *Screen
}

// load refreshes the list from storage, keeping the selection on the same
// note when it still exists.
func (o *Organizer) load(ctx context.Context, s storage.Storage) error {
	keep := ""
	if n := o.selected(); n != nil {
		keep = n.ID
	}
	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	o.notes = notes
	if !o.selectNote(keep) {
		o.fr = min(o.fr, max(len(o.notes)-1, 0))
	}
	return nil
}

func (o *Organizer) selected() *storage.Note {
	if o.fr < 0 || o.fr >= len(o.notes) {
		return nil
	}
	return o.notes[o.fr]
}

// selectNote moves the selection to the note with the given id.
func (o *Organizer) selectNote(id string) bool {
	if id == "" {
		return false
	}
	for i, n := range o.notes {
		if n.ID == id {
			o.fr = i
			return true
		}
	}
	return false
}

// noteMatches reports whether the note's content contains q, ignoring case.
func noteMatches(n *storage.Note, q string) bool {
	return strings.Contains(strings.ToLower(n.Content), strings.ToLower(q))
}

// findNote selects the next note (dir > 0) or previous note (dir < 0)
// whose content contains q, wrapping around the list. The selected note
// is checked last. An empty q repeats the last search.
func (o *Organizer) findNote(q string, dir int) bool {
	if q == "" {
		q = o.lastSearch
	}
	if q == "" {
		o.Session.showMessage("No previous search pattern")
		return false
	}
	o.lastSearch = q
	step := 1
	if dir < 0 {
		step = -1
	}
	n := len(o.notes)
	for i := 1; i <= n; i++ {
		j := ((o.fr+step*i)%n + n) % n
		if noteMatches(o.notes[j], q) {
			o.fr = j
			o.scroll()
			return true
		}
	}
	o.Session.showMessage("Pattern not found: %s", q)
	return false
}

func (o *Organizer) moveCursor(c int) {
	last := max(len(o.notes)-1, 0)
	switch c {
	case 'j', ARROW_DOWN:
		o.fr = min(o.fr+1, last)
	case 'k', ARROW_UP:
		o.fr = max(o.fr-1, 0)
	case ctrlKey('f'), PAGE_DOWN:
		o.fr = min(o.fr+o.Screen.textLines, last)
	case ctrlKey('b'), PAGE_UP:
		o.fr = max(o.fr-o.Screen.textLines, 0)
	case 'G':
		o.fr = last
	}
}

func (o *Organizer) scroll() {
	h := o.Screen.textLines
	if o.fr < o.rowoff {
		o.rowoff = o.fr
	}
	if o.fr >= o.rowoff+h {
		o.rowoff = o.fr - h + 1
	}
}

// refreshScreen draws the visible titles. openID marks the note loaded in
// the editor.
func (o *Organizer) refreshScreen(ab *strings.Builder, openID string) {
	s := o.Screen
	width := s.listCols()
	for y := 0; y < s.textLines; y++ {
		fmt.Fprintf(ab, "\x1b[%d;1H", TOP_MARGIN+1+y)
		i := o.rowoff + y
		if i >= len(o.notes) {
			ab.WriteString(strings.Repeat(" ", width+LEFT_MARGIN))
			continue
		}
		n := o.notes[i]
		if i == o.fr {
			if o.Session.editorMode {
				ab.WriteString(BLUE_BOLD + ">")
			} else {
				ab.WriteString(RED_BOLD + ">")
			}
			ab.WriteString(RESET)
		} else {
			ab.WriteString(" ")
		}
		title := runewidth.FillRight(runewidth.Truncate(n.Preview(width), width, ""), width)
		if n.ID == openID {
			ab.WriteString(BOLD + title + RESET)
		} else {
			ab.WriteString(title)
		}
	}
}

func (o *Organizer) statusLeft() string {
	return fmt.Sprintf(" NOTES  [%s]  %d notes", o.Session.focusName(), len(o.notes))
}

func (o *Organizer) statusRight() string {
	if len(o.notes) == 0 {
		return "0/0 "
	}
	return fmt.Sprintf("%d/%d ", o.fr+1, len(o.notes))
}
