package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/slzatz/termnotes/buffer"
	"github.com/slzatz/termnotes/config"
	"github.com/slzatz/termnotes/rawmode"
	"github.com/slzatz/termnotes/storage"
	"github.com/slzatz/termnotes/terminal"
)

type App struct {
	Session   *Session
	Screen    *Screen
	Organizer *Organizer
	Editor    *Editor
	Config    *config.Config
	Storage   storage.Storage

	ctx     context.Context
	logger  *log.Logger
	exCmds  *CommandRegistry[func(*App, string)]
	pending *storage.Note // note whose load was refused for unsaved changes
	resize  chan struct{}
	Run     bool
}

func NewApp(ctx context.Context, cfg *config.Config, store storage.Storage, logger *log.Logger, out io.Writer) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	sess := &Session{}
	screen := NewScreen(out, cfg.Editor.SidebarWidth)
	a := &App{
		Session:   sess,
		Screen:    screen,
		Organizer: &Organizer{Session: sess, Screen: screen},
		Editor:    NewEditor(cfg.Editor.UndoLevels, sess, screen),
		Config:    cfg,
		Storage:   store,
		ctx:       ctx,
		logger:    logger,
		resize:    make(chan struct{}, 1),
		Run:       true,
	}
	a.exCmds = a.setExCmds()
	return a
}

// LoadInitialData fills the note list and opens the most recent note.
func (a *App) LoadInitialData() error {
	if err := a.Organizer.load(a.ctx, a.Storage); err != nil {
		return err
	}
	if n := a.Organizer.selected(); n != nil {
		a.Editor.load(n.Content, n.ID, false)
	}
	a.Session.showMessage("rows: %d  columns: %d", a.Screen.screenLines, a.Screen.screenCols)
	return nil
}

// openNote loads n into the editor unless the buffer has unsaved changes, in
// which case n is remembered for :e!.
func (a *App) openNote(n *storage.Note) bool {
	if a.Editor.buf.IsDirty() && n.ID != a.Editor.buf.NoteID() {
		a.pending = n
		a.Session.showMessage("Unsaved changes! :w to save, :e! to discard and load")
		return false
	}
	if n.ID != a.Editor.buf.NoteID() {
		a.Editor.load(n.Content, n.ID, false)
	}
	a.pending = nil
	a.Session.showMessage("")
	return true
}

// newNote creates an empty note in storage and opens it with focus.
func (a *App) newNote() bool {
	if a.Editor.buf.IsDirty() {
		a.Session.showMessage("Unsaved changes! :w to save, :e! to discard")
		return false
	}
	n, err := a.Storage.CreateNote(a.ctx)
	if err != nil {
		a.logger.Printf("creating note: %v", err)
		a.Session.showMessage("Error creating note: %v", err)
		return false
	}
	a.Editor.load("", n.ID, true)
	if err := a.Organizer.load(a.ctx, a.Storage); err != nil {
		a.logger.Print(err)
	}
	a.Organizer.selectNote(n.ID)
	a.Session.editorMode = true
	a.Session.showMessage("New note created")
	return true
}

// saveNote writes the buffer back. A buffer with no note gets one first.
func (a *App) saveNote() bool {
	b := a.Editor.buf
	if b.NoteID() == "" {
		n, err := a.Storage.CreateNote(a.ctx)
		if err != nil {
			a.logger.Printf("creating note: %v", err)
			a.Session.showMessage("Error saving note: %v", err)
			return false
		}
		b.SetNoteID(n.ID)
	}

	n, err := a.Storage.GetNote(a.ctx, b.NoteID())
	if errors.Is(err, storage.ErrNotFound) {
		n = storage.NewNote()
		n.ID = b.NoteID()
	} else if err != nil {
		a.logger.Printf("reading note %s: %v", b.NoteID(), err)
		a.Session.showMessage("Error saving note: %v", err)
		return false
	}
	n.Content = b.Text()
	if err := a.Storage.SaveNote(a.ctx, n); err != nil {
		a.logger.Printf("saving note %s: %v", n.ID, err)
		a.Session.showMessage("Error saving note: %v", err)
		return false
	}
	b.MarkClean()
	a.pending = nil

	if err := a.Organizer.load(a.ctx, a.Storage); err != nil {
		a.logger.Print(err)
	}
	a.Organizer.selectNote(n.ID)
	a.Session.showMessage("Note saved")
	return true
}

// deleteNote removes a note; when it is the open one the editor moves on
// to whatever note is then selected.
func (a *App) deleteNote(id string) {
	if err := a.Storage.DeleteNote(a.ctx, id); err != nil {
		a.logger.Printf("deleting note %s: %v", id, err)
		a.Session.showMessage("Error deleting note: %v", err)
		return
	}
	if err := a.Organizer.load(a.ctx, a.Storage); err != nil {
		a.logger.Print(err)
	}
	if a.pending != nil && a.pending.ID == id {
		a.pending = nil
	}
	if id == a.Editor.buf.NoteID() {
		if n := a.Organizer.selected(); n != nil {
			a.Editor.load(n.Content, n.ID, false)
		} else {
			a.Editor.load("", "", false)
		}
	}
	a.Session.showMessage("Note deleted")
}

// discardChanges is :e!: load the refused note, or reload the current one.
func (a *App) discardChanges() {
	b := a.Editor.buf
	if n := a.pending; n != nil {
		a.pending = nil
		a.Editor.load(n.Content, n.ID, false)
		a.Organizer.selectNote(n.ID)
		a.Session.showMessage("")
		return
	}
	if b.NoteID() == "" {
		a.Editor.load("", "", false)
		return
	}
	n, err := a.Storage.GetNote(a.ctx, b.NoteID())
	if err != nil {
		a.logger.Printf("reloading note %s: %v", b.NoteID(), err)
		a.Session.showMessage("Error reloading note: %v", err)
		return
	}
	a.Editor.load(n.Content, n.ID, b.IsNewUnsaved())
	a.Session.showMessage("Changes discarded")
}

func (a *App) quit(force bool) {
	if !force && a.Editor.buf.IsDirty() {
		a.Session.showMessage("No write since last change (add ! to override)")
		return
	}
	a.Run = false
}

// canSwitchFocus is false while the editor is in the middle of something.
func (a *App) canSwitchFocus() bool {
	if !a.Session.editorMode {
		return a.Organizer.command == ""
	}
	e := a.Editor
	return e.mode() == buffer.Normal && e.command == "" && e.repeat == 0
}

func (a *App) processKey(c int) {
	switch {
	case a.Session.prompt != 0:
		a.commandLineProcessKey(c)
	case c == ctrlKey('q'):
		a.quit(false)
	case c == TAB && a.canSwitchFocus():
		a.Session.editorMode = !a.Session.editorMode
		a.Session.showMessage("")
	case a.Session.editorMode:
		a.editorProcessKey(c)
	default:
		a.organizerProcessKey(c)
	}
}

func (a *App) commandLineProcessKey(c int) {
	s := a.Session
	switch c {
	case ESCAPE:
		s.closePrompt()
	case ENTER:
		p, text := s.prompt, s.command_line
		s.closePrompt()
		switch {
		case p == ':':
			a.runExCmd(text)
		case a.Session.editorMode:
			a.Editor.search(p, text)
		case p == '?':
			a.Organizer.findNote(text, -1)
		default:
			a.Organizer.findNote(text, 1)
		}
	case BACKSPACE, ctrlKey('h'):
		if s.command_line == "" {
			s.closePrompt()
			return
		}
		r := []rune(s.command_line)
		s.command_line = string(r[:len(r)-1])
	default:
		if isPrintable(c) {
			s.command_line += string(rune(c))
		}
	}
}

// refreshScreen redraws both panes, the status bar and the bottom line. A
// full redraw also erases the screen and the frame.
func (a *App) refreshScreen(full bool) {
	var ab strings.Builder
	if full {
		a.Screen.eraseScreenRedrawLines(&ab)
	} else {
		ab.WriteString("\x1b[?25l")
	}
	a.Organizer.scroll()
	a.Organizer.refreshScreen(&ab, a.Editor.buf.NoteID())
	a.Editor.scroll()
	a.Editor.drawText(&ab)
	if a.Session.editorMode {
		a.Screen.drawStatusBar(&ab, a.Editor.statusLeft(), a.Editor.statusRight())
	} else {
		a.Screen.drawStatusBar(&ab, a.Organizer.statusLeft(), a.Organizer.statusRight())
	}
	if a.Session.prompt != 0 {
		a.Screen.drawMessage(&ab, string(a.Session.prompt)+a.Session.command_line)
	} else {
		a.Screen.drawMessage(&ab, a.Session.message)
	}
	a.returnCursor(&ab)
	if err := a.Screen.flush(&ab); err != nil {
		a.logger.Printf("writing screen: %v", err)
	}
}

// returnCursor positions the terminal cursor in the right place
func (a *App) returnCursor(ab *strings.Builder) {
	switch {
	case a.Session.prompt != 0:
		col := 2 + runewidth.StringWidth(a.Session.command_line)
		fmt.Fprintf(ab, "\x1b[%d;%dH", a.Screen.messageRow(), col)
	case a.Session.editorMode:
		row, col := a.Editor.screenCursor()
		fmt.Fprintf(ab, "\x1b[%d;%dH", row, col)
	default:
		fmt.Fprintf(ab, "\x1b[%d;%dH", TOP_MARGIN+1+a.Organizer.fr-a.Organizer.rowoff, LEFT_MARGIN)
	}
	ab.WriteString(RESET)
	ab.WriteString("\x1b[?25h") // shows the cursor
}

// signalHandler picks up a new window size and redraws everything.
func (a *App) signalHandler() {
	if err := a.Screen.GetWindowSize(); err != nil {
		a.logger.Printf("resize: %v", err)
		return
	}
	a.Session.showMessage("rows: %d  cols: %d", a.Screen.screenLines, a.Screen.screenCols)
	a.refreshScreen(true)
}

// readKeys feeds decoded keys to keyc until a read fails or done is closed.
func readKeys(keys *terminal.Reader, keyc chan<- terminal.Key, errc chan<- error, done <-chan struct{}) {
	for {
		k, err := keys.ReadKey()
		if errors.Is(err, terminal.ErrNoInput) {
			select {
			case <-done:
				return
			default:
			}
			continue
		}
		if err != nil {
			select {
			case errc <- err:
			case <-done:
			}
			return
		}
		select {
		case keyc <- k:
		case <-done:
			return
		}
	}
}

func (a *App) MainLoop(keys *terminal.Reader) {
	keyc := make(chan terminal.Key)
	errc := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go readKeys(keys, keyc, errc, done)

	a.refreshScreen(true)
	for a.Run {
		select {
		case k := <-keyc:
			a.processKey(k.Int())
			if a.Run {
				a.refreshScreen(false)
			}
		case <-a.resize:
			a.signalHandler()
		case err := <-errc:
			a.logger.Printf("reading key: %v", err)
			a.Run = false
		}
	}
}

func (a *App) Cleanup() {
	fmt.Fprint(a.Screen.w, "\x1b[2J\x1b[H") // clears the screen and sends cursor home
	if err := rawmode.Restore(a.Session.origTermCfg); err != nil {
		a.logger.Printf("disabling raw mode: %v", err)
	}
	if err := a.Storage.Close(); err != nil {
		a.logger.Printf("closing storage: %v", err)
	}
}
