package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/slzatz/termnotes/rawmode"
)

type Screen struct {
	w            io.Writer
	screenCols   int
	screenLines  int // total number of screen lines
	textLines    int // considering margins, status bar and message line
	divider      int // column of the vertical line between the panes
	sidebarWidth int
}

func NewScreen(w io.Writer, sidebarWidth int) *Screen {
	return &Screen{w: w, sidebarWidth: sidebarWidth}
}

// setSize recomputes the layout for a terminal of rows x cols. The note list
// never takes more than half the width.
func (s *Screen) setSize(rows, cols int) {
	s.screenLines = rows
	s.screenCols = cols
	s.textLines = max(rows-2-TOP_MARGIN, 1)
	s.divider = min(s.sidebarWidth, cols/2) + 1
}

func (s *Screen) GetWindowSize() error {
	ws, err := rawmode.GetWindowSize()
	if err != nil {
		return err
	}
	s.setSize(int(ws.Row), int(ws.Col))
	return nil
}

// editorLeft is the screen column of the editor's first text column.
func (s *Screen) editorLeft() int { return s.divider + 2 }

// editorCols is the width of the editor's text area.
func (s *Screen) editorCols() int { return max(s.screenCols-s.divider-1, 1) }

// listCols is the width left for note titles after the selection marker.
func (s *Screen) listCols() int { return max(s.divider-1-LEFT_MARGIN, 1) }

func (s *Screen) statusRow() int { return TOP_MARGIN + s.textLines + 1 }

func (s *Screen) messageRow() int { return TOP_MARGIN + s.textLines + 2 }

func (s *Screen) eraseScreenRedrawLines(ab *strings.Builder) {
	ab.WriteString("\x1b[?25l") // hides the cursor
	ab.WriteString("\x1b[2J")   // erase the screen
	ab.WriteString("\x1b(0")    // enter line drawing mode
	ab.WriteString(WHITE_BOLD)

	// q = 0x71 horizontal line; x = 0x78 vertical line
	fmt.Fprintf(ab, "\x1b[%d;1H", TOP_MARGIN)
	ab.WriteString(strings.Repeat("q", s.screenCols))
	for j := 1; j <= s.textLines; j++ {
		fmt.Fprintf(ab, "\x1b[%d;%dHx", TOP_MARGIN+j, s.divider)
	}
	fmt.Fprintf(ab, "\x1b[%d;%dHw", TOP_MARGIN, s.divider) // 'T' corner

	ab.WriteString(RESET)
	ab.WriteString("\x1b(B") // exit line drawing mode
}

// drawStatusBar writes left and right parts in reverse video across the
// full width, truncating left first.
func (s *Screen) drawStatusBar(ab *strings.Builder, left, right string) {
	fmt.Fprintf(ab, "\x1b[%d;1H\x1b[K%s", s.statusRow(), REVERSE)
	room := s.screenCols - runewidth.StringWidth(right)
	if room < 0 {
		right = runewidth.Truncate(right, s.screenCols, "")
		room = 0
	}
	left = runewidth.Truncate(left, room, "")
	ab.WriteString(runewidth.FillRight(left, room))
	ab.WriteString(right)
	ab.WriteString(RESET)
}

func (s *Screen) drawMessage(ab *strings.Builder, text string) {
	fmt.Fprintf(ab, "\x1b[%d;1H\x1b[K", s.messageRow())
	ab.WriteString(runewidth.Truncate(text, s.screenCols, ""))
}

func (s *Screen) flush(ab *strings.Builder) error {
	_, err := io.WriteString(s.w, ab.String())
	return err
}
