package main

import "github.com/slzatz/termnotes/terminal"

const (
	RESET   string = "\x1b[0m"
	BOLD    string = "\x1b[1m"
	REVERSE string = "\x1b[7m"
)

const (
	TOP_MARGIN  = 1 // the horizontal line across the top
	LEFT_MARGIN = 1 // the selection marker in the note list
)

const (
	ARROW_LEFT  = terminal.KeyArrowLeft
	ARROW_RIGHT = terminal.KeyArrowRight
	ARROW_UP    = terminal.KeyArrowUp
	ARROW_DOWN  = terminal.KeyArrowDown
	DEL_KEY     = terminal.KeyDelete
	HOME_KEY    = terminal.KeyHome
	END_KEY     = terminal.KeyEnd
	PAGE_UP     = terminal.KeyPageUp
	PAGE_DOWN   = terminal.KeyPageDown
	BACKSPACE   = 127
	ESCAPE      = 27
	ENTER       = '\r'
	TAB         = '\t'
)

func ctrlKey(b byte) int {
	return int(b & 0x1f)
}

var z0 = struct{}{}

var navKeys = map[int]struct{}{
	ARROW_UP:    z0,
	ARROW_DOWN:  z0,
	ARROW_LEFT:  z0,
	ARROW_RIGHT: z0,
	'j':         z0,
	'k':         z0,
	'h':         z0,
	'l':         z0,
}

// isPrintable reports whether a key inserts itself in insert mode.
func isPrintable(c int) bool {
	return c >= 32 && c != BACKSPACE && (c < terminal.KeyArrowLeft || c > terminal.KeyIns)
}
