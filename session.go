package main

import (
	"fmt"

	"github.com/slzatz/termnotes/rawmode"
)

// Session is the state shared by the two panes: which one has focus, the
// saved terminal configuration and the bottom line.
type Session struct {
	editorMode  bool // the editor has focus, otherwise the note list
	origTermCfg *rawmode.State

	message      string
	prompt       rune // ':', '/' or '?' while the command line is open
	command_line string
}

func (s *Session) showMessage(format string, a ...any) {
	s.message = fmt.Sprintf(format, a...)
}

func (s *Session) focusName() string {
	if s.editorMode {
		return "EDITOR"
	}
	return "SIDEBAR"
}

func (s *Session) openPrompt(p rune) {
	s.prompt = p
	s.command_line = ""
	s.message = ""
}

func (s *Session) closePrompt() {
	s.prompt = 0
	s.command_line = ""
}
