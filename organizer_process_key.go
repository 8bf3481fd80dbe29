package main

import "github.com/slzatz/termnotes/buffer"

func (a *App) organizerProcessKey(c int) {
	org := a.Organizer

	if c == ESCAPE {
		org.command = ""
		a.Session.showMessage("")
		return
	}

	if org.command != "" {
		cmd := org.command + string(rune(c))
		org.command = ""
		switch cmd {
		case "dd":
			if n := org.selected(); n != nil {
				a.deleteNote(n.ID)
			}
		case "gg":
			org.fr = 0
		}
		org.scroll()
		return
	}

	if _, ok := navKeys[c]; ok {
		org.moveCursor(c)
		org.scroll()
		return
	}

	switch c {
	case ':', '/', '?':
		a.Session.openPrompt(rune(c))
	case 'n':
		org.findNote(org.lastSearch, 1)
	case 'N':
		org.findNote(org.lastSearch, -1)
	case 'd', 'g':
		org.command = string(rune(c))
	case 'G', PAGE_DOWN, PAGE_UP, ctrlKey('f'), ctrlKey('b'):
		org.moveCursor(c)
	case ENTER:
		if n := org.selected(); n != nil && a.openNote(n) {
			a.Session.editorMode = true
		}
	case 'o':
		if a.newNote() {
			a.Editor.setMode(buffer.Insert)
		}
	}
	org.scroll()
}
