package main

import (
	"strings"
)

func (a *App) setExCmds() *CommandRegistry[func(*App, string)] {
	registry := NewCommandRegistry[func(*App, string)]()

	registry.Register("write", func(a *App, _ string) { a.saveNote() }, CommandInfo{
		Aliases:     []string{"w"},
		Description: "Save the current note",
	})
	registry.Register("quit", func(a *App, _ string) { a.quit(false) }, CommandInfo{
		Aliases:     []string{"q"},
		Description: "Quit, refusing when there are unsaved changes",
	})
	registry.Register("quit!", func(a *App, _ string) { a.quit(true) }, CommandInfo{
		Aliases:     []string{"q!"},
		Description: "Quit and throw away unsaved changes",
	})
	registry.Register("wq", func(a *App, _ string) {
		if a.saveNote() {
			a.quit(false)
		}
	}, CommandInfo{
		Aliases:     []string{"x"},
		Description: "Save the current note and quit",
	})
	registry.Register("edit!", func(a *App, _ string) { a.discardChanges() }, CommandInfo{
		Aliases:     []string{"e!"},
		Description: "Discard changes and reload, or load the note that was refused",
	})
	registry.Register("new", func(a *App, _ string) { a.newNote() }, CommandInfo{
		Description: "Create a new empty note",
	})
	registry.Register("delete", func(a *App, _ string) {
		id := a.Editor.buf.NoteID()
		if id == "" {
			a.Session.showMessage("No note loaded")
			return
		}
		a.deleteNote(id)
	}, CommandInfo{
		Description: "Delete the current note",
	})
	registry.Register("help", func(a *App, arg string) {
		if arg == "" {
			a.Session.showMessage("Commands: %s", strings.Join(a.exCmds.GetCommandNames(), " "))
			return
		}
		a.Session.showMessage("%s", a.exCmds.FormatCommandHelp(arg))
	}, CommandInfo{
		Aliases:     []string{"h"},
		Description: "List the commands or describe one",
		Usage:       "help [command]",
	})

	return registry
}

// runExCmd executes a line typed after ':'.
func (a *App) runExCmd(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	name, arg, _ := strings.Cut(line, " ")
	fn, ok := a.exCmds.Lookup(name)
	if !ok {
		if s := a.exCmds.SuggestCommand(name); len(s) > 0 {
			a.Session.showMessage("Not an editor command: %s (did you mean %s?)", name, strings.Join(s, ", "))
		} else {
			a.Session.showMessage("Not an editor command: %s", name)
		}
		return
	}
	fn(a, strings.TrimSpace(arg))
}
