// Package rawmode switches the controlling terminal in and out of raw mode.
package rawmode

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// State is the terminal configuration saved by Enable.
type State = term.State

// Enable puts stdin in raw mode and returns the previous state so it can be
// handed back to Restore.
func Enable() (*State, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enabling raw mode: %w", err)
	}
	return st, nil
}

// Restore returns stdin to the state saved by Enable. A nil state is a no-op.
func Restore(st *State) error {
	if st == nil {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), st)
}
