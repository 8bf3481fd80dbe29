//go:build windows

package main

import (
	"time"

	"github.com/slzatz/termnotes/rawmode"
)

// setupSignalHandling polls for terminal size changes since SIGWINCH
// doesn't exist on Windows.
func setupSignalHandling(app *App) {
	go func() {
		ws, err := rawmode.GetWindowSize()
		if err != nil {
			return
		}
		prev := *ws

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for range ticker.C {
			cur, err := rawmode.GetWindowSize()
			if err != nil {
				continue
			}
			if *cur != prev {
				prev = *cur
				select {
				case app.resize <- struct{}{}:
				default:
				}
			}
		}
	}()
}
