//go:build !windows

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// setupSignalHandling forwards SIGWINCH to the main loop.
func setupSignalHandling(app *App) {
	signal_chan := make(chan os.Signal, 1)
	signal.Notify(signal_chan, unix.SIGWINCH)

	go func() {
		for range signal_chan {
			select {
			case app.resize <- struct{}{}:
			default: // a resize is already queued
			}
		}
	}()
}
