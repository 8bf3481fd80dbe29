//go:build !windows

package main

const (
	RED_BOLD   string = "\x1b[1;31m"
	BLUE_BOLD  string = "\x1b[1;34m"
	WHITE_BOLD string = "\x1b[37;1m"
)
