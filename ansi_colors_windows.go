//go:build windows

package main

const (
	RED_BOLD   string = "\x1b[1;38;2;204;36;29m"   //"\x1b[1;31m"
	BLUE_BOLD  string = "\x1b[1;38;2;69;133;136m"  //"\x1b[1;34m"
	WHITE_BOLD string = "\x1b[1;38;2;168;153;132m" //"\x1b[1;37m"
)
