package terminal

import (
	"bufio"
	"fmt"
	"io"
)

// Special keys
const (
	KeyNoSpl     = iota
	KeyArrowLeft = iota + 999
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyIns
)

var specialKeys = map[[4]byte]int{
	{91, 65, 0, 0}:    KeyArrowUp,   // \x1b[A
	{91, 66, 0, 0}:    KeyArrowDown, // \x1b[B
	{91, 68, 0, 0}:    KeyArrowLeft,
	{91, 67, 0, 0}:    KeyArrowRight,
	{91, 53, 126, 0}:  KeyPageUp,   // \x1b[5~
	{91, 54, 126, 0}:  KeyPageDown, // \x1b[6~
	{91, 72, 0, 0}:    KeyHome,
	{91, 70, 0, 0}:    KeyEnd,
	{91, 49, 126, 0}:  KeyHome, // \x1b[1~
	{91, 52, 126, 0}:  KeyEnd,  // \x1b[4~
	{91, 51, 126, 0}:  KeyDelete,
	{79, 72, 0, 0}:    KeyHome, // \x1bOH
	{79, 70, 0, 0}:    KeyEnd,
	{79, 80, 0, 0}:    KeyF1,
	{79, 81, 0, 0}:    KeyF2,
	{79, 82, 0, 0}:    KeyF3,
	{79, 83, 0, 0}:    KeyF4,
	{91, 49, 53, 126}: KeyF5,
	{91, 49, 55, 126}: KeyF6,
	{91, 49, 56, 126}: KeyF7,
	{91, 49, 57, 126}: KeyF8,
	{91, 50, 48, 126}: KeyF9,
	{91, 50, 49, 126}: KeyF10,
	{91, 50, 51, 126}: KeyF11,
	{91, 50, 52, 126}: KeyF12,
	{91, 50, 126, 0}:  KeyIns,
}

// ErrNoInput indicates that there is no input when reading from keyboard
// in raw mode. This happens when timeout is set to a low number
var ErrNoInput = fmt.Errorf("no input")

// Key represents the key entered by the user
type Key struct {
	Regular rune
	Special int
}

// Int folds a key into the single int the dispatchers switch on: the rune
// for regular keys, the Key* constant otherwise.
func (k Key) Int() int {
	if k.Regular != 0 {
		return int(k.Regular)
	}
	return k.Special
}

// Reader decodes keys from a terminal in raw mode.
type Reader struct {
	bufr *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{bufr: bufio.NewReader(r)}
}

// ReadKey reads one key, processing VT100 escape sequences. The input should
// be in raw mode. An escape with nothing buffered behind it is a plain Esc.
func (r *Reader) ReadKey() (Key, error) {
	c, n, err := r.bufr.ReadRune()
	if err != nil {
		return Key{}, err
	}

	// a read timeout with no key pressed
	if n == 0 {
		return Key{}, ErrNoInput
	}

	if c != 27 {
		return Key{c, KeyNoSpl}, nil
	}

	if r.bufr.Buffered() == 0 {
		return Key{27, KeyNoSpl}, nil
	}

	stack := [4]byte{}
	for j := 0; j < 4; j++ {
		b, err := r.bufr.ReadByte()
		if err != nil {
			return Key{}, err
		}
		stack[j] = b

		if key, found := specialKeys[stack]; found {
			return Key{0, key}, nil
		}
		// a sequence has ended without matching
		if j > 0 && (b == '~' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')) {
			break
		}
		if r.bufr.Buffered() == 0 {
			break
		}
	}
	// an unknown sequence is reported as a plain escape
	return Key{27, KeyNoSpl}, nil
}
