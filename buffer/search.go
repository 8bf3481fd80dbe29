package buffer

import "strings"

// indexFrom returns the rune column of the first match of q in s at or after
// rune column from, or -1.
func indexFrom(s, q string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > runeLen(s) {
		return -1
	}
	off := byteOffset(s, from)
	i := strings.Index(s[off:], q)
	if i < 0 {
		return -1
	}
	return from + runeLen(s[off:off+i])
}

// lastIndexAtOrBefore returns the rune column of the last match of q in s
// that starts at or before rune column limit, or -1.
func lastIndexAtOrBefore(s, q string, limit int) int {
	if limit < 0 {
		return -1
	}
	end := byteOffset(s, limit) + len(q)
	if end > len(s) {
		end = len(s)
	}
	i := strings.LastIndex(s[:end], q)
	if i < 0 {
		return -1
	}
	return runeLen(s[:i])
}

// SearchForward moves the cursor to the next match of query after the
// cursor, wrapping around the end of the document. Matching is exact and
// case sensitive. It returns false, leaving the cursor alone, when there is
// no match.
func (b *Buffer) SearchForward(query string) bool {
	if query == "" {
		return false
	}
	b.lastSearch, b.lastSearchFwd = query, true
	p, ok := b.findForward(query)
	if ok {
		b.cursor = p
		b.clampCursor()
	}
	return ok
}

// SearchBackward is the mirror of SearchForward.
func (b *Buffer) SearchBackward(query string) bool {
	if query == "" {
		return false
	}
	b.lastSearch, b.lastSearchFwd = query, false
	p, ok := b.findBackward(query)
	if ok {
		b.cursor = p
		b.clampCursor()
	}
	return ok
}

// SearchNext repeats the last search in its own direction (vim n).
func (b *Buffer) SearchNext() bool {
	if b.lastSearch == "" {
		return false
	}
	if b.lastSearchFwd {
		return b.SearchForward(b.lastSearch)
	}
	return b.SearchBackward(b.lastSearch)
}

// SearchPrevious repeats the last search the other way (vim N). The
// remembered direction does not change.
func (b *Buffer) SearchPrevious() bool {
	if b.lastSearch == "" {
		return false
	}
	fwd := b.lastSearchFwd
	var ok bool
	if fwd {
		ok = b.SearchBackward(b.lastSearch)
	} else {
		ok = b.SearchForward(b.lastSearch)
	}
	b.lastSearchFwd = fwd
	return ok
}

func (b *Buffer) LastSearch() string { return b.lastSearch }

func (b *Buffer) findForward(q string) (Pos, bool) {
	row, col := b.cursor.Row, b.cursor.Col
	if i := indexFrom(b.lines[row], q, col+1); i >= 0 {
		return Pos{Row: row, Col: i}, true
	}
	for r := row + 1; r < len(b.lines); r++ {
		if i := indexFrom(b.lines[r], q, 0); i >= 0 {
			return Pos{Row: r, Col: i}, true
		}
	}
	for r := 0; r < row; r++ {
		if i := indexFrom(b.lines[r], q, 0); i >= 0 {
			return Pos{Row: r, Col: i}, true
		}
	}
	if i := indexFrom(b.lines[row], q, 0); i >= 0 && i <= col {
		return Pos{Row: row, Col: i}, true
	}
	return Pos{}, false
}

func (b *Buffer) findBackward(q string) (Pos, bool) {
	row, col := b.cursor.Row, b.cursor.Col
	if i := lastIndexAtOrBefore(b.lines[row], q, col-1); i >= 0 {
		return Pos{Row: row, Col: i}, true
	}
	for r := row - 1; r >= 0; r-- {
		if i := strings.LastIndex(b.lines[r], q); i >= 0 {
			return Pos{Row: r, Col: runeLen(b.lines[r][:i])}, true
		}
	}
	for r := len(b.lines) - 1; r > row; r-- {
		if i := strings.LastIndex(b.lines[r], q); i >= 0 {
			return Pos{Row: r, Col: runeLen(b.lines[r][:i])}, true
		}
	}
	if i := strings.LastIndex(b.lines[row], q); i >= 0 {
		if c := runeLen(b.lines[row][:i]); c >= col {
			return Pos{Row: row, Col: c}, true
		}
	}
	return Pos{}, false
}
