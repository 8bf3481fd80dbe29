package buffer

import (
	"strings"
	"unicode/utf8"
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// byteOffset converts a rune column into a byte offset into s, clamped to
// the ends of the string.
func byteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	i := 0
	for off := range s {
		if i == col {
			return off
		}
		i++
	}
	return len(s)
}

func splitAt(s string, col int) (string, string) {
	off := byteOffset(s, col)
	return s[:off], s[off:]
}

// textEnd returns the position just past text if it were inserted at p.
func textEnd(p Pos, text string) Pos {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return Pos{Row: p.Row, Col: p.Col + runeLen(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return Pos{Row: p.Row + nl, Col: runeLen(last)}
}

// clampText clamps p into the document with the column allowed to sit one
// past the last character, regardless of mode.
func (b *Buffer) clampText(p Pos) Pos {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= len(b.lines) {
		p.Row = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.lineLen(p.Row); p.Col > n {
		p.Col = n
	}
	return p
}

// insertPos is the cursor as a text position.
func (b *Buffer) insertPos() Pos { return b.clampText(b.cursor) }

// spliceLines replaces remove lines starting at row with insert.
func (b *Buffer) spliceLines(at, remove int, insert []string) {
	out := make([]string, 0, len(b.lines)-remove+len(insert))
	out = append(out, b.lines[:at]...)
	out = append(out, insert...)
	out = append(out, b.lines[at+remove:]...)
	if len(out) == 0 {
		out = []string{""}
	}
	b.lines = out
}

// insertText inserts text, which may contain newlines, at p and returns the
// position just past it.
func (b *Buffer) insertText(p Pos, text string) Pos {
	p = b.clampText(p)
	head, tail := splitAt(b.lines[p.Row], p.Col)

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[p.Row] = head + text + tail
		return Pos{Row: p.Row, Col: p.Col + runeLen(text)}
	}

	last := parts[len(parts)-1]
	repl := make([]string, 0, len(parts))
	repl = append(repl, head+parts[0])
	repl = append(repl, parts[1:len(parts)-1]...)
	repl = append(repl, last+tail)
	b.spliceLines(p.Row, 1, repl)
	return Pos{Row: p.Row + len(parts) - 1, Col: runeLen(last)}
}

// textBetween returns the half-open range [start, end) with '\n' between rows.
func (b *Buffer) textBetween(start, end Pos) string {
	start, end = b.clampText(start), b.clampText(end)
	if ComparePos(start, end) >= 0 {
		return ""
	}
	if start.Row == end.Row {
		_, rest := splitAt(b.lines[start.Row], start.Col)
		mid, _ := splitAt(rest, end.Col-start.Col)
		return mid
	}

	var sb strings.Builder
	_, first := splitAt(b.lines[start.Row], start.Col)
	sb.WriteString(first)
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[r])
	}
	last, _ := splitAt(b.lines[end.Row], end.Col)
	sb.WriteByte('\n')
	sb.WriteString(last)
	return sb.String()
}

// removeText deletes [start, end) and returns what was removed.
func (b *Buffer) removeText(start, end Pos) string {
	start, end = b.clampText(start), b.clampText(end)
	if ComparePos(start, end) >= 0 {
		return ""
	}
	removed := b.textBetween(start, end)
	head, _ := splitAt(b.lines[start.Row], start.Col)
	_, tail := splitAt(b.lines[end.Row], end.Col)
	b.spliceLines(start.Row, end.Row-start.Row+1, []string{head + tail})
	return removed
}
