package buffer

// Pos is a (row, col) position in the document. Both are 0-based and Col
// counts runes.
type Pos struct {
	Row int
	Col int
}

// ComparePos orders positions in document order.
func ComparePos(a, b Pos) int {
	switch {
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// Mode is the editing mode. It decides how far right the cursor may go.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
	VisualLine
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case VisualLine:
		return "VISUAL LINE"
	default:
		return "NORMAL"
	}
}

// MaxColumn returns the last column the cursor may occupy on a line of
// lineLen runes. In insert mode the cursor may sit one past the last
// character; everywhere else it must rest on a character.
func (m Mode) MaxColumn(lineLen int) int {
	if m == Insert {
		return lineLen
	}
	if lineLen == 0 {
		return 0
	}
	return lineLen - 1
}

// Bounds supplies the column limit the buffer applies to its cursor.
type Bounds interface {
	MaxColumn(lineLen int) int
}

// ModeIndicator is a Bounds whose limit follows a mode owned by the caller.
// The editor sets the mode; the buffer only reads it.
type ModeIndicator struct {
	mode Mode
}

func NewModeIndicator(m Mode) *ModeIndicator {
	return &ModeIndicator{mode: m}
}

func (mi *ModeIndicator) Mode() Mode { return mi.mode }

func (mi *ModeIndicator) Set(m Mode) { mi.mode = m }

func (mi *ModeIndicator) MaxColumn(lineLen int) int {
	return mi.mode.MaxColumn(lineLen)
}

// Register is the single yank slot. Linewise registers hold whole lines
// joined with '\n' and paste as new lines.
type Register struct {
	Text     string
	Linewise bool
}

// IsEmpty reports whether there is nothing to paste. An empty linewise
// register still pastes one empty line.
func (r Register) IsEmpty() bool {
	return r.Text == "" && !r.Linewise
}
