package buffer

import (
	"io"
	"strings"
)

// Buffer is an ordered sequence of text lines. Columns are expressed in
// runes (not bytes).
//
// A Buffer is a value: edit operations return a new Buffer and leave the
// receiver untouched. Lines that an edit does not touch are shared between
// the old and new values, which is safe because no operation writes into an
// existing line slice.
//
// The zero Buffer is the empty document: a single empty line.
type Buffer struct {
	lines [][]rune
}

// New returns a Buffer holding the given lines. With no arguments it returns
// the empty document.
func New(lines ...string) Buffer {
	if len(lines) == 0 {
		return Buffer{}
	}
	out := make([][]rune, len(lines))
	for i, l := range lines {
		out[i] = []rune(l)
	}
	return Buffer{lines: out}
}

// FromString splits s on '\n'. A trailing newline yields a trailing empty
// line; carriage returns are kept as content.
func FromString(s string) Buffer {
	return New(strings.Split(s, "\n")...)
}

// rows returns the backing lines, substituting the single empty line for the
// zero value.
func (b Buffer) rows() [][]rune {
	if len(b.lines) == 0 {
		return [][]rune{{}}
	}
	return b.lines
}

// LineCount returns the number of lines. It is always at least one.
func (b Buffer) LineCount() int {
	return len(b.rows())
}

// LineLength returns the rune count of line row.
func (b Buffer) LineLength(row int) int {
	b.checkRow("LineLength", row)
	return len(b.rows()[row])
}

// Line returns line row as a string.
func (b Buffer) Line(row int) string {
	b.checkRow("Line", row)
	return string(b.rows()[row])
}

// Lines returns a copy of every line as strings.
func (b Buffer) Lines() []string {
	rows := b.rows()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = string(r)
	}
	return out
}

// String joins the lines with '\n'; it is the inverse of FromString.
func (b Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// Equal reports whether both buffers hold the same lines.
func (b Buffer) Equal(other Buffer) bool {
	x, y := b.rows(), other.rows()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if string(x[i]) != string(y[i]) {
			return false
		}
	}
	return true
}

// Insert returns a new Buffer with r inserted into line row at col. Runes at
// and after col shift right. Requires 0 <= col <= LineLength(row).
func (b Buffer) Insert(r rune, row, col int) Buffer {
	b.checkRow("Insert", row)
	rows := b.rows()
	line := rows[row]
	if col < 0 || col > len(line) {
		panic(&PreconditionError{Op: "Insert", Row: row, Col: col})
	}
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, r)
	next = append(next, line[col:]...)
	return b.replace(row, 1, next)
}

// Delete returns a new Buffer with the rune at col removed from line row.
// Requires 0 <= col < LineLength(row).
func (b Buffer) Delete(row, col int) Buffer {
	b.checkRow("Delete", row)
	rows := b.rows()
	line := rows[row]
	if col < 0 || col >= len(line) {
		panic(&PreconditionError{Op: "Delete", Row: row, Col: col})
	}
	next := make([]rune, 0, len(line)-1)
	next = append(next, line[:col]...)
	next = append(next, line[col+1:]...)
	return b.replace(row, 1, next)
}

// SplitLine returns a new Buffer where line row is replaced by its prefix
// [0,col) and its suffix [col,end); the suffix becomes line row+1 and every
// later line shifts down by one.
func (b Buffer) SplitLine(row, col int) Buffer {
	b.checkRow("SplitLine", row)
	rows := b.rows()
	line := rows[row]
	if col < 0 || col > len(line) {
		panic(&PreconditionError{Op: "SplitLine", Row: row, Col: col})
	}
	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)
	return b.replace(row, 1, head, tail)
}

// Render writes every line to w, each terminated by "\r\n". Raw terminal mode
// does not translate '\n' into a carriage return, so it is written explicitly.
func (b Buffer) Render(w io.Writer) error {
	for _, line := range b.rows() {
		if _, err := io.WriteString(w, string(line)+"\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// replace copies the line table, swapping the n lines at row for repl.
func (b Buffer) replace(row, n int, repl ...[]rune) Buffer {
	rows := b.rows()
	out := make([][]rune, 0, len(rows)-n+len(repl))
	out = append(out, rows[:row]...)
	out = append(out, repl...)
	out = append(out, rows[row+n:]...)
	return Buffer{lines: out}
}

func (b Buffer) checkRow(op string, row int) {
	if row < 0 || row >= b.LineCount() {
		panic(&PreconditionError{Op: op, Row: row, Col: -1})
	}
}
