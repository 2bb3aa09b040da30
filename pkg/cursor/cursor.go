// Package cursor tracks the edit position inside a buffer.
package cursor

import "example.com/rawedit/pkg/buffer"

// Cursor is a (row, column) position. Columns are counted in runes and may
// equal the line length, which is the append point after the last rune.
//
// A Cursor only has meaning relative to the Shape it was last clamped
// against; every method returns a new, clamped value.
type Cursor struct {
	Row int
	Col int
}

// MoveDown moves one line down.
func (c Cursor) MoveDown(b buffer.Shape) Cursor {
	return Cursor{Row: c.Row + 1, Col: c.Col}.Clamp(b)
}

// MoveUp moves one line up.
func (c Cursor) MoveUp(b buffer.Shape) Cursor {
	return Cursor{Row: c.Row - 1, Col: c.Col}.Clamp(b)
}

// MoveRight moves one column right, stopping at the append point.
func (c Cursor) MoveRight(b buffer.Shape) Cursor {
	return Cursor{Row: c.Row, Col: c.Col + 1}.Clamp(b)
}

// MoveLeft moves one column left, stopping at column 0.
func (c Cursor) MoveLeft(b buffer.Shape) Cursor {
	return Cursor{Row: c.Row, Col: c.Col - 1}.Clamp(b)
}

// MoveToColumn sets the column directly.
func (c Cursor) MoveToColumn(col int, b buffer.Shape) Cursor {
	return Cursor{Row: c.Row, Col: col}.Clamp(b)
}

// Clamp bounds the row to the lines of b, then bounds the column to the
// length of the clamped row. The order matters: a vertical move onto a
// shorter line must snap to that line's end.
func (c Cursor) Clamp(b buffer.Shape) Cursor {
	row := clamp(c.Row, 0, b.LineCount()-1)
	col := clamp(c.Col, 0, b.LineLength(row))
	return Cursor{Row: row, Col: col}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
