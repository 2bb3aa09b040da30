package editor

import (
	"errors"
	"fmt"
	"os"

	"example.com/rawedit/pkg/buffer"
	"example.com/rawedit/pkg/cursor"
)

// ErrStartupIO is wrapped by LoadFile when the file cannot be read.
var ErrStartupIO = errors.New("startup io")

// Editor is the whole editing session: one buffer and one cursor clamped
// against it. Every command returns a new Editor; the receiver is unchanged.
type Editor struct {
	Buffer buffer.Buffer
	Cursor cursor.Cursor
}

// New creates an Editor over b with the cursor at (0,0).
func New(b buffer.Buffer) Editor {
	return Editor{Buffer: b}
}

// LoadFile reads path and splits its content into lines on '\n'.
func LoadFile(path string) (Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Editor{}, fmt.Errorf("%w: %w", ErrStartupIO, err)
	}
	return New(buffer.FromString(string(data))), nil
}

// MoveDown moves the cursor one line down.
func (e Editor) MoveDown() Editor {
	e.Cursor = e.Cursor.MoveDown(e.Buffer)
	return e
}

// MoveUp moves the cursor one line up.
func (e Editor) MoveUp() Editor {
	e.Cursor = e.Cursor.MoveUp(e.Buffer)
	return e
}

// MoveRight moves the cursor one column right.
func (e Editor) MoveRight() Editor {
	e.Cursor = e.Cursor.MoveRight(e.Buffer)
	return e
}

// MoveLeft moves the cursor one column left.
func (e Editor) MoveLeft() Editor {
	e.Cursor = e.Cursor.MoveLeft(e.Buffer)
	return e
}

// InsertRune inserts r at the cursor and advances one column.
func (e Editor) InsertRune(r rune) Editor {
	e.Buffer = e.Buffer.Insert(r, e.Cursor.Row, e.Cursor.Col)
	e.Cursor = e.Cursor.MoveRight(e.Buffer)
	return e
}

// Backspace deletes the rune left of the cursor. At column 0 it does nothing;
// lines are never joined.
func (e Editor) Backspace() Editor {
	if e.Cursor.Col == 0 {
		return e
	}
	e.Buffer = e.Buffer.Delete(e.Cursor.Row, e.Cursor.Col-1)
	e.Cursor = e.Cursor.MoveLeft(e.Buffer)
	return e
}

// Newline splits the current line at the cursor and moves to the start of
// the new line.
func (e Editor) Newline() Editor {
	e.Buffer = e.Buffer.SplitLine(e.Cursor.Row, e.Cursor.Col)
	e.Cursor = e.Cursor.MoveDown(e.Buffer).MoveToColumn(0, e.Buffer)
	return e
}
