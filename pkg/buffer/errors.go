package buffer

import (
	"errors"
	"fmt"
)

// ErrPrecondition is matched by every PreconditionError.
var ErrPrecondition = errors.New("buffer: precondition violated")

// PreconditionError reports a Buffer operation called with a row or column
// outside the buffer's shape. It is raised with panic: callers clamp through
// the cursor package first, so reaching it is a programming error.
type PreconditionError struct {
	Op  string
	Row int
	Col int // -1 when the row itself was invalid
}

func (e *PreconditionError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("buffer: %s: row %d out of range", e.Op, e.Row)
	}
	return fmt.Sprintf("buffer: %s: column %d out of range on row %d", e.Op, e.Col, e.Row)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }
