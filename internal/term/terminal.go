// Package term adapts a terminal for the editor: it owns raw mode, turns
// drawing calls into output and turns input into tcell key events.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"

	"example.com/rawedit/pkg/config"
	"github.com/gdamore/tcell/v2"
)

var (
	// ErrNotTerminal is returned when stdin is not a terminal.
	ErrNotTerminal = errors.New("term: stdin is not a terminal")
	// ErrClosed is returned by ReadKey after the terminal has been closed.
	ErrClosed = errors.New("term: closed")
)

// Terminal is a scoped handle on the user's terminal. Rows and columns are
// 0-based. Output is buffered until Flush. Close flushes and restores the
// terminal and is safe to call more than once. Restore only puts the
// terminal back into cooked mode; it does not touch pending output, so it
// may be called from another goroutine on the way out of the process.
type Terminal interface {
	io.Writer
	ClearScreen()
	MoveCursor(row, col int)
	Flush() error
	ReadKey() (*tcell.EventKey, error)
	Restore() error
	Close() error
}

// Open acquires the terminal using the named backend (config.BackendANSI or
// config.BackendTcell).
func Open(backend string) (Terminal, error) {
	switch backend {
	case "", config.BackendANSI:
		return OpenANSI(os.Stdin, os.Stdout)
	case config.BackendTcell:
		return OpenScreen()
	}
	return nil, fmt.Errorf("term: unknown backend %q", backend)
}
