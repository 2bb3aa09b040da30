package term

import (
	"bufio"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// ANSI drives the terminal directly with escape sequences while the input
// file descriptor is in raw mode.
type ANSI struct {
	r   *bufio.Reader
	w   *bufio.Writer
	out *termenv.Output

	fd    int
	state *xterm.State // nil when raw mode was never entered

	once     sync.Once
	closeErr error
}

// OpenANSI puts in into raw mode and returns an adapter writing to out.
func OpenANSI(in *os.File, out io.Writer) (*ANSI, error) {
	fd := in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := xterm.MakeRaw(int(fd))
	if err != nil {
		return nil, err
	}
	a := newANSI(in, out)
	a.fd = int(fd)
	a.state = state
	return a, nil
}

// newANSI builds an adapter without touching terminal modes.
func newANSI(in io.Reader, out io.Writer) *ANSI {
	w := bufio.NewWriter(out)
	return &ANSI{
		r:   bufio.NewReader(in),
		w:   w,
		out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)),
		fd:  -1,
	}
}

// ClearScreen erases the display and homes the cursor.
func (a *ANSI) ClearScreen() {
	a.out.ClearScreen()
}

// MoveCursor positions the terminal cursor; the wire format is 1-based.
func (a *ANSI) MoveCursor(row, col int) {
	a.out.MoveCursor(row+1, col+1)
}

func (a *ANSI) Write(p []byte) (int, error) {
	return a.w.Write(p)
}

// Flush sends buffered output to the terminal.
func (a *ANSI) Flush() error {
	return a.w.Flush()
}

// ReadKey blocks until one key event has been decoded.
func (a *ANSI) ReadKey() (*tcell.EventKey, error) {
	return DecodeKey(a.r)
}

// Restore leaves raw mode without flushing.
func (a *ANSI) Restore() error {
	if a.state == nil {
		return nil
	}
	return xterm.Restore(a.fd, a.state)
}

// Close flushes pending output and leaves raw mode.
func (a *ANSI) Close() error {
	a.once.Do(func() {
		a.closeErr = a.w.Flush()
		if err := a.Restore(); err != nil {
			a.closeErr = err
		}
	})
	return a.closeErr
}
