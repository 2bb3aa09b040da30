package term

import (
	"bytes"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen adapts a tcell.Screen to Terminal. Text written between ClearScreen
// and Flush is laid out from the origin as CRLF-terminated lines.
type Screen struct {
	s       tcell.Screen
	pending bytes.Buffer
	row     int
	col     int

	once sync.Once
}

// OpenScreen initializes the default tcell screen.
func OpenScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewScreen(s), nil
}

// NewScreen wraps an initialized screen.
func NewScreen(s tcell.Screen) *Screen {
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return &Screen{s: s}
}

// ClearScreen drops pending text and clears every cell.
func (t *Screen) ClearScreen() {
	t.pending.Reset()
	t.row, t.col = 0, 0
	t.s.Clear()
}

// MoveCursor records where the cursor is shown at the next Flush.
func (t *Screen) MoveCursor(row, col int) {
	t.row, t.col = row, col
}

func (t *Screen) Write(p []byte) (int, error) {
	return t.pending.Write(p)
}

// Flush paints pending lines and shows the cursor. The cursor column is
// converted to cells so it lands after wide runes correctly.
func (t *Screen) Flush() error {
	lines := strings.Split(t.pending.String(), "\r\n")
	for y, line := range lines {
		x := 0
		for _, r := range line {
			c, w := cell(r)
			t.s.SetContent(x, y, c, nil, tcell.StyleDefault)
			x += w
		}
	}
	x := t.col
	if t.row < len(lines) {
		runes := []rune(lines[t.row])
		n := t.col
		if n > len(runes) {
			n = len(runes)
		}
		x = cellWidth(runes[:n]) + t.col - n
	}
	t.s.ShowCursor(x, t.row)
	t.s.Show()
	return nil
}

// cell returns the rune drawn for r and the number of cells it occupies.
// Control and zero-width runes are shown as a single '?'.
func cell(r rune) (rune, int) {
	w := runewidth.RuneWidth(r)
	if w == 0 || unicode.IsControl(r) {
		return '?', 1
	}
	return r, w
}

func cellWidth(runes []rune) int {
	n := 0
	for _, r := range runes {
		_, w := cell(r)
		n += w
	}
	return n
}

// ReadKey blocks on the screen's event queue until a key arrives. Resize
// events resynchronize the display.
func (t *Screen) ReadKey() (*tcell.EventKey, error) {
	for {
		switch ev := t.s.PollEvent().(type) {
		case nil:
			return nil, ErrClosed
		case *tcell.EventKey:
			return ev, nil
		case *tcell.EventResize:
			t.s.Sync()
		}
	}
}

// Restore finalizes the screen. tcell serializes Fini against drawing, so
// it is the same as Close.
func (t *Screen) Restore() error {
	return t.Close()
}

// Close finalizes the screen, restoring the terminal.
func (t *Screen) Close() error {
	t.once.Do(t.s.Fini)
	return nil
}
