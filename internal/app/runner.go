package app

import (
	"fmt"
	"io"

	"example.com/rawedit/pkg/config"
	"example.com/rawedit/pkg/editor"
	"example.com/rawedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// State is the runner's lifecycle state.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal is what the runner draws on and reads keys from. Rows and
// columns are 0-based.
type Terminal interface {
	io.Writer
	ClearScreen()
	MoveCursor(row, col int)
	Flush() error
	ReadKey() (*tcell.EventKey, error)
}

// Runner owns the editing session and drives the render/read/dispatch loop.
// The terminal's lifecycle belongs to the caller.
type Runner struct {
	Term     Terminal
	Editor   editor.Editor
	FilePath string
	Keymap   map[string][]config.Keybinding
	Logger   *logs.Logger
	State    State
}

// New creates a Runner with the default keymap and a disabled logger.
func New(t Terminal, e editor.Editor) *Runner {
	r := &Runner{Term: t, Editor: e}
	r.defaults()
	return r
}

// defaults fills in a keymap and logger for Runners built as literals.
func (r *Runner) defaults() {
	if r.Logger == nil {
		r.Logger = logs.Disabled()
	}
	if r.Keymap == nil {
		r.Keymap = config.DefaultKeymap()
	}
}

// Run loops until a quit key is read. Each iteration renders, blocks for
// exactly one key event and applies at most one command. A failed read is
// fatal and returned.
func (r *Runner) Run() error {
	r.defaults()
	r.State = StateRunning
	r.Logger.Event("run.start", map[string]any{"file": r.FilePath, "lines": r.Editor.Buffer.LineCount()})
	defer func() {
		r.Logger.Event("run.end", map[string]any{"file": r.FilePath, "state": r.State.String()})
	}()

	for r.State == StateRunning {
		if err := r.draw(); err != nil {
			r.Logger.Error("render.error", err, nil)
			return fmt.Errorf("render: %w", err)
		}
		ev, err := r.Term.ReadKey()
		if err != nil {
			r.Logger.Error("input.error", err, nil)
			return fmt.Errorf("read input: %w", err)
		}
		r.Logger.Debug("key", map[string]any{
			"key":       int(ev.Key()),
			"rune":      string(ev.Rune()),
			"modifiers": int(ev.Modifiers()),
		})
		if r.handleKeyEvent(ev) {
			r.State = StateTerminated
			r.Logger.Event("action", map[string]any{"name": config.CmdQuit})
		}
	}
	return nil
}
