package app

import (
	"unicode"
	"unicode/utf8"

	"example.com/rawedit/pkg/config"
	"example.com/rawedit/pkg/editor"
	"github.com/gdamore/tcell/v2"
)

// commands maps every non-quit command name to its edit.
var commands = map[string]func(editor.Editor) editor.Editor{
	config.CmdDown:      editor.Editor.MoveDown,
	config.CmdUp:        editor.Editor.MoveUp,
	config.CmdRight:     editor.Editor.MoveRight,
	config.CmdLeft:      editor.Editor.MoveLeft,
	config.CmdBackspace: editor.Editor.Backspace,
	config.CmdNewline:   editor.Editor.Newline,
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit. Bound commands win over text input; unbound
// printable runes are inserted and anything else is ignored.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	if cmd, ok := config.Lookup(r.Keymap, ev); ok {
		if cmd == config.CmdQuit {
			return true
		}
		r.apply(cmd, commands[cmd])
		return false
	}
	if isTextInput(ev) {
		ch := ev.Rune()
		r.apply("insert", func(e editor.Editor) editor.Editor { return e.InsertRune(ch) })
	}
	return false
}

// isTextInput reports whether ev types a printable character. The
// replacement rune is what undecodable input turns into, so it is dropped.
func isTextInput(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return false
	}
	ch := ev.Rune()
	return ch != utf8.RuneError && unicode.IsPrint(ch)
}
