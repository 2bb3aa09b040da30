package app

import "example.com/rawedit/pkg/editor"

// apply replaces the session with the result of fn and records the action.
// Edits are pure, so the previous Editor stays valid for the comparison.
func (r *Runner) apply(name string, fn func(editor.Editor) editor.Editor) {
	if fn == nil {
		return
	}
	prev := r.Editor
	r.Editor = fn(prev)
	r.Logger.Debug("action", map[string]any{
		"name":       name,
		"changed":    !r.Editor.Buffer.Equal(prev.Buffer),
		"cursor_row": r.Editor.Cursor.Row,
		"cursor_col": r.Editor.Cursor.Col,
		"lines":      r.Editor.Buffer.LineCount(),
	})
}
