package app

// draw renders one frame: clear, home, every buffer line, then the cursor.
// Output is flushed so the frame is visible before the loop blocks on input.
func (r *Runner) draw() error {
	t := r.Term
	t.ClearScreen()
	t.MoveCursor(0, 0)
	if err := r.Editor.Buffer.Render(t); err != nil {
		return err
	}
	t.MoveCursor(r.Editor.Cursor.Row, r.Editor.Cursor.Col)
	return t.Flush()
}
