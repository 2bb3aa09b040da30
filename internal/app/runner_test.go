package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"example.com/rawedit/pkg/buffer"
	"example.com/rawedit/pkg/config"
	"example.com/rawedit/pkg/cursor"
	"example.com/rawedit/pkg/editor"
	"example.com/rawedit/pkg/logs"
	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

// fakeTerminal records output and replays scripted key events.
type fakeTerminal struct {
	out     bytes.Buffer
	keys    []*tcell.EventKey
	flushes int
	frames  []string
}

func (f *fakeTerminal) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakeTerminal) ClearScreen() { f.out.WriteString("<clear>") }
func (f *fakeTerminal) MoveCursor(row, col int) {
	fmt.Fprintf(&f.out, "<move %d,%d>", row, col)
}

func (f *fakeTerminal) Flush() error {
	f.flushes++
	f.frames = append(f.frames, f.out.String())
	f.out.Reset()
	return nil
}

func (f *fakeTerminal) ReadKey() (*tcell.EventKey, error) {
	if len(f.keys) == 0 {
		return nil, io.EOF
	}
	ev := f.keys[0]
	f.keys = f.keys[1:]
	return ev, nil
}

func ctrl(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModCtrl) }
func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func char(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func newRunner(lines ...string) *Runner {
	return New(&fakeTerminal{}, editor.New(buffer.New(lines...)))
}

func TestHandleKeyEvent_Quit(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		ctrl(tcell.KeyCtrlQ),
		ctrl(tcell.KeyCtrlC),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl),
	} {
		r := newRunner("abc")
		if !r.handleKeyEvent(ev) {
			t.Fatalf("expected %s to signal quit", ev.Name())
		}
	}
}

func TestHandleKeyEvent_RemapQuit(t *testing.T) {
	kb, err := config.ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse keybinding: %v", err)
	}
	r := newRunner("abc")
	r.Keymap[config.CmdQuit] = []config.Keybinding{kb}

	if r.handleKeyEvent(ctrl(tcell.KeyCtrlQ)) {
		t.Fatalf("Ctrl+Q should not quit after remap")
	}
	if !r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)) {
		t.Fatalf("Ctrl+X should quit after remap")
	}
}

func TestHandleKeyEvent_Movement(t *testing.T) {
	r := newRunner("hello", "hi")
	steps := []struct {
		ev   *tcell.EventKey
		want cursor.Cursor
	}{
		{ctrl(tcell.KeyCtrlF), cursor.Cursor{Row: 0, Col: 1}},
		{ctrl(tcell.KeyCtrlF), cursor.Cursor{Row: 0, Col: 2}},
		{ctrl(tcell.KeyCtrlF), cursor.Cursor{Row: 0, Col: 3}},
		{ctrl(tcell.KeyCtrlN), cursor.Cursor{Row: 1, Col: 2}},
		{ctrl(tcell.KeyCtrlN), cursor.Cursor{Row: 1, Col: 2}},
		{ctrl(tcell.KeyCtrlB), cursor.Cursor{Row: 1, Col: 1}},
		{ctrl(tcell.KeyCtrlP), cursor.Cursor{Row: 0, Col: 1}},
		{ctrl(tcell.KeyCtrlP), cursor.Cursor{Row: 0, Col: 1}},
		{ctrl(tcell.KeyCtrlB), cursor.Cursor{Row: 0, Col: 0}},
		{ctrl(tcell.KeyCtrlB), cursor.Cursor{Row: 0, Col: 0}},
	}
	for i, s := range steps {
		if r.handleKeyEvent(s.ev) {
			t.Fatalf("step %d: unexpected quit", i)
		}
		if r.Editor.Cursor != s.want {
			t.Fatalf("step %d (%s): cursor %+v, want %+v", i, s.ev.Name(), r.Editor.Cursor, s.want)
		}
	}
}

func TestHandleKeyEvent_EnterSplitsLine(t *testing.T) {
	r := newRunner("ab", "cd")
	r.Editor.Cursor = cursor.Cursor{Row: 0, Col: 2}
	r.handleKeyEvent(key(tcell.KeyEnter))
	if diff := cmp.Diff([]string{"ab", "", "cd"}, r.Editor.Buffer.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if r.Editor.Cursor != (cursor.Cursor{Row: 1, Col: 0}) {
		t.Fatalf("expected cursor (1,0), got %+v", r.Editor.Cursor)
	}
}

func TestHandleKeyEvent_BackspaceFiveTimes(t *testing.T) {
	r := newRunner("hello")
	r.Editor.Cursor = cursor.Cursor{Row: 0, Col: 5}
	for i := 0; i < 5; i++ {
		r.handleKeyEvent(key(tcell.KeyBackspace2))
	}
	if diff := cmp.Diff([]string{""}, r.Editor.Buffer.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if r.Editor.Cursor != (cursor.Cursor{}) {
		t.Fatalf("expected cursor (0,0), got %+v", r.Editor.Cursor)
	}
	// one more is a no-op
	r.handleKeyEvent(key(tcell.KeyBackspace))
	if r.Editor.Buffer.String() != "" || r.Editor.Cursor != (cursor.Cursor{}) {
		t.Fatalf("expected no-op at column 0")
	}
}

func TestHandleKeyEvent_DownOnSingleLine(t *testing.T) {
	r := newRunner("a")
	r.Editor.Cursor = cursor.Cursor{Row: 0, Col: 1}
	r.handleKeyEvent(ctrl(tcell.KeyCtrlN))
	if r.Editor.Cursor != (cursor.Cursor{Row: 0, Col: 1}) {
		t.Fatalf("expected cursor (0,1), got %+v", r.Editor.Cursor)
	}
}

func TestHandleKeyEvent_TypingInserts(t *testing.T) {
	r := newRunner("")
	for _, ch := range "hé 界" {
		r.handleKeyEvent(char(ch))
	}
	if got := r.Editor.Buffer.String(); got != "hé 界" {
		t.Fatalf("expected 'hé 界', got %q", got)
	}
	if r.Editor.Cursor != (cursor.Cursor{Row: 0, Col: 4}) {
		t.Fatalf("expected cursor (0,4), got %+v", r.Editor.Cursor)
	}
}

func TestHandleKeyEvent_IgnoresOtherKeys(t *testing.T) {
	r := newRunner("abc")
	r.Editor.Cursor = cursor.Cursor{Row: 0, Col: 1}
	before := r.Editor
	for _, ev := range []*tcell.EventKey{
		key(tcell.KeyUp),
		key(tcell.KeyDelete),
		key(tcell.KeyTab),
		key(tcell.KeyEsc),
		ctrl(tcell.KeyCtrlA),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt),
		tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModCtrl),
	} {
		if r.handleKeyEvent(ev) {
			t.Fatalf("%s should not quit", ev.Name())
		}
	}
	if !r.Editor.Buffer.Equal(before.Buffer) || r.Editor.Cursor != before.Cursor {
		t.Fatalf("expected no change, got %q at %+v", r.Editor.Buffer.Lines(), r.Editor.Cursor)
	}
}

func TestHandleKeyEvent_DropsReplacementRune(t *testing.T) {
	r := newRunner("ab")
	r.handleKeyEvent(char(utf8.RuneError))
	if r.Editor.Buffer.String() != "ab" || r.Editor.Cursor != (cursor.Cursor{}) {
		t.Fatalf("expected undecodable input to be ignored, got %q at %+v", r.Editor.Buffer.String(), r.Editor.Cursor)
	}
}

func TestApply_LogsWhetherBufferChanged(t *testing.T) {
	var logBuf bytes.Buffer
	r := newRunner("ab")
	r.Logger = logs.New(&logBuf, "debug")

	r.handleKeyEvent(ctrl(tcell.KeyCtrlF))
	r.handleKeyEvent(char('x'))

	var recs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logBuf.String()), "\n") {
		rec := map[string]any{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		recs = append(recs, rec)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 action records, got %d: %s", len(recs), logBuf.String())
	}
	if recs[0]["name"] != config.CmdRight || recs[0]["changed"] != false {
		t.Fatalf("move should not change the buffer: %v", recs[0])
	}
	if recs[1]["name"] != "insert" || recs[1]["changed"] != true {
		t.Fatalf("insert should change the buffer: %v", recs[1])
	}
}

func TestRun_RendersThenQuits(t *testing.T) {
	ft := &fakeTerminal{keys: []*tcell.EventKey{char('x'), ctrl(tcell.KeyCtrlQ)}}
	r := New(ft, editor.New(buffer.New("ab", "cd")))
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.State != StateTerminated {
		t.Fatalf("expected terminated state, got %v", r.State)
	}
	want := []string{
		"<clear><move 0,0>ab\r\ncd\r\n<move 0,0>",
		"<clear><move 0,0>xab\r\ncd\r\n<move 0,1>",
	}
	if diff := cmp.Diff(want, ft.frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InputErrorIsFatal(t *testing.T) {
	ft := &fakeTerminal{keys: []*tcell.EventKey{char('a')}}
	r := New(ft, editor.New(buffer.New("")))
	err := r.Run()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected wrapped EOF, got %v", err)
	}
	if r.State != StateRunning {
		t.Fatalf("read failure must not reach the terminated state, got %v", r.State)
	}
	if ft.flushes != 2 {
		t.Fatalf("expected 2 rendered frames, got %d", ft.flushes)
	}
}

func TestRun_NilKeymapAndLogger(t *testing.T) {
	ft := &fakeTerminal{keys: []*tcell.EventKey{ctrl(tcell.KeyCtrlC)}}
	r := &Runner{Term: ft, Editor: editor.New(buffer.Buffer{})}
	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.State != StateTerminated {
		t.Fatalf("expected terminated, got %v", r.State)
	}
}
