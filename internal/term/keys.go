package term

import (
	"bufio"

	"github.com/gdamore/tcell/v2"
)

const esc = 0x1b

// DecodeKey reads exactly one key from r. Control bytes become tcell control
// keys (Ctrl+N arrives as tcell.KeyCtrlN with ModCtrl), DEL becomes
// tcell.KeyBackspace2 and UTF-8 text becomes tcell.KeyRune events.
// Escape sequences are only parsed from bytes already buffered, so a lone
// Esc press does not block waiting for a sequence that never comes.
func DecodeKey(r *bufio.Reader) (*tcell.EventKey, error) {
	ch, _, err := r.ReadRune()
	if err != nil {
		return nil, err
	}
	switch {
	case ch == esc:
		return decodeEscape(r)
	case ch == 0x7f:
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), nil
	case ch < ' ':
		k := tcell.Key(ch)
		switch k {
		case tcell.KeyEnter, tcell.KeyTab, tcell.KeyBackspace:
			return tcell.NewEventKey(k, 0, tcell.ModNone), nil
		}
		return tcell.NewEventKey(k, 0, tcell.ModCtrl), nil
	}
	return tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone), nil
}

var csiFinal = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
}

var csiTilde = map[string]tcell.Key{
	"1": tcell.KeyHome,
	"2": tcell.KeyInsert,
	"3": tcell.KeyDelete,
	"4": tcell.KeyEnd,
	"5": tcell.KeyPgUp,
	"6": tcell.KeyPgDn,
	"7": tcell.KeyHome,
	"8": tcell.KeyEnd,
}

func decodeEscape(r *bufio.Reader) (*tcell.EventKey, error) {
	if r.Buffered() == 0 {
		return tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), nil
	}
	intro, _, err := r.ReadRune()
	if err != nil {
		return nil, err
	}
	if intro != '[' && intro != 'O' {
		// Alt+<key> is sent as ESC followed by the key.
		if intro < ' ' || intro == 0x7f || intro == esc {
			return tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), nil
		}
		return tcell.NewEventKey(tcell.KeyRune, intro, tcell.ModAlt), nil
	}
	var params []byte
	for r.Buffered() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b >= 0x30 && b <= 0x3f {
			params = append(params, b)
			continue
		}
		if b == '~' {
			if k, ok := csiTilde[string(params)]; ok {
				return tcell.NewEventKey(k, 0, tcell.ModNone), nil
			}
		} else if k, ok := csiFinal[b]; ok {
			return tcell.NewEventKey(k, 0, tcell.ModNone), nil
		}
		break
	}
	// Unknown or truncated sequence.
	return tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), nil
}
