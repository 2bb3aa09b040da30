package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Command names used as keymap keys.
const (
	CmdDown      = "down"
	CmdUp        = "up"
	CmdRight     = "right"
	CmdLeft      = "left"
	CmdBackspace = "backspace"
	CmdNewline   = "newline"
	CmdQuit      = "quit"
)

// Commands lists every bindable command in dispatch order.
var Commands = []string{CmdQuit, CmdDown, CmdUp, CmdRight, CmdLeft, CmdBackspace, CmdNewline}

// Terminal backends.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Log configures the event log. An empty File disables logging.
type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Config holds user configuration values.
type Config struct {
	Backend string
	Log     Log
	Keymap  map[string][]Keybinding
}

// fileConfig is the on-disk shape of Config.
type fileConfig struct {
	Backend string                 `yaml:"backend"`
	Log     Log                    `yaml:"log"`
	Keymap  map[string]bindingList `yaml:"keymap"`
}

// bindingList accepts either a single binding or a list of them.
type bindingList []string

func (b *bindingList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*b = bindingList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*b = list
		return nil
	}
	return fmt.Errorf("line %d: keybinding must be a string or a list", value.Line)
}

// Default returns a Config with default key mappings.
func Default() *Config {
	return &Config{Backend: BackendANSI, Log: Log{Level: "info"}, Keymap: DefaultKeymap()}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string][]Keybinding {
	return map[string][]Keybinding{
		CmdDown:      {mustParse("Ctrl+N")},
		CmdUp:        {mustParse("Ctrl+P")},
		CmdRight:     {mustParse("Ctrl+F")},
		CmdLeft:      {mustParse("Ctrl+B")},
		CmdBackspace: {mustParse("Backspace"), {Key: tcell.KeyBackspace}},
		CmdNewline:   {mustParse("Enter")},
		CmdQuit:      {mustParse("Ctrl+Q"), mustParse("Ctrl+C")},
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned. Commands listed in the file replace their
// default bindings; the rest keep them. A listed command may not be left
// unbound, otherwise quit could become unreachable.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	switch fc.Backend {
	case "":
	case BackendANSI, BackendTcell:
		cfg.Backend = fc.Backend
	default:
		return nil, errors.New("unknown backend: " + fc.Backend)
	}
	if fc.Log.File != "" {
		cfg.Log.File = fc.Log.File
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
	for cmd, specs := range fc.Keymap {
		if _, ok := cfg.Keymap[cmd]; !ok {
			return nil, errors.New("unknown command in keymap: " + cmd)
		}
		if len(specs) == 0 {
			return nil, errors.New("keymap: " + cmd + " needs at least one binding")
		}
		bindings := make([]Keybinding, 0, len(specs))
		for _, s := range specs {
			kb, err := ParseKeybinding(s)
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, kb)
		}
		cfg.Keymap[cmd] = bindings
	}
	return cfg, nil
}

// LoadDefault attempts to read ~/.rawedit/config.yaml.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(home, ".rawedit", "config.yaml")
	return Load(path)
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"backspace": tcell.KeyBackspace2,
	"esc":       tcell.KeyEsc,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
}

// ParseKeybinding converts a textual key description like "Ctrl+S" or
// "Enter" into a Keybinding. Supported forms are Ctrl+<letter> and the
// named keys Enter, Backspace, Esc, Up, Down, Left and Right.
func ParseKeybinding(s string) (Keybinding, error) {
	s = strings.TrimSpace(s)
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return Keybinding{Key: k}, nil
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// Matches returns true if the binding matches the provided event.
// Ctrl+<letter> bindings match both the rune form (KeyRune with ModCtrl)
// and the control key form (tcell.KeyCtrlA..KeyCtrlZ) that terminals send.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		if ev.Key() == tcell.KeyRune {
			return ev.Rune() == k.Rune && ev.Modifiers()&tcell.ModCtrl != 0
		}
		return ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a')
	}
	if k.Key == tcell.KeyRune {
		return ev.Key() == tcell.KeyRune && ev.Rune() == k.Rune && ev.Modifiers() == k.Mod
	}
	return ev.Key() == k.Key
}

// Lookup returns the first command in Commands with a binding matching ev.
func Lookup(keymap map[string][]Keybinding, ev *tcell.EventKey) (string, bool) {
	for _, cmd := range Commands {
		for _, kb := range keymap[cmd] {
			if kb.Matches(ev) {
				return cmd, true
			}
		}
	}
	return "", false
}
