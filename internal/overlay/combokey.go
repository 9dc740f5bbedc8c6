package overlay

import (
	"fmt"
	"strings"
)

// Combo is a parsed toggle shortcut: the exact modifier set that must be
// held, plus an optional literal key.
type Combo struct {
	Control bool
	Meta    bool
	Shift   bool
	Alt     bool
	Key     string // empty for modifier-only combos
}

// Disabled reports whether a configured combo value turns the keyboard
// shortcut off entirely.
func Disabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "none", "off":
		return true
	}
	return false
}

// DefaultCombo is the platform toggle default: the meta key where it is
// the native command modifier, control everywhere else. Chosen to avoid
// colliding with stock browser shortcuts.
func DefaultCombo(goos string) string {
	if goos == "darwin" {
		return "meta-shift"
	}
	return "control-shift"
}

// ParseCombo parses the combo grammar: one or more dash-separated modifier
// names optionally followed by a single literal key. Recognized modifiers
// are control/ctrl, meta/cmd/command, shift, and alt/option.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "-")
	for i, part := range parts {
		switch part {
		case "control", "ctrl":
			c.Control = true
		case "meta", "cmd", "command":
			c.Meta = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		default:
			if part == "" {
				return Combo{}, fmt.Errorf("empty part in combo %q", s)
			}
			if i != len(parts)-1 {
				return Combo{}, fmt.Errorf("unknown modifier %q in combo %q", part, s)
			}
			c.Key = part
		}
	}
	if !c.Control && !c.Meta && !c.Shift && !c.Alt {
		return Combo{}, fmt.Errorf("combo %q needs at least one modifier", s)
	}
	return c, nil
}

// Matches reports whether a key event satisfies the combo: exactly the
// configured modifiers, no extras, and the literal key when one is set.
// Modifier-only combos fire on the final modifier press itself, so holding
// the set is enough.
func (c Combo) Matches(ev KeyEvent) bool {
	if ev.Control != c.Control || ev.Meta != c.Meta || ev.Shift != c.Shift || ev.Alt != c.Alt {
		return false
	}
	key := strings.ToLower(ev.Key)
	if c.Key != "" {
		return key == c.Key
	}
	return isModifierKey(key)
}

func isModifierKey(k string) bool {
	switch k {
	case "control", "ctrl", "meta", "cmd", "command", "shift", "alt", "option":
		return true
	}
	return false
}
