package trigger

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Spec is a parsed hotkey binding.
type Spec struct {
	raw  string
	Mods []hotkey.Modifier
	Key  hotkey.Key
}

// String returns the binding in its config notation.
func (s Spec) String() string { return s.raw }

var namedKeys = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"return": hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"f1":     hotkey.KeyF1,
	"f2":     hotkey.KeyF2,
	"f3":     hotkey.KeyF3,
	"f4":     hotkey.KeyF4,
	"f5":     hotkey.KeyF5,
	"f6":     hotkey.KeyF6,
	"f7":     hotkey.KeyF7,
	"f8":     hotkey.KeyF8,
	"f9":     hotkey.KeyF9,
	"f10":    hotkey.KeyF10,
	"f11":    hotkey.KeyF11,
	"f12":    hotkey.KeyF12,
	"0":      hotkey.Key0,
	"1":      hotkey.Key1,
	"2":      hotkey.Key2,
	"3":      hotkey.Key3,
	"4":      hotkey.Key4,
	"5":      hotkey.Key5,
	"6":      hotkey.Key6,
	"7":      hotkey.Key7,
	"8":      hotkey.Key8,
	"9":      hotkey.Key9,
	"a":      hotkey.KeyA,
	"b":      hotkey.KeyB,
	"c":      hotkey.KeyC,
	"d":      hotkey.KeyD,
	"e":      hotkey.KeyE,
	"f":      hotkey.KeyF,
	"g":      hotkey.KeyG,
	"h":      hotkey.KeyH,
	"i":      hotkey.KeyI,
	"j":      hotkey.KeyJ,
	"k":      hotkey.KeyK,
	"l":      hotkey.KeyL,
	"m":      hotkey.KeyM,
	"n":      hotkey.KeyN,
	"o":      hotkey.KeyO,
	"p":      hotkey.KeyP,
	"q":      hotkey.KeyQ,
	"r":      hotkey.KeyR,
	"s":      hotkey.KeyS,
	"t":      hotkey.KeyT,
	"u":      hotkey.KeyU,
	"v":      hotkey.KeyV,
	"w":      hotkey.KeyW,
	"x":      hotkey.KeyX,
	"y":      hotkey.KeyY,
	"z":      hotkey.KeyZ,
}

// ParseSpec parses a binding such as "ctrl+alt+d": zero or more modifiers
// (ctrl, shift, alt, super) followed by exactly one key.
func ParseSpec(raw string) (Spec, error) {
	spec := Spec{raw: raw}
	parts := strings.Split(raw, "+")
	haveKey := false
	for _, part := range parts {
		p := strings.ToLower(strings.TrimSpace(part))
		switch p {
		case "":
			return Spec{}, fmt.Errorf("trigger: empty element in hotkey %q", raw)
		case "ctrl", "control":
			spec.Mods = append(spec.Mods, hotkey.ModCtrl)
		case "shift":
			spec.Mods = append(spec.Mods, hotkey.ModShift)
		case "alt":
			spec.Mods = append(spec.Mods, hotkey.Mod1)
		case "super", "cmd", "meta", "win":
			spec.Mods = append(spec.Mods, hotkey.Mod4)
		default:
			key, ok := namedKeys[p]
			if !ok {
				return Spec{}, fmt.Errorf("trigger: unknown key %q in hotkey %q", p, raw)
			}
			if haveKey {
				return Spec{}, fmt.Errorf("trigger: hotkey %q has more than one key", raw)
			}
			spec.Key = key
			haveKey = true
		}
	}
	if !haveKey {
		return Spec{}, fmt.Errorf("trigger: hotkey %q has no key", raw)
	}
	return spec, nil
}
