package output

import (
	"fmt"
	"strings"

	"github.com/micmonay/keybd_event"
)

// chord is a parsed paste key combination.
type chord struct {
	ctrl, shift, alt, super bool
	key                     int
}

var chordKeys = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
	"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
	"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
	"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
	"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
	"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
	"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,
	"insert": keybd_event.VK_INSERT,
}

// parseChord parses a chord spec like "ctrl+v" or "ctrl+shift+insert".
func parseChord(spec string) (chord, error) {
	var c chord
	haveKey := false
	for _, part := range strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+") {
		switch part {
		case "ctrl", "control":
			c.ctrl = true
		case "shift":
			c.shift = true
		case "alt":
			c.alt = true
		case "super", "cmd", "meta":
			c.super = true
		default:
			code, ok := chordKeys[part]
			if !ok {
				return chord{}, fmt.Errorf("unknown key %q in chord %q", part, spec)
			}
			if haveKey {
				return chord{}, fmt.Errorf("chord %q has more than one non-modifier key", spec)
			}
			c.key = code
			haveKey = true
		}
	}
	if !haveKey {
		return chord{}, fmt.Errorf("chord %q has no non-modifier key", spec)
	}
	return c, nil
}

// send presses the chord through the uinput-backed keyboard. Fails on
// systems where the virtual keyboard device cannot be opened; the caller
// falls back to external tools.
func (c chord) send() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return fmt.Errorf("output: virtual keyboard unavailable: %w", err)
	}
	kb.SetKeys(c.key)
	kb.HasCTRL(c.ctrl)
	kb.HasSHIFT(c.shift)
	kb.HasALT(c.alt)
	kb.HasSuper(c.super)
	if err := kb.Launching(); err != nil {
		return fmt.Errorf("output: paste chord failed: %w", err)
	}
	return nil
}

// external renders the chord for wtype and xdotool.
func (c chord) external() (wtypeArgs, xdotoolKey []string) {
	var mods []string
	if c.ctrl {
		mods = append(mods, "ctrl")
	}
	if c.shift {
		mods = append(mods, "shift")
	}
	if c.alt {
		mods = append(mods, "alt")
	}
	if c.super {
		mods = append(mods, "logo")
	}
	keyName := keyNameFor(c.key)

	for _, m := range mods {
		wtypeArgs = append(wtypeArgs, "-M", m)
	}
	wtypeArgs = append(wtypeArgs, "-k", keyName)
	for i := len(mods) - 1; i >= 0; i-- {
		wtypeArgs = append(wtypeArgs, "-m", mods[i])
	}

	xdoMods := make([]string, len(mods))
	copy(xdoMods, mods)
	for i, m := range xdoMods {
		if m == "logo" {
			xdoMods[i] = "super"
		}
	}
	xdotoolKey = []string{"key", strings.Join(append(xdoMods, keyName), "+")}
	return wtypeArgs, xdotoolKey
}

func keyNameFor(code int) string {
	for name, c := range chordKeys {
		if c == code {
			return name
		}
	}
	return "v"
}
