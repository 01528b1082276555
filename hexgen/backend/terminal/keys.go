package terminal

import "github.com/gdamore/tcell/v2"

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyTab:       "Tab",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyEscape:    "Escape",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyF1:        "F1",
	tcell.KeyF2:        "F2",
	tcell.KeyF3:        "F3",
	tcell.KeyF4:        "F4",
	tcell.KeyF5:        "F5",
	tcell.KeyF9:        "F9",
	tcell.KeyF10:       "F10",
	tcell.KeyF11:       "F11",
	tcell.KeyF12:       "F12",
}

// keyName returns the backend independent name of a key event. Runes map to
// themselves, except space which is "Space".
func keyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "Space", true
		}
		return string(ev.Rune()), true
	}
	name, ok := tcellKeyNameMap[ev.Key()]
	return name, ok
}
