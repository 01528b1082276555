//go:build sdl2

package sdl2

import "github.com/veandco/go-sdl2/sdl"

var sdlKeyNameMap = map[sdl.Keycode]string{
	sdl.K_RETURN:    "Enter",
	sdl.K_TAB:       "Tab",
	sdl.K_SPACE:     "Space",
	sdl.K_UP:        "Up",
	sdl.K_DOWN:      "Down",
	sdl.K_LEFT:      "Left",
	sdl.K_RIGHT:     "Right",
	sdl.K_ESCAPE:    "Escape",
	sdl.K_BACKSPACE: "Backspace",
	sdl.K_KP_PLUS:   "+",
	sdl.K_KP_MINUS:  "-",
	sdl.K_F1:        "F1",
	sdl.K_F2:        "F2",
	sdl.K_F3:        "F3",
	sdl.K_F4:        "F4",
	sdl.K_F5:        "F5",
	sdl.K_F9:        "F9",
	sdl.K_F10:       "F10",
	sdl.K_F11:       "F11",
	sdl.K_F12:       "F12",
}

// keyName maps an SDL keycode to the names used by the input key map.
// Printable keycodes are their own character.
func keyName(sym sdl.Keycode) (string, bool) {
	if name, ok := sdlKeyNameMap[sym]; ok {
		return name, true
	}
	if sym > ' ' && sym < 0x7f {
		return string(rune(sym)), true
	}
	return "", false
}
