package input

import "github.com/valerio/go-hexgen/hexgen/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends report key names; the generator maps them to actions here.
var DefaultKeyMap = map[string]action.Action{
	// Camera controls
	"w":     action.CameraForward,
	"s":     action.CameraBackward,
	"a":     action.CameraLeft,
	"d":     action.CameraRight,
	"Up":    action.CameraForward,
	"Down":  action.CameraBackward,
	"Left":  action.CameraLeft,
	"Right": action.CameraRight,
	"e":     action.CameraZoomIn,
	"q":     action.CameraZoomOut,
	"Space": action.CameraStop,

	// Generator controls
	"g":      action.TerrainRegenerate,
	"Enter":  action.TerrainRegenerate,
	"Tab":    action.OverlayToggle,
	"p":      action.PauseToggle,
	"F12":    action.Snapshot,
	"Escape": action.Quit,
	"x":      action.Quit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
