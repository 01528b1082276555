package action

// Action represents input actions that can be performed in the generator
type Action int

const (
	// Camera controls
	CameraForward Action = iota
	CameraBackward
	CameraLeft
	CameraRight
	CameraZoomIn
	CameraZoomOut
	CameraStop

	// Generator features
	TerrainRegenerate
	OverlayToggle
	PauseToggle
	Snapshot
	Quit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by how input should be delivered
type Category int

const (
	// CategoryCamera actions fire on every key press, including key repeat
	CategoryCamera Category = iota
	// CategoryUI actions are debounced
	CategoryUI
	// CategoryDebug actions are debounced and only change diagnostics
	CategoryDebug
)

// Info describes an action
type Info struct {
	Category    Category
	Description string
}

var infos = map[Action]Info{
	CameraForward:         {CategoryCamera, "Move camera forward"},
	CameraBackward:        {CategoryCamera, "Move camera backward"},
	CameraLeft:            {CategoryCamera, "Move camera left"},
	CameraRight:           {CategoryCamera, "Move camera right"},
	CameraZoomIn:          {CategoryCamera, "Zoom in"},
	CameraZoomOut:         {CategoryCamera, "Zoom out"},
	CameraStop:            {CategoryCamera, "Stop camera"},
	TerrainRegenerate:     {CategoryUI, "Regenerate terrain with a new seed"},
	OverlayToggle:         {CategoryUI, "Toggle overlay"},
	PauseToggle:           {CategoryUI, "Pause/resume simulation"},
	Snapshot:              {CategoryUI, "Save PNG snapshot"},
	Quit:                  {CategoryUI, "Quit"},
	DebugLogLevelIncrease: {CategoryDebug, "Increase log verbosity"},
	DebugLogLevelDecrease: {CategoryDebug, "Decrease log verbosity"},
}

// GetInfo returns the description of an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Category: CategoryUI, Description: "Unknown action"}
}

// Debounced reports whether repeated presses of the action are filtered
func (a Action) Debounced() bool {
	return GetInfo(a).Category != CategoryCamera
}

func (a Action) String() string {
	return GetInfo(a).Description
}
