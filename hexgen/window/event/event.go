package event

import "fmt"

// Type represents the kind of window event delivered by a backend
type Type int

const (
	CloseRequested  Type = iota // Window close button, Ctrl-C, SIGTERM
	Resized                     // Drawable area changed size
	Occluded                    // Window became fully hidden or visible again
	RedrawRequested             // A new frame is due
	KeyPressed                  // Key went down
	KeyReleased                 // Key went up (not all backends report this)
	FocusChanged                // Window gained or lost input focus
)

var typeNames = map[Type]string{
	CloseRequested:  "CloseRequested",
	Resized:         "Resized",
	Occluded:        "Occluded",
	RedrawRequested: "RedrawRequested",
	KeyPressed:      "KeyPressed",
	KeyReleased:     "KeyReleased",
	FocusChanged:    "FocusChanged",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is a single window event. Only the fields relevant to Type are set.
type Event struct {
	Type     Type
	Width    int    // Resized
	Height   int    // Resized
	Occluded bool   // Occluded
	Focused  bool   // FocusChanged
	Key      string // KeyPressed, KeyReleased; names match input.DefaultKeyMap
}

func Close() Event {
	return Event{Type: CloseRequested}
}

func Redraw() Event {
	return Event{Type: RedrawRequested}
}

func Resize(width, height int) Event {
	return Event{Type: Resized, Width: width, Height: height}
}

func Occlusion(occluded bool) Event {
	return Event{Type: Occluded, Occluded: occluded}
}

func Focus(focused bool) Event {
	return Event{Type: FocusChanged, Focused: focused}
}

func KeyPress(key string) Event {
	return Event{Type: KeyPressed, Key: key}
}

func KeyRelease(key string) Event {
	return Event{Type: KeyReleased, Key: key}
}

func (e Event) String() string {
	switch e.Type {
	case Resized:
		return fmt.Sprintf("%s(%dx%d)", e.Type, e.Width, e.Height)
	case Occluded:
		return fmt.Sprintf("%s(%t)", e.Type, e.Occluded)
	case FocusChanged:
		return fmt.Sprintf("%s(%t)", e.Type, e.Focused)
	case KeyPressed, KeyReleased:
		return fmt.Sprintf("%s(%q)", e.Type, e.Key)
	default:
		return e.Type.String()
	}
}
