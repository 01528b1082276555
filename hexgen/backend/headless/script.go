package headless

import (
	"fmt"
	"strings"

	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// Script maps a frame index (0 based, counted in redraw requests) to the
// events delivered in that frame's batch, before its redraw.
type Script map[int][]event.Event

// Step is the serializable form of a scripted event.
type Step struct {
	Frame  int    `yaml:"frame"`
	Event  string `yaml:"event"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Key    string `yaml:"key,omitempty"`
}

// Add appends events to a frame and returns the script for chaining.
func (s Script) Add(frame int, events ...event.Event) Script {
	s[frame] = append(s[frame], events...)
	return s
}

// NewScript builds a Script from steps. Recognized events are close, occlude,
// reveal, resize, focus, blur, press, release and key (press then release).
func NewScript(steps []Step) (Script, error) {
	script := Script{}
	for i, step := range steps {
		if step.Frame < 0 {
			return nil, fmt.Errorf("script step %d: negative frame %d", i, step.Frame)
		}

		name := strings.ToLower(step.Event)
		var events []event.Event
		switch name {
		case "close":
			events = append(events, event.Close())
		case "occlude":
			events = append(events, event.Occlusion(true))
		case "reveal":
			events = append(events, event.Occlusion(false))
		case "resize":
			if step.Width <= 0 || step.Height <= 0 {
				return nil, fmt.Errorf("script step %d: resize needs a positive size, got %dx%d", i, step.Width, step.Height)
			}
			events = append(events, event.Resize(step.Width, step.Height))
		case "focus":
			events = append(events, event.Focus(true))
		case "blur":
			events = append(events, event.Focus(false))
		case "press", "release", "key":
			if step.Key == "" {
				return nil, fmt.Errorf("script step %d: %s needs a key", i, step.Event)
			}
			if name != "release" {
				events = append(events, event.KeyPress(step.Key))
			}
			if name != "press" {
				events = append(events, event.KeyRelease(step.Key))
			}
		default:
			return nil, fmt.Errorf("script step %d: unknown event %q", i, step.Event)
		}

		script.Add(step.Frame, events...)
	}
	return script, nil
}
