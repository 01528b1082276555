//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-hexgen/hexgen/backend"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

// ErrUnavailable is returned by every operation of the stub backend.
var ErrUnavailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.BackendConfig) error {
	return ErrUnavailable
}

func (s *Backend) PollEvents() ([]event.Event, error) {
	return nil, ErrUnavailable
}

func (s *Backend) Platform() backend.Platform {
	return nil
}

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}

var _ backend.Backend = (*Backend)(nil)
