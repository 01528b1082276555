package backend

import "github.com/valerio/go-hexgen/hexgen/video"

// Surface is a Platform backed by an in-memory frame buffer. Backends embed
// it and supply the present step.
type Surface struct {
	frame     *video.FrameBuffer
	present   func(*video.FrameBuffer) error
	presented int
}

// NewSurface creates a surface of the given size. present may be nil.
func NewSurface(width, height int, present func(*video.FrameBuffer) error) *Surface {
	return &Surface{
		frame:   video.NewFrameBuffer(width, height),
		present: present,
	}
}

func (s *Surface) FrameBuffer() *video.FrameBuffer {
	return s.frame
}

func (s *Surface) Size() (int, int) {
	return s.frame.Width(), s.frame.Height()
}

func (s *Surface) Present() error {
	s.presented++
	if s.present == nil {
		return nil
	}
	return s.present(s.frame)
}

// Presented returns how many times Present was called.
func (s *Surface) Presented() int {
	return s.presented
}

var _ Platform = (*Surface)(nil)
