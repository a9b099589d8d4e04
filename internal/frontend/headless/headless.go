// Package headless implements a frontend without any display or input
// device, used for scripted runs and tests.
package headless

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Headless implements the frontend.Frontend interface.
type Headless struct {
	logger *log.Logger
	frame  chip8.Framebuffer
	frames uint64
}

// New returns a new headless frontend.
func New(logger *log.Logger) *Headless {
	return &Headless{
		logger: logger,
	}
}

// Poll implements the frontend.Frontend interface. It never returns key
// events and never requests to quit.
func (h *Headless) Poll() ([]chip8.KeyEvent, bool, error) {
	return nil, false, nil
}

// Present implements the frontend.Frontend interface by keeping the
// last presented frame.
func (h *Headless) Present(fb chip8.Framebuffer) error {
	h.frame = fb
	h.frames++
	return nil
}

// Close implements the frontend.Frontend interface and logs the last
// presented frame.
func (h *Headless) Close() error {
	h.logger.Debug("Final display",
		log.Int("frames", int(h.frames)),
		log.Int("lit", h.frame.Lit()),
	)
	h.logger.Debug("\n" + h.frame.String())
	return nil
}

// Frame returns the last presented frame.
func (h *Headless) Frame() chip8.Framebuffer {
	return h.frame
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() uint64 {
	return h.frames
}
