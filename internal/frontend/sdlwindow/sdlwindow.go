// Package sdlwindow implements a frontend that shows the display in an SDL
// window and reads the keyboard through SDL events.
package sdlwindow

import (
	"fmt"
	"runtime"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// DefaultScale is the size of a display pixel in window pixels.
	DefaultScale = 8

	windowTitle = "chip8vm"
	pixelDepth  = 4
)

func init() {
	// SDL calls have to be made from the main thread.
	runtime.LockOSThread()
}

// Window implements the frontend.Frontend interface.
type Window struct {
	logger *log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

// New initializes SDL with video and audio support and opens a window
// showing the display enlarged by scale.
func New(logger *log.Logger, scale int) (*Window, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	w := &Window{
		logger: logger,
		pixels: make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*pixelDepth),
	}

	var err error
	w.window, err = sdl.CreateWindow(windowTitle,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(chip8.DisplayWidth*scale), int32(chip8.DisplayHeight*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	w.texture, err = w.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("creating texture: %w", err)
	}

	logger.Debug("SDL window created", log.Int("scale", scale))
	return w, nil
}

// Poll implements the frontend.Frontend interface.
func (w *Window) Poll() ([]chip8.KeyEvent, bool, error) {
	var events []chip8.KeyEvent

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return events, true, nil

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			pressed := ev.Type == sdl.KEYDOWN
			if pressed && ev.Keysym.Sym == sdl.K_ESCAPE {
				return events, true, nil
			}

			key, ok := frontend.MapKey(rune(ev.Keysym.Sym))
			if !ok {
				continue
			}
			events = append(events, chip8.KeyEvent{Key: key, Pressed: pressed})
		}
	}

	return events, false, nil
}

// Present implements the frontend.Frontend interface.
func (w *Window) Present(fb chip8.Framebuffer) error {
	fillPixels(w.pixels, &fb)

	if err := w.texture.Update(nil, w.pixels, chip8.DisplayWidth*pixelDepth); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// fillPixels converts the display to opaque ABGR pixels, white for lit
// and black for unlit pixels.
func fillPixels(pixels []byte, fb *chip8.Framebuffer) {
	for i, lit := range fb {
		var c byte
		if lit != 0 {
			c = 0xff
		}
		p := pixels[i*pixelDepth : i*pixelDepth+pixelDepth]
		p[0], p[1], p[2], p[3] = c, c, c, 0xff
	}
}

// Close implements the frontend.Frontend interface.
func (w *Window) Close() error {
	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.window != nil {
		_ = w.window.Destroy()
	}
	sdl.Quit()
	return nil
}
