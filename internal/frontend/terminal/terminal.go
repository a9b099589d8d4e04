// Package terminal implements a frontend that renders the display with
// Unicode half blocks and reads keys from a raw mode terminal.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// KeyHold is the time a key stays pressed after its character was
	// read. Terminals only report key presses, so keys are released after
	// this time unless the character repeats.
	KeyHold = 150 * time.Millisecond

	keyEscape = 0x1b
	keyCtrlC  = 0x03

	// two display rows are combined into one text row
	textRows = chip8.DisplayHeight / 2

	escClearScreen = "\x1b[2J"
	escCursorHome  = "\x1b[H"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
)

// Terminal implements the frontend.Frontend interface.
type Terminal struct {
	logger *log.Logger
	out    io.Writer
	now    func() time.Time

	fd      int
	restore *term.State

	input chan []byte
	errs  chan error
	done  chan struct{}

	release [chip8.KeyCount]time.Time // zero if the key is not pressed

	last  chip8.Framebuffer
	drawn bool
	buf   bytes.Buffer
}

// New switches the terminal connected to stdin into raw mode and returns
// a frontend that uses stdin and stdout.
func New(logger *log.Logger) (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting terminal raw mode: %w", err)
	}

	t := newTerminal(logger, os.Stdin, os.Stdout, time.Now)
	t.fd = fd
	t.restore = state

	cols, rows, err := windowSize(int(os.Stdout.Fd()))
	switch {
	case err != nil:
		logger.Warn("Reading terminal size failed", log.Err(err))
	case cols < chip8.DisplayWidth || rows < textRows:
		logger.Warn("Terminal is too small to show the full display",
			log.Int("columns", cols),
			log.Int("rows", rows),
		)
	}

	return t, nil
}

func newTerminal(logger *log.Logger, in io.Reader, out io.Writer, now func() time.Time) *Terminal {
	t := &Terminal{
		logger: logger,
		out:    out,
		now:    now,
		fd:     -1,
		input:  make(chan []byte, 16),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go t.readInput(in)
	return t
}

// readInput forwards everything read from in to the host loop until the
// reader fails or the frontend is closed.
func (t *Terminal) readInput(in io.Reader) {
	for {
		buf := make([]byte, 64)
		n, err := in.Read(buf)
		if n > 0 {
			select {
			case t.input <- buf[:n]:
			case <-t.done:
				return
			}
		}
		if err != nil {
			select {
			case t.errs <- err:
			case <-t.done:
			}
			return
		}
	}
}

// Poll implements the frontend.Frontend interface.
func (t *Terminal) Poll() ([]chip8.KeyEvent, bool, error) {
	now := t.now()
	var events []chip8.KeyEvent

loop:
	for {
		select {
		case data := <-t.input:
			var quit bool
			events, quit = t.handleInput(events, data, now)
			if quit {
				return events, true, nil
			}

		case err := <-t.errs:
			if !errors.Is(err, io.EOF) {
				return events, false, fmt.Errorf("reading terminal input: %w", err)
			}
			t.logger.Debug("Terminal input closed")

		default:
			break loop
		}
	}

	return t.releaseKeys(events, now), false, nil
}

// handleInput converts the characters read from the terminal to key
// events. It returns true if the user requested to quit.
func (t *Terminal) handleInput(events []chip8.KeyEvent, data []byte, now time.Time) ([]chip8.KeyEvent, bool) {
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch c {
		case keyCtrlC:
			return events, true

		case keyEscape:
			if i+1 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				i = skipEscapeSequence(data, i+2)
				continue
			}
			return events, true
		}

		key, ok := frontend.MapKey(rune(c))
		if !ok {
			continue
		}
		if t.release[key].IsZero() {
			events = append(events, chip8.KeyEvent{Key: key, Pressed: true})
		}
		t.release[key] = now.Add(KeyHold)
	}
	return events, false
}

// skipEscapeSequence returns the index of the final byte of a control
// sequence starting at index i, as sent for cursor and function keys.
func skipEscapeSequence(data []byte, i int) int {
	for ; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return i
		}
	}
	return len(data) - 1
}

// releaseKeys releases all keys whose hold time has passed.
func (t *Terminal) releaseKeys(events []chip8.KeyEvent, now time.Time) []chip8.KeyEvent {
	for key := range t.release {
		deadline := t.release[key]
		if deadline.IsZero() || now.Before(deadline) {
			continue
		}
		t.release[key] = time.Time{}
		events = append(events, chip8.KeyEvent{Key: uint8(key), Pressed: false})
	}
	return events
}

// Present implements the frontend.Frontend interface. The terminal is
// only redrawn if the display changed since the last call.
func (t *Terminal) Present(fb chip8.Framebuffer) error {
	if t.drawn && fb == t.last {
		return nil
	}

	t.buf.Reset()
	if !t.drawn {
		t.buf.WriteString(escClearScreen)
		t.buf.WriteString(escHideCursor)
	}
	t.buf.WriteString(escCursorHome)
	render(&t.buf, &fb)

	if _, err := t.out.Write(t.buf.Bytes()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	t.last = fb
	t.drawn = true
	return nil
}

// render writes the display as text, combining two display rows into
// one text row.
func render(buf *bytes.Buffer, fb *chip8.Framebuffer) {
	for row := range textRows {
		for x := range chip8.DisplayWidth {
			top := fb.Pixel(x, 2*row)
			bottom := fb.Pixel(x, 2*row+1)
			switch {
			case top && bottom:
				buf.WriteRune('█')
			case top:
				buf.WriteRune('▀')
			case bottom:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteString("\r\n")
	}
}

// Close implements the frontend.Frontend interface and restores the
// terminal state.
func (t *Terminal) Close() error {
	close(t.done)

	var errs []error
	if t.drawn {
		if _, err := io.WriteString(t.out, escShowCursor); err != nil {
			errs = append(errs, fmt.Errorf("showing cursor: %w", err))
		}
	}
	if t.restore != nil {
		if err := term.Restore(t.fd, t.restore); err != nil {
			errs = append(errs, fmt.Errorf("restoring terminal: %w", err))
		}
	}
	return errors.Join(errs...)
}
