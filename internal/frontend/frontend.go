// Package frontend defines the interface between the host loop and the
// devices that show the display and deliver key input.
package frontend

import (
	"github.com/retroenv/chip8vm/internal/chip8"
)

// Frontend presents the display of the machine and delivers key events.
type Frontend interface {
	// Poll returns the key events that occurred since the last call and
	// whether the user requested to quit. It must not block.
	Poll() (events []chip8.KeyEvent, quit bool, err error)
	// Present shows a snapshot of the display.
	Present(fb chip8.Framebuffer) error
	// Close releases all resources of the frontend.
	Close() error
}

// keyLayout maps the conventional 4x4 block of a QWERTY keyboard to the
// hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keyLayout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// MapKey returns the keypad key for a character of the host keyboard.
// Upper case letters map like their lower case version.
func MapKey(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := keyLayout[r]
	return key, ok
}
