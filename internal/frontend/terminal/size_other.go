//go:build !unix

package terminal

import "golang.org/x/term"

// windowSize returns the size of the terminal in characters.
func windowSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}
