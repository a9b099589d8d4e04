//go:build unix

package terminal

import "golang.org/x/sys/unix"

// windowSize returns the size of the terminal in characters.
func windowSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
