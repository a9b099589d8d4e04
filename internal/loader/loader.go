// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{
		maxSize: chip8.MaxROMSize,
	}
}

// Load reads a raw CHIP-8 program. At most one byte more than fits into
// program memory is read, larger files are rejected with a load fault
// without reading them completely.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if len(data) > l.maxSize {
		return nil, &chip8.Fault{
			Kind: chip8.LoadFault,
			Err:  fmt.Errorf("%w: file %s is larger than %d bytes", chip8.ErrROMTooLarge, path, l.maxSize),
		}
	}
	return data, nil
}
