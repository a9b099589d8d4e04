// Package detector handles frontend detection.
package detector

import (
	"os"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector selects the frontend from options or the environment.
type Detector struct {
	logger     *log.Logger
	isTerminal func(fd int) bool
	stdin      *os.File
	stdout     *os.File
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		isTerminal: term.IsTerminal,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
}

// Detect returns the frontend to use. An explicitly requested frontend is
// returned as is, otherwise the terminal frontend is selected when both
// standard input and output are terminals and the headless frontend if not.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" && opts.Frontend != options.FrontendAuto {
		return opts.Frontend
	}

	frontend := options.FrontendHeadless
	if d.isTerminal(int(d.stdin.Fd())) && d.isTerminal(int(d.stdout.Fd())) {
		frontend = options.FrontendTerminal
	}

	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", frontend))
	return frontend
}
