package pipeline

import (
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}
