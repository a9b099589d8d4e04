//go:build !statsview

package statsview

import "github.com/retroenv/retrogolib/log"

// Launch logs that the stats server is not built in.
func Launch(logger *log.Logger) {
	logger.Warn("Stats server is not available, build with the statsview tag to enable it")
}

// Available returns true if the stats server is built in.
func Available() bool {
	return false
}
