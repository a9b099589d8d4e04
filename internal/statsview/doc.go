// Package statsview offers a local HTTP server showing runtime statistics
// of the emulator process. The server is only built when the statsview
// build tag is set:
//
//	go build -tags statsview
//
// After launch the graphs are available at localhost:18066/debug/statsview
// and the pprof endpoints at localhost:18066/debug/pprof/.
package statsview

const (
	// Address is the address the stats server listens on.
	Address = "localhost:18066"

	url = "/debug/statsview"
)
