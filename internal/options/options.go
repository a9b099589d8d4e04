// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendAuto     = "auto"
	FrontendHeadless = "headless"
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
)

// DefaultSpeed is the default number of instructions executed per second.
const DefaultSpeed = 700

// Positional contains positional arguments.
type Positional struct {
	ROM   string `arg:"positional" usage:"CHIP-8 ROM file to run" required:"true"`
	Trace string `arg:"positional" usage:"optional 'debug' or 'verbose' to trace every instruction"`
}

// Parameters contains file path options.
type Parameters struct {
	WAV string `flag:"wav" usage:"record the beep to a WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend  string `flag:"frontend" usage:"frontend: terminal, sdl, headless (default: auto-detect)" default:"auto"`
	Speed     int    `flag:"speed" usage:"instructions executed per second" default:"700"`
	Scale     int    `flag:"scale" usage:"SDL window scale factor" default:"8"`
	Seed      string `flag:"seed" usage:"seed of the random number generator (default: time based)"`
	Cycles    uint64 `flag:"cycles" usage:"stop after executing the given number of instructions (0: unlimited)"`
	Disasm    bool   `flag:"disasm" usage:"print a disassembly listing of the ROM and exit"`
	StatsView bool   `flag:"statsview" usage:"run the runtime statistics server (statsview builds only)"`
	Debug     bool   `flag:"debug" usage:"enable debug logging and instruction tracing"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
	Version   bool   `flag:"version" usage:"print version information and exit"`
}

// QuirkFlags contains the interpreter compatibility options. Individual
// quirk flags are applied on top of the preset.
type QuirkFlags struct {
	Preset       string `flag:"quirks" usage:"quirks preset: modern, cosmac, amiga" default:"modern"`
	ShiftUsesVY  bool   `flag:"shift-vy" usage:"8xy6/8xyE shift VY into VX"`
	AddIndexVF   bool   `flag:"addi-vf" usage:"Fx1E sets VF when I overflows past $FFF"`
	LoadStoreInc bool   `flag:"loadstore-inc" usage:"Fx55/Fx65 increment I"`
	VerticalWrap bool   `flag:"vwrap" usage:"sprites wrap around the bottom edge of the display"`
}

// Program options of the interpreter.
type Program struct {
	Positional
	Parameters
	Flags
	QuirkFlags

	SeedSet   bool  // whether -seed was passed
	SeedValue int64 // parsed value of -seed
}
