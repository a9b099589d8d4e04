// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	retrocli "github.com/retroenv/retrogolib/cli"
)

const programName = "chip8vm"

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	var opts options.Program
	flags := newFlagSet(&opts)

	remaining, err := flags.Parse(os.Args[1:])
	if err != nil {
		var missingArgs *retrocli.MissingArgsError
		if opts.Version && errors.As(err, &missingArgs) {
			return opts, nil
		}
		if errors.As(err, &missingArgs) {
			return opts, &UsageError{flags: flags, msg: err.Error()}
		}
		// the flag parser already printed the error and the usage
		return opts, &UsageError{msg: err.Error(), shown: true}
	}
	if opts.Version {
		return opts, nil
	}

	args := []string{opts.ROM}
	if opts.Trace != "" {
		args = append(args, opts.Trace)
	}
	args = append(args, remaining...)
	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	if opts.Trace != "" {
		opts.Debug = true
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// newFlagSet registers the option structs of the program, the flags are
// read from their struct tags.
func newFlagSet(opts *options.Program) *retrocli.FlagSet {
	flags := retrocli.NewFlagSet(programName)
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Quirk flags", &opts.QuirkFlags)
	flags.AddPositional(&opts.Positional)
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	msg   string
	shown bool
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the error message and the usage information, unless
// they have been printed while parsing.
func (e *UsageError) ShowUsage() {
	if e.shown {
		return
	}
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.ShowUsage()
	}
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *retrocli.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}

	if len(args) > 2 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("Unexpected argument %s", args[2]),
		}
	}
	if len(args) == 2 {
		switch strings.ToLower(args[1]) {
		case "debug", "verbose":
		default:
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Unexpected argument %s, only 'debug' or 'verbose' is supported after the ROM file", args[1]),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	validFrontends := []string{options.FrontendAuto, options.FrontendHeadless, options.FrontendSDL, options.FrontendTerminal}
	valid := false
	for _, frontend := range validFrontends {
		if opts.Frontend == frontend {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	opts.Preset = strings.ToLower(opts.Preset)
	if _, err := chip8.QuirksFromPreset(opts.Preset); err != nil {
		return err
	}

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d: must be positive", opts.Speed)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	}

	if opts.Seed != "" {
		seed, err := strconv.ParseInt(opts.Seed, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %s: %w", opts.Seed, err)
		}
		opts.SeedValue = seed
		opts.SeedSet = true
	}
	return nil
}
