// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateQuirks returns the quirks selected by the preset, with the
// individually enabled quirks applied on top.
func CreateQuirks(opts options.QuirkFlags) (chip8.Quirks, error) {
	quirks, err := chip8.QuirksFromPreset(opts.Preset)
	if err != nil {
		return chip8.Quirks{}, fmt.Errorf("creating quirks: %w", err)
	}

	if opts.ShiftUsesVY {
		quirks.ShiftUsesVY = true
	}
	if opts.AddIndexVF {
		quirks.AddIndexSetsVF = true
	}
	if opts.LoadStoreInc {
		quirks.LoadStoreIncrementsI = true
	}
	if opts.VerticalWrap {
		quirks.VerticalWrap = true
	}
	return quirks, nil
}

// MachineOptions returns the options to create a machine for the program
// options.
func MachineOptions(logger *log.Logger, opts options.Program, tracer chip8.TraceFunc) ([]chip8.Option, error) {
	quirks, err := CreateQuirks(opts.QuirkFlags)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using quirks",
		log.String("preset", opts.Preset),
		log.Stringer("quirks", quirks))

	machineOpts := []chip8.Option{chip8.WithQuirks(quirks)}
	if opts.SeedSet {
		machineOpts = append(machineOpts, chip8.WithSeed(opts.SeedValue))
	}
	if opts.Debug && tracer != nil {
		machineOpts = append(machineOpts, chip8.WithTracer(tracer))
	}
	return machineOpts, nil
}
