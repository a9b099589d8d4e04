// Package pipeline orchestrates loading, configuring and running a ROM.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/audio/sdlaudio"
	"github.com/retroenv/chip8vm/internal/audio/wavwriter"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/sdlwindow"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/statsview"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of running a ROM.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	stdout   io.Writer
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		stdout:   os.Stdout,
	}
}

// Execute loads the ROM of the options and either prints its disassembly
// or runs it until the user quits, the context is cancelled or the program
// stops. A program running past the end of memory is a normal termination.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	program, err := p.loader.Load(opts.ROM)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		return p.disassemble(ctx, program)
	}

	p.printInfo(opts, program)
	if opts.StatsView {
		statsview.Launch(p.logger)
	}

	machine, err := p.createMachine(opts, program)
	if err != nil {
		return err
	}

	return p.run(ctx, opts, machine)
}

// createMachine creates a machine configured by the options with the
// program loaded.
func (p *Pipeline) createMachine(opts options.Program, program []byte) (*chip8.Machine, error) {
	machineOpts, err := config.MachineOptions(p.logger, opts, disasm.Tracer(p.logger))
	if err != nil {
		return nil, fmt.Errorf("configuring machine: %w", err)
	}

	machine := chip8.New(machineOpts...)
	if err := machine.LoadROM(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return machine, nil
}

// run executes the machine in the host loop of the selected frontend.
func (p *Pipeline) run(ctx context.Context, opts options.Program, machine *chip8.Machine) (rerr error) {
	name := p.detector.Detect(opts)
	fe, err := p.createFrontend(name, opts)
	if err != nil {
		return fmt.Errorf("creating %s frontend: %w", name, err)
	}
	defer func() {
		if err := fe.Close(); err != nil {
			rerr = errors.Join(rerr, fmt.Errorf("closing frontend: %w", err))
		}
	}()

	sink, err := p.createAudio(name, opts)
	if err != nil {
		return fmt.Errorf("creating audio: %w", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			rerr = errors.Join(rerr, fmt.Errorf("closing audio: %w", err))
		}
	}()

	r := runner.New(p.logger, machine, fe,
		runner.WithSpeed(opts.Speed),
		runner.WithCycleLimit(opts.Cycles),
		runner.WithAudio(sink),
	)

	result, err := r.Run(ctx)
	if err != nil {
		p.logger.Debug("Machine state", log.Stringer("machine", machine))
		return fmt.Errorf("running program: %w", err)
	}

	p.logger.Info("Program stopped",
		log.Stringer("reason", result),
		log.Int("cycles", int(machine.Cycles)),
	)
	return nil
}

// createFrontend creates the frontend of the given name.
func (p *Pipeline) createFrontend(name string, opts options.Program) (frontend.Frontend, error) {
	switch name {
	case options.FrontendHeadless:
		return headless.New(p.logger), nil
	case options.FrontendTerminal:
		return terminal.New(p.logger)
	case options.FrontendSDL:
		return sdlwindow.New(p.logger, opts.Scale)
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}

// createAudio creates the sinks for the sound signal. The SDL frontend
// plays the beep, a WAV file records it for every frontend.
func (p *Pipeline) createAudio(frontendName string, opts options.Program) (audio.Sink, error) {
	var sinks []audio.Sink

	if frontendName == options.FrontendSDL {
		player, err := sdlaudio.New(runner.LoopRate)
		if err != nil {
			p.logger.Warn("Audio output is not available", log.Err(err))
		} else {
			sinks = append(sinks, player)
		}
	}

	if opts.WAV != "" {
		writer, err := wavwriter.New(p.logger, opts.WAV, runner.LoopRate)
		if err != nil {
			_ = audio.Multi(sinks...).Close()
			return nil, fmt.Errorf("creating WAV writer: %w", err)
		}
		sinks = append(sinks, writer)
	}

	return audio.Multi(sinks...), nil
}

// disassemble writes the disassembly listing of the program to stdout.
func (p *Pipeline) disassemble(ctx context.Context, program []byte) error {
	dis, err := disasm.New(p.logger, program)
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	listing, err := dis.Process(ctx)
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if err := listing.Write(p.stdout); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// printInfo prints information about the ROM being run.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.ROM),
		log.Int("size", len(program)),
		log.Int("speed", opts.Speed),
	)
}
