// Package runner implements the host loop that drives a machine at a
// fixed instruction rate and connects it to a frontend and an audio sink.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// LoopRate is the number of host loop iterations per second.
const LoopRate = 60

// Result describes why the host loop stopped.
type Result int

// Loop results.
const (
	Cancelled  Result = iota + 1 // context was cancelled
	Quit                         // frontend requested to quit
	Halted                       // program counter ran past memory
	CycleLimit                   // configured instruction count executed
	Faulted                      // stopped with an error
)

func (r Result) String() string {
	switch r {
	case Cancelled:
		return "cancelled"
	case Quit:
		return "quit"
	case Halted:
		return "halted"
	case CycleLimit:
		return "cycle limit reached"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Runner owns the machine during execution. All machine state is only
// accessed from the goroutine calling Run.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Machine
	frontend frontend.Frontend
	sink     audio.Sink

	speed      int
	cycleLimit uint64
	now        func() time.Time
	newTicker  func(d time.Duration) (<-chan time.Time, func())

	timers *chip8.TimerClock
	budget float64
}

// Option configures a Runner.
type Option func(*Runner)

// WithSpeed sets the number of instructions executed per second.
func WithSpeed(speed int) Option {
	return func(r *Runner) {
		r.speed = speed
	}
}

// WithCycleLimit stops the loop after the machine executed the given
// number of instructions. 0 disables the limit.
func WithCycleLimit(cycles uint64) Option {
	return func(r *Runner) {
		r.cycleLimit = cycles
	}
}

// WithAudio sets the sink that receives the sound signal.
func WithAudio(sink audio.Sink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithClock sets the wall clock used for the 60Hz timers.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New returns a runner for the given machine and frontend.
func New(logger *log.Logger, machine *chip8.Machine, fe frontend.Frontend, opts ...Option) *Runner {
	r := &Runner{
		logger:    logger,
		machine:   machine,
		frontend:  fe,
		sink:      audio.Silent{},
		speed:     options.DefaultSpeed,
		now:       time.Now,
		newTicker: newTicker,
		timers:    chip8.NewTimerClock(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.speed <= 0 {
		r.speed = options.DefaultSpeed
	}
	return r
}

func newTicker(d time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(d)
	return ticker.C, ticker.Stop
}

// Run executes the loaded program until the context is cancelled, the
// frontend requests to quit, the program counter runs past the end of
// memory or the cycle limit is reached. Machine faults are returned as
// errors, all other reasons to stop return a nil error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	tick, stop := r.newTicker(time.Second / LoopRate)
	defer stop()

	r.logger.Debug("Starting host loop",
		log.Int("speed", r.speed),
		log.Int("loopRate", LoopRate),
	)

	for {
		if ctx.Err() != nil {
			return Cancelled, nil
		}

		result, done, err := r.iterate()
		if err != nil {
			return result, err
		}
		if done {
			r.logger.Debug("Host loop stopped",
				log.Stringer("result", result),
				log.Int("cycles", int(r.machine.Cycles)),
			)
			return result, nil
		}

		select {
		case <-ctx.Done():
			return Cancelled, nil
		case <-tick:
		}
	}
}

// iterate runs one host loop iteration. It returns true if the loop
// should stop.
func (r *Runner) iterate() (Result, bool, error) {
	events, quit, err := r.frontend.Poll()
	if err != nil {
		return Faulted, true, fmt.Errorf("polling frontend: %w", err)
	}
	for _, ev := range events {
		r.machine.HandleKey(ev)
	}
	if quit {
		return Quit, true, nil
	}

	result, stopped, err := r.execute()
	if err != nil {
		return result, true, err
	}

	r.timers.Advance(r.machine, r.now())
	r.sink.SetActive(r.machine.SoundActive())

	if err := r.frontend.Present(r.machine.Framebuffer()); err != nil {
		return Faulted, true, fmt.Errorf("presenting display: %w", err)
	}
	return result, stopped, nil
}

// execute runs the instructions of one loop iteration. Fractions of the
// per iteration budget carry over to the next iteration.
func (r *Runner) execute() (Result, bool, error) {
	r.budget += float64(r.speed) / LoopRate
	n := int(r.budget)
	r.budget -= float64(n)

	for range n {
		if r.machine.Mode() == chip8.AwaitingKey {
			break
		}
		if r.cycleLimit > 0 && r.machine.Cycles >= r.cycleLimit {
			return CycleLimit, true, nil
		}

		_, err := r.machine.Step()
		switch {
		case err == nil:
		case errors.Is(err, chip8.ErrHalted):
			return Halted, true, nil
		default:
			return Faulted, true, fmt.Errorf("executing instruction: %w", err)
		}

		if r.machine.Halted() {
			return Halted, true, nil
		}
	}

	if r.cycleLimit > 0 && r.machine.Cycles >= r.cycleLimit {
		return CycleLimit, true, nil
	}
	return 0, false, nil
}
