package chip8

import "time"

const (
	// TimerFrequency is the rate at which the delay and sound timers count
	// down.
	TimerFrequency = 60

	// TimerInterval is the time between two timer ticks.
	TimerInterval = time.Second / TimerFrequency

	// maxCatchUpTicks limits the ticks applied at once after the host loop
	// stalled, for example while the process was suspended.
	maxCatchUpTicks = TimerFrequency
)

// TimerClock counts down the machine timers at 60Hz of wall clock time,
// independent of how many instructions are executed in between.
type TimerClock struct {
	interval time.Duration
	last     time.Time
}

// NewTimerClock returns a timer clock ticking at TimerFrequency.
func NewTimerClock() *TimerClock {
	return &TimerClock{
		interval: TimerInterval,
	}
}

// Advance ticks the timers of the machine once for every interval boundary
// passed since the last call and returns the number of ticks applied. The
// first call only starts the clock.
func (c *TimerClock) Advance(m *Machine, now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	elapsed := now.Sub(c.last)
	if elapsed < c.interval {
		return 0
	}

	ticks := int(elapsed / c.interval)
	if ticks > maxCatchUpTicks {
		ticks = maxCatchUpTicks
		c.last = now
	} else {
		c.last = c.last.Add(time.Duration(ticks) * c.interval)
	}

	for range ticks {
		m.TickTimers()
	}
	return ticks
}

// Reset stops the clock, the next Advance call restarts it.
func (c *TimerClock) Reset() {
	c.last = time.Time{}
}
