// Package audio contains the sinks that turn the boolean sound signal of the
// machine into sound.
package audio

import "errors"

const (
	// SampleRate is the sample rate of the generated tone.
	SampleRate = 44100

	// ToneFrequency is the frequency of the beep.
	ToneFrequency = 440

	// Silence is the value of an unsigned 8-bit sample without sound.
	Silence = 0x80

	amplitude = 0x20
)

// Sink receives the sound signal once per host loop iteration.
type Sink interface {
	// SetActive turns the beep on or off.
	SetActive(active bool)
	// Close releases the resources of the sink.
	Close() error
}

// Silent is a sink that discards the signal.
type Silent struct{}

// SetActive implements the Sink interface.
func (Silent) SetActive(bool) {}

// Close implements the Sink interface.
func (Silent) Close() error { return nil }

// multi forwards the signal to multiple sinks.
type multi []Sink

// Multi returns a sink that forwards the signal to all given sinks.
func Multi(sinks ...Sink) Sink {
	switch len(sinks) {
	case 0:
		return Silent{}
	case 1:
		return sinks[0]
	default:
		return multi(sinks)
	}
}

// SetActive implements the Sink interface.
func (m multi) SetActive(active bool) {
	for _, sink := range m {
		sink.SetActive(active)
	}
}

// Close implements the Sink interface.
func (m multi) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SquareWave generates unsigned 8-bit mono samples of a square wave tone.
// The phase is kept between calls so that consecutive buffers join without
// clicks.
type SquareWave struct {
	halfPeriod int
	position   int
}

// NewSquareWave returns a generator for a tone of the given frequency.
func NewSquareWave(sampleRate, frequency int) *SquareWave {
	halfPeriod := sampleRate / frequency / 2
	if halfPeriod < 1 {
		halfPeriod = 1
	}
	return &SquareWave{halfPeriod: halfPeriod}
}

// Fill writes the next len(buf) samples of the tone into buf.
func (s *SquareWave) Fill(buf []byte) {
	for i := range buf {
		if s.position < s.halfPeriod {
			buf[i] = Silence + amplitude
		} else {
			buf[i] = Silence - amplitude
		}
		s.position++
		if s.position == 2*s.halfPeriod {
			s.position = 0
		}
	}
}

// FillSilence writes silent samples into buf.
func FillSilence(buf []byte) {
	for i := range buf {
		buf[i] = Silence
	}
}

// SamplesPerFrame returns the number of samples covering one host loop
// iteration at the given loop rate.
func SamplesPerFrame(loopRate int) int {
	return SampleRate / loopRate
}
