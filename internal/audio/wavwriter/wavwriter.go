// Package wavwriter records the beep of the machine to a WAV file. The
// unsigned 8 bit samples are buffered in memory as raw bytes and written to
// disk when the writer is closed.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/retrogolib/log"
	"github.com/youpy/go-wav"
)

const bitsPerSample = 8

// WavWriter implements the audio.Sink interface.
type WavWriter struct {
	logger   *log.Logger
	filename string

	wave  *audio.SquareWave
	frame []byte
	data  []byte // recorded samples, one byte each
}

// New returns a writer that records one frame of samples for every call to
// SetActive, the host loop runs at loopRate iterations per second.
func New(logger *log.Logger, filename string, loopRate int) (*WavWriter, error) {
	if filename == "" {
		return nil, fmt.Errorf("wavwriter: missing file name")
	}
	if loopRate <= 0 {
		return nil, fmt.Errorf("wavwriter: invalid loop rate %d", loopRate)
	}

	return &WavWriter{
		logger:   logger,
		filename: filename,
		wave:     audio.NewSquareWave(audio.SampleRate, audio.ToneFrequency),
		frame:    make([]byte, audio.SamplesPerFrame(loopRate)),
	}, nil
}

// SetActive implements the audio.Sink interface.
func (w *WavWriter) SetActive(active bool) {
	if active {
		w.wave.Fill(w.frame)
	} else {
		audio.FillSilence(w.frame)
	}
	w.data = append(w.data, w.frame...)
}

// Samples returns the number of recorded samples.
func (w *WavWriter) Samples() int {
	return len(w.data)
}

// Close implements the audio.Sink interface and writes the WAV file.
func (w *WavWriter) Close() (rerr error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: creating file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: closing file: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(w.data)), 1, audio.SampleRate, bitsPerSample)
	if err := writeSamples(enc, w.data, len(w.frame)); err != nil {
		return fmt.Errorf("wavwriter: writing samples: %w", err)
	}

	w.logger.Info("Wrote audio recording",
		log.String("file", w.filename),
		log.Int("samples", len(w.data)))
	return nil
}

// writeSamples converts the raw bytes to samples in chunks of chunkSize so
// that only one chunk of converted samples is held at a time.
func writeSamples(enc *wav.Writer, data []byte, chunkSize int) error {
	buf := make([]wav.Sample, chunkSize)
	for len(data) > 0 {
		n := min(len(data), chunkSize)
		for i, b := range data[:n] {
			buf[i].Values[0] = int(b)
		}
		if err := enc.WriteSamples(buf[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
