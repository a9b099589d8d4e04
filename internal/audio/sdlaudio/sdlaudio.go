// Package sdlaudio plays the beep of the machine through an SDL audio
// device.
package sdlaudio

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/veandco/go-sdl2/sdl"
)

// maxQueuedFrames limits the audio queued ahead of playback to keep the
// latency of turning the beep off low.
const maxQueuedFrames = 3

// Player implements the audio.Sink interface.
type Player struct {
	device sdl.AudioDeviceID
	wave   *audio.SquareWave
	frame  []byte
	active bool
}

// New opens the default SDL audio device. SDL must have been initialized
// with audio support. The host loop runs at loopRate iterations per second.
func New(loopRate int) (*Player, error) {
	frame := make([]byte, audio.SamplesPerFrame(loopRate))

	desired := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  uint16(len(frame)),
	}
	var obtained sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, desired, &obtained, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	sdl.PauseAudioDevice(device, false)

	return &Player{
		device: device,
		wave:   audio.NewSquareWave(audio.SampleRate, audio.ToneFrequency),
		frame:  frame,
	}, nil
}

// SetActive implements the audio.Sink interface.
func (p *Player) SetActive(active bool) {
	if !active {
		if p.active {
			sdl.ClearQueuedAudio(p.device)
		}
		p.active = false
		return
	}
	p.active = true

	if sdl.GetQueuedAudioSize(p.device) >= uint32(maxQueuedFrames*len(p.frame)) {
		return
	}
	p.wave.Fill(p.frame)
	_ = sdl.QueueAudio(p.device, p.frame)
}

// Close implements the audio.Sink interface.
func (p *Player) Close() error {
	sdl.CloseAudioDevice(p.device)
	return nil
}
