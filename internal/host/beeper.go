package host

import (
	"encoding/binary"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 48000
	toneHz     = 440
	amplitude  = 3000
)

// beeper drives the sound timer tone: a queued square wave on an SDL audio
// device, paused while the timer is zero. A nil beeper (muted or no audio
// device) is a valid no-op receiver.
type beeper struct {
	device sdl.AudioDeviceID
	wave   []byte
	on     bool
}

func newBeeper() (*beeper, error) {
	want := sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  2048,
	}
	var have sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, &want, &have, 0)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	return &beeper{
		device: device,
		wave:   squareWave(sampleRate / 10), // 100ms of tone per refill
	}, nil
}

// update transitions the device between playing and paused and keeps the
// queue filled while the tone is on.
func (b *beeper) update(on bool) {
	if b == nil {
		return
	}

	switch {
	case on && !b.on:
		sdl.PauseAudioDevice(b.device, false)
		b.on = true
	case !on && b.on:
		sdl.PauseAudioDevice(b.device, true)
		sdl.ClearQueuedAudio(b.device)
		b.on = false
	}

	if b.on && sdl.GetQueuedAudioSize(b.device) < uint32(len(b.wave)) {
		_ = sdl.QueueAudio(b.device, b.wave)
	}
}

func (b *beeper) close() {
	sdl.CloseAudioDevice(b.device)
}

// squareWave renders n samples of a signed 16-bit little-endian square wave.
func squareWave(n int) []byte {
	buf := make([]byte, n*2)
	halfPeriod := sampleRate / (2 * toneHz)
	for i := 0; i < n; i++ {
		sample := int16(amplitude)
		if i/halfPeriod%2 == 1 {
			sample = -amplitude
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}
	return buf
}
