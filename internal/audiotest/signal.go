// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// SignalSource generates deterministic PCM for pipeline tests: a
// waveform function sampled over a fixed number of frames. It
// implements audio.Source without importing it, to avoid cycles.
type SignalSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     func(frame, channel int) float32
}

// NewSignalSource returns a source producing frames frames of the given
// waveform.
func NewSignalSource(rate, channels, frames int, wave func(frame, channel int) float32) *SignalSource {
	return &SignalSource{
		rate:     rate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

// NewConstantSource generates frames of a fixed value on every channel.
func NewConstantSource(rate, channels, frames int, value float32) *SignalSource {
	return NewSignalSource(rate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewSineSource generates a sine tone at the given frequency.
func NewSineSource(rate, channels, frames int, freq float64) *SignalSource {
	return NewSignalSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

func (s *SignalSource) SampleRate() int { return s.rate }
func (s *SignalSource) Channels() int   { return s.channels }
func (s *SignalSource) Close() error    { return nil }

func (s *SignalSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if left := s.frames - s.pos; frames > left {
		frames = left
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < s.channels; c++ {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += frames

	if s.pos >= s.frames {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}
