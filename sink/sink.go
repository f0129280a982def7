// SPDX-License-Identifier: EPL-2.0

// Package sink defines the seam between the audio engine and the
// platform output device. The mixer and the pad player only ever talk
// to a Sink; real devices live behind adapters such as sink/otosink.
package sink

// Sink accepts normalized float32 samples in [-1, 1] for playback.
// WriteSamples may block to pace the producer against the device; that
// back-pressure is what clocks the mixing loop.
type Sink interface {
	// SampleRate of the stream the sink expects, in Hz.
	SampleRate() int
	// Channels the sink expects per frame (1=mono, 2=stereo).
	Channels() int
	// WriteSamples queues interleaved samples for playback.
	WriteSamples(p []float32) (n int, err error)
	// Flush drops any queued but unplayed audio.
	Flush() error
	// Close releases the device.
	Close() error
}

// NewNull returns a Sink that discards everything written to it,
// advertising the given format. Useful for headless operation and
// benchmarks.
func NewNull(sampleRate, channels int) Sink {
	return &nullSink{rate: sampleRate, channels: channels}
}

type nullSink struct {
	rate     int
	channels int
}

func (s *nullSink) SampleRate() int { return s.rate }
func (s *nullSink) Channels() int   { return s.channels }

func (s *nullSink) WriteSamples(p []float32) (int, error) {
	return len(p), nil
}

func (s *nullSink) Flush() error { return nil }
func (s *nullSink) Close() error { return nil }
