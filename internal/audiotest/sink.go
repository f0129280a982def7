// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"
)

// CaptureSink records every sample written to it. It implements
// sink.Sink (without importing it, to avoid cycles) and is safe for
// concurrent use so mixing-loop tests can inspect it live.
type CaptureSink struct {
	rate     int
	channels int

	mu      sync.Mutex
	samples []float32
	flushes int
	writes  int
	failAt  int // write index that starts failing; -1 disables
}

// NewCaptureSink returns a capture sink advertising the given format.
func NewCaptureSink(rate, channels int) *CaptureSink {
	return &CaptureSink{rate: rate, channels: channels, failAt: -1}
}

// FailAfter makes every write at or past the n-th call return an error.
func (s *CaptureSink) FailAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAt = n
}

func (s *CaptureSink) SampleRate() int { return s.rate }
func (s *CaptureSink) Channels() int   { return s.channels }

func (s *CaptureSink) WriteSamples(p []float32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAt >= 0 && s.writes >= s.failAt {
		return 0, errors.New("audiotest: sink write failed")
	}
	s.writes++
	s.samples = append(s.samples, p...)
	return len(p), nil
}

func (s *CaptureSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *CaptureSink) Close() error { return nil }

// Samples returns a copy of everything written so far.
func (s *CaptureSink) Samples() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float32, len(s.samples))
	copy(out, s.samples)
	return out
}

// Len returns the number of samples written so far.
func (s *CaptureSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

// Flushes returns how many times Flush was called.
func (s *CaptureSink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Reset drops captured samples, keeping counters.
func (s *CaptureSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = s.samples[:0]
}
