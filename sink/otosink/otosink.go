// SPDX-License-Identifier: EPL-2.0

// Package otosink adapts the oto playback library to the engine's Sink
// interface, giving the mixer and pad player a real output device.
package otosink

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"github.com/opforge/optape/sink"
	"github.com/opforge/optape/utils"
)

const bytesPerSample = 2 // 16-bit PCM device format

// Output plays samples on the platform's default audio device.
//
// oto players pull from an io.Reader, while the engine pushes samples;
// an in-process pipe bridges the two. The pipe's back-pressure paces
// the producer, so the mixing loop runs at device speed.
type Output struct {
	ctx      *oto.Context
	rate     int
	channels int

	mu     sync.Mutex
	pw     *io.PipeWriter
	player oto.Player
	buf    []byte
	closed bool
}

// New opens the default audio device at the given format. It blocks
// until the device is ready.
func New(sampleRate, channels int) (*Output, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channels, bytesPerSample)
	if err != nil {
		return nil, fmt.Errorf("otosink: %w", err)
	}
	<-ready

	o := &Output{ctx: ctx, rate: sampleRate, channels: channels}
	o.start()
	return o, nil
}

func (o *Output) start() {
	pr, pw := io.Pipe()
	o.pw = pw
	o.player = o.ctx.NewPlayer(pr)
	o.player.Play()
}

func (o *Output) SampleRate() int { return o.rate }
func (o *Output) Channels() int   { return o.channels }

// WriteSamples converts the normalized samples to 16-bit little-endian
// PCM and queues them on the device. Blocks while the device buffer is
// full.
func (o *Output) WriteSamples(p []float32) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return 0, fmt.Errorf("otosink: %w", io.ErrClosedPipe)
	}
	if err := o.player.Err(); err != nil {
		return 0, fmt.Errorf("otosink: %w", err)
	}

	if len(o.buf) < len(p)*bytesPerSample {
		o.buf = make([]byte, len(p)*bytesPerSample)
	}
	for i, s := range p {
		binary.LittleEndian.PutUint16(o.buf[i*2:i*2+2], uint16(utils.Float32ToInt16(s)))
	}

	if _, err := o.pw.Write(o.buf[:len(p)*bytesPerSample]); err != nil {
		return 0, fmt.Errorf("otosink: %w", err)
	}
	return len(p), nil
}

// Flush drops queued but unplayed audio and resumes playback from the
// next write.
func (o *Output) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.player.Reset()
	o.player.Play()
	return nil
}

// Close stops playback and releases the device player.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	o.pw.Close()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("otosink: %w", err)
	}
	return nil
}

var _ sink.Sink = (*Output)(nil)
