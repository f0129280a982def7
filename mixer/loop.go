// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"io"
	"runtime"

	"github.com/opforge/optape/utils"
)

// run is the mixing loop. It owns the slot cursors for its lifetime and
// communicates with the rest of the mixer only through atomics and the
// stop channel. It exits on the stop signal, on a sink failure, or
// naturally when every track is exhausted for a full cycle.
func (m *Mixer) run(stop, done chan struct{}) {
	defer close(done)

	// Pin the loop to its OS thread so the platform scheduler can give
	// it audio-grade timing.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	frames := m.cycleFrames
	sinkChans := m.out.Channels()

	var (
		raw [MaxTracks][]byte
		chs [MaxTracks]int
	)
	for i, s := range m.slots {
		if s.armed() {
			chs[i] = s.channels
			raw[i] = make([]byte, frames*int(s.stride()))
		}
	}
	out := make([]float32, frames*sinkChans)

	for {
		select {
		case <-stop:
			return
		default:
		}

		// Snapshot mute flags once per cycle boundary. A toggle lands
		// on the next cycle, never mid-cycle.
		var active [MaxTracks]bool
		activeCount := 0
		exhausted := true

		for i, s := range m.slots {
			if !s.armed() || s.failed {
				continue
			}

			n, err := s.c.ReadAt(raw[i], s.cursor)
			if err != nil && err != io.EOF {
				// Degrade this track to silence for the rest of the
				// session; audio continuity beats surfacing the fault.
				m.log.Warn("tape track read failed, silencing track",
					"track", i, "error", err)
				s.failed = true
				n = 0
			}
			for j := n; j < len(raw[i]); j++ {
				raw[i][j] = 0
			}
			if n > 0 {
				exhausted = false
			}
			s.cursor += int64(len(raw[i]))

			if !s.failed && !m.muted[i].Load() {
				active[i] = true
				activeCount++
			}
		}

		if exhausted {
			// Natural end of stream: transport returns to Stopped and
			// the position rewinds.
			m.frame.Store(0)
			m.state.CompareAndSwap(int32(Playing), int32(Stopped))
			return
		}

		m.mix(raw, chs, active, activeCount, out, frames, sinkChans)

		if _, err := m.out.WriteSamples(out); err != nil {
			m.log.Warn("output sink rejected cycle, stopping", "error", err)
			m.frame.Store(0)
			m.state.CompareAndSwap(int32(Playing), int32(Stopped))
			return
		}
		m.frame.Add(int64(frames))
	}
}

// mix sums one cycle of active tracks into out, normalizing by the
// active-track count and hard-clamping as a final bound. Dividing by
// max(1, n) keeps an all-muted cycle a plain silent one instead of a
// division by zero.
func (m *Mixer) mix(raw [MaxTracks][]byte, chs [MaxTracks]int, active [MaxTracks]bool, activeCount int, out []float32, frames, sinkChans int) {
	div := float32(activeCount)
	if div < 1 {
		div = 1
	}

	for f := 0; f < frames; f++ {
		for sc := 0; sc < sinkChans; sc++ {
			var sum float32
			for i := range raw {
				if !active[i] {
					continue
				}
				sum += trackSample(raw[i], chs[i], f, sc, sinkChans)
			}

			v := sum / div
			// The divide keeps simultaneous loud tracks under control;
			// the clamp is the unconditional safety bound.
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			out[f*sinkChans+sc] = v
		}
	}
}

// trackSample picks one track's contribution to output channel sc at
// frame f. Mono tracks feed every output channel; stereo tracks feed
// the matching channel on a multi-channel sink and fold to their
// average on a mono one.
func trackSample(buf []byte, ch, f, sc, sinkChans int) float32 {
	if ch == 1 {
		return sampleAt(buf, f)
	}
	if sinkChans == 1 {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += sampleAt(buf, f*ch+c)
		}
		return sum / float32(ch)
	}

	c := sc
	if c >= ch {
		c = ch - 1
	}
	return sampleAt(buf, f*ch+c)
}

// sampleAt decodes the i-th big-endian 16-bit sample of a track buffer.
func sampleAt(buf []byte, i int) float32 {
	return utils.Int16ToFloat32(int16(binary.BigEndian.Uint16(buf[i*2 : i*2+2])))
}
