// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opforge/optape/container"
	"github.com/opforge/optape/sink"
)

// MaxTracks is the number of track slots on the tape.
const MaxTracks = 4

// SampleRate is the rate the hardware records tape tracks at, in Hz.
const SampleRate = 44100

// bytesPerSample is the byte width of one 16-bit track sample.
const bytesPerSample = 2

// defaultCycleFrames is the mixing cycle length. 2048 frames is about
// 46ms at the tape rate, enough headroom that a disk read per track
// fits comfortably inside one cycle.
const defaultCycleFrames = 2048

// State is the mixer transport state.
type State int32

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "invalid"
}

// Status is a snapshot of the mixer for UI binding. It reflects the
// state as of the most recently completed cycle; callers must not
// assume sub-cycle granularity.
type Status struct {
	State    State
	Frame    int64
	Position time.Duration
	Armed    [MaxTracks]bool
	Muted    [MaxTracks]bool
}

// track is the read surface the mixing loop needs from an open tape
// track container.
type track interface {
	io.ReaderAt
	Close() error
}

// slot is one tape track: an open container positioned at its payload,
// or empty (nil track) and therefore silent. channels is the track's
// interleave width; frame strides derive from it.
type slot struct {
	c        track
	payload  int64
	channels int

	// cursor and failed are owned by the mixing loop while it runs;
	// transport methods touch them only after joining the loop.
	cursor int64
	failed bool
}

// stride is the byte width of one frame of this track.
func (s *slot) stride() int64 {
	return int64(bytesPerSample * s.channels)
}

func (s *slot) armed() bool {
	return s != nil && s.c != nil
}

// Mixer mixes up to four tape tracks into one output stream on a
// dedicated thread. Transport methods are safe to call from any
// goroutine; concurrent seeks are the caller's responsibility to
// serialize.
type Mixer struct {
	out         sink.Sink
	cycleFrames int
	log         *slog.Logger

	// mu serializes transport calls (prepare/play/pause/stop/seek).
	// The mixing loop never takes it.
	mu    sync.Mutex
	slots [MaxTracks]*slot
	stop  chan struct{}
	done  chan struct{}

	state atomic.Int32
	frame atomic.Int64
	muted [MaxTracks]atomic.Bool
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithCycleFrames overrides the mixing cycle length in frames.
func WithCycleFrames(frames int) Option {
	return func(m *Mixer) {
		if frames > 0 {
			m.cycleFrames = frames
		}
	}
}

// WithLogger sets the logger used for degraded-track reporting.
func WithLogger(log *slog.Logger) Option {
	return func(m *Mixer) {
		m.log = log
	}
}

// New creates a Mixer writing to out. A nil sink is allowed for
// prepare-only use; Play will refuse it.
func New(out sink.Sink, opts ...Option) *Mixer {
	m := &Mixer{
		out:         out,
		cycleFrames: defaultCycleFrames,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Prepare arms the tape. Each non-empty path is opened as a container,
// positioned at its payload offset, and its channel count resolved from
// the format chunk (mono when absent). A path that cannot be opened
// degrades that single slot to empty instead of failing the set; a
// container whose data chunk cannot be resolved falls back to the fixed
// payload offset. Mute flags reset to track-present defaults and the
// position returns to zero.
func (m *Mixer) Prepare(paths [MaxTracks]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.haltLocked()
	m.closeSlotsLocked()
	m.state.Store(int32(Stopped))
	m.frame.Store(0)

	for i, path := range paths {
		if path == "" {
			m.muted[i].Store(true)
			continue
		}

		c, err := container.Open(path)
		if err != nil {
			m.log.Warn("tape track unavailable, playing slot silent",
				"track", i, "path", path, "error", err)
			m.muted[i].Store(true)
			continue
		}

		payload := c.PayloadOffset()
		m.slots[i] = &slot{
			c:        c,
			payload:  payload,
			channels: c.Channels(),
			cursor:   payload,
		}
		m.muted[i].Store(false)
	}
	return nil
}

// Play starts (or resumes) the mixing loop on its own thread. Calling
// Play while already playing is a no-op.
func (m *Mixer) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if State(m.state.Load()) == Playing {
		return nil
	}
	if m.out == nil {
		return ErrSinkUnavailable
	}

	m.haltLocked() // reap a naturally finished loop, if any
	m.rewindLocked(m.frame.Load())
	m.state.Store(int32(Playing))
	m.spawnLocked()
	return nil
}

// Pause halts the loop and retains the frame position. Blocks until the
// loop has exited (at most one cycle). A no-op unless playing.
func (m *Mixer) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if State(m.state.Load()) != Playing {
		return nil
	}
	m.haltLocked()
	// The loop flips to Stopped on natural end of stream; only a loop
	// halted by us is Paused.
	m.state.CompareAndSwap(int32(Playing), int32(Paused))
	return nil
}

// Stop halts the loop and resets the position to zero. Safe to call in
// any state, repeatedly.
func (m *Mixer) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.haltLocked()
	m.state.Store(int32(Stopped))
	m.frame.Store(0)
	m.rewindLocked(0)
	return nil
}

// SeekToFrame relocates every armed track to frame n on the shared
// timeline. Legal in any state and does not itself change the transport
// state: a playing mixer pauses around the relocation and resumes.
// Seeking past end-of-data is legal; the next cycle reading zero bytes
// from every track ends the stream naturally.
func (m *Mixer) SeekToFrame(n int64) error {
	if n < 0 {
		n = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	wasPlaying := State(m.state.Load()) == Playing
	m.haltLocked()

	m.rewindLocked(n)
	m.frame.Store(n)

	// Resume only if the loop had not already ended on its own.
	if wasPlaying && State(m.state.Load()) == Playing {
		m.spawnLocked()
	}
	return nil
}

// SetMuted toggles a track's mute flag. Takes effect at the next cycle
// boundary, not mid-cycle; the active-track divisor follows one cycle
// later as well.
func (m *Mixer) SetMuted(track int, muted bool) {
	if track < 0 || track >= MaxTracks {
		return
	}
	m.muted[track].Store(muted)
}

// Muted reports a track's mute flag.
func (m *Mixer) Muted(track int) bool {
	if track < 0 || track >= MaxTracks {
		return false
	}
	return m.muted[track].Load()
}

// Status returns a snapshot for UI binding.
func (m *Mixer) Status() Status {
	st := Status{
		State: State(m.state.Load()),
		Frame: m.frame.Load(),
	}
	st.Position = time.Duration(st.Frame) * time.Second / SampleRate

	m.mu.Lock()
	for i := range m.slots {
		st.Armed[i] = m.slots[i].armed()
	}
	m.mu.Unlock()

	for i := range st.Muted {
		st.Muted[i] = m.muted[i].Load()
	}
	return st
}

// Release halts playback and closes every container. The mixer can be
// re-armed with Prepare afterwards.
func (m *Mixer) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.haltLocked()
	m.closeSlotsLocked()
	m.state.Store(int32(Stopped))
	m.frame.Store(0)
	return nil
}

// haltLocked signals the loop and joins it. Safe when no loop is
// running and after a natural end of stream.
func (m *Mixer) haltLocked() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop, m.done = nil, nil
}

func (m *Mixer) spawnLocked() {
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(m.stop, m.done)
}

func (m *Mixer) rewindLocked(frame int64) {
	for _, s := range m.slots {
		if s.armed() {
			s.cursor = s.payload + frame*s.stride()
		}
	}
}

func (m *Mixer) closeSlotsLocked() {
	for i, s := range m.slots {
		if s.armed() {
			s.c.Close()
		}
		m.slots[i] = nil
	}
}
