// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/opforge/optape/audio"
	"github.com/opforge/optape/formats/aiff"
	"github.com/opforge/optape/patch"
	"github.com/opforge/optape/sink"
	"github.com/opforge/optape/utils"
)

// defaultChunkFrames is the write granularity of the render worker.
// Small enough that a retrigger cuts the running voice within a few
// milliseconds, large enough to keep sink call overhead negligible.
const defaultChunkFrames = 512

// job is one unit of work for the render worker: either a pre-sliced
// pad buffer or a streaming preview source.
type job struct {
	pcm    []byte
	src    audio.Source
	closer io.Closer
}

// Player fires drum-kit pads and previews sample files on a single
// monophonic voice. Triggers are fire-and-forget: a new trigger cuts
// whatever is sounding, matching the hardware's pad behavior. All
// methods are safe for concurrent use.
type Player struct {
	out         sink.Sink
	chunkFrames int
	log         *slog.Logger

	mu   sync.Mutex
	pads [][]byte

	triggers chan job
	quit     chan struct{}
	done     chan struct{}

	// cut tells the worker to abandon the current voice at the next
	// chunk boundary.
	cut atomic.Bool
}

// Option configures a Player.
type Option func(*Player)

// WithChunkFrames overrides the render chunk size in frames.
func WithChunkFrames(frames int) Option {
	return func(p *Player) {
		if frames > 0 {
			p.chunkFrames = frames
		}
	}
}

// WithLogger sets the logger used for trigger and sink diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(p *Player) {
		p.log = log
	}
}

// New creates a Player writing to out and starts its render worker.
// Close releases the worker.
func New(out sink.Sink, opts ...Option) *Player {
	p := &Player{
		out:         out,
		chunkFrames: defaultChunkFrames,
		log:         slog.Default(),
		triggers:    make(chan job, 1),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.worker()
	return p
}

// LoadKit arms the player with a drum kit, slicing its sample block
// into per-pad buffers once up front. A nil kit disarms every pad.
// Loading does not interrupt a voice already sounding.
func (p *Player) LoadKit(kit *patch.DrumKit) {
	var pads [][]byte
	if kit != nil {
		pads = kit.Slices()
	}

	p.mu.Lock()
	p.pads = pads
	p.mu.Unlock()
}

// Play triggers pad index. Out-of-range indices and empty pads are
// ignored; hardware kits routinely leave slots unused and a dead pad
// press is not an error. A valid trigger cuts the current voice.
func (p *Player) Play(index int) {
	p.mu.Lock()
	var pcm []byte
	if index >= 0 && index < len(p.pads) {
		pcm = p.pads[index]
	}
	p.mu.Unlock()

	if len(pcm) == 0 {
		p.log.Debug("ignoring trigger for silent pad", "pad", index)
		return
	}
	p.enqueue(job{pcm: pcm})
}

// PreviewFile plays a sample file through the voice, converting it to
// the sink format on the fly. The decode error surfaces synchronously;
// playback itself is fire-and-forget like a pad trigger.
func (p *Player) PreviewFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("player: opening preview file: %w", err)
	}

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("player: decoding %s: %w", path, err)
	}

	p.enqueue(job{src: src, closer: f})
	return nil
}

// Close cuts the voice and releases the render worker. The sink is the
// caller's to close.
func (p *Player) Close() error {
	p.cut.Store(true)
	close(p.quit)
	<-p.done

	// Drop a job that never reached the worker.
	select {
	case j := <-p.triggers:
		j.discard()
	default:
	}
	return nil
}

// enqueue replaces any pending job with this one and signals the
// worker to cut the current voice. Latest trigger wins.
func (p *Player) enqueue(j job) {
	p.cut.Store(true)
	for {
		select {
		case <-p.quit:
			j.discard()
			return
		case p.triggers <- j:
			return
		default:
			select {
			case stale := <-p.triggers:
				stale.discard()
			default:
			}
		}
	}
}

func (j job) discard() {
	if j.src != nil {
		j.src.Close()
	}
	if j.closer != nil {
		j.closer.Close()
	}
}

func (p *Player) worker() {
	defer close(p.done)

	for {
		select {
		case <-p.quit:
			return
		case j := <-p.triggers:
			p.cut.Store(false)
			if err := p.out.Flush(); err != nil {
				p.log.Warn("sink flush before trigger failed", "error", err)
			}
			if j.src != nil {
				p.renderStream(j)
			} else {
				p.renderPad(j.pcm)
			}
		}
	}
}

// renderPad streams one pad buffer to the sink in bounded chunks,
// decoding big-endian 16-bit mono and duplicating each frame across
// the sink's channels.
func (p *Player) renderPad(pcm []byte) {
	chans := p.out.Channels()
	out := make([]float32, p.chunkFrames*chans)

	for off := 0; off+1 < len(pcm); {
		if p.cut.Load() {
			return
		}

		frames := min(p.chunkFrames, (len(pcm)-off)/2)
		for f := 0; f < frames; f++ {
			s := int16(binary.BigEndian.Uint16(pcm[off+f*2 : off+f*2+2]))
			v := utils.Int16ToFloat32(s)
			for c := 0; c < chans; c++ {
				out[f*chans+c] = v
			}
		}

		if _, err := p.out.WriteSamples(out[:frames*chans]); err != nil {
			p.log.Warn("sink rejected pad chunk, cutting voice", "error", err)
			return
		}
		off += frames * 2
	}
}

// renderStream plays a decoded source, collapsing it to mono and
// resampling to the sink rate before fanning out across the sink's
// channels.
func (p *Player) renderStream(j job) {
	var src audio.Source = j.src
	if src.Channels() != 1 {
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != p.out.SampleRate() {
		src = audio.NewResampler(src, p.out.SampleRate())
	}
	defer func() {
		src.Close()
		if j.closer != nil {
			j.closer.Close()
		}
	}()

	chans := p.out.Channels()
	mono := make([]float32, p.chunkFrames)
	out := make([]float32, p.chunkFrames*chans)

	for {
		if p.cut.Load() {
			return
		}

		n, err := src.ReadSamples(mono)
		for f := 0; f < n; f++ {
			for c := 0; c < chans; c++ {
				out[f*chans+c] = mono[f]
			}
		}
		if n > 0 {
			if _, werr := p.out.WriteSamples(out[:n*chans]); werr != nil {
				p.log.Warn("sink rejected preview chunk, cutting voice", "error", werr)
				return
			}
		}

		if err != nil {
			if err != io.EOF {
				p.log.Warn("preview source read failed", "error", err)
			}
			return
		}
		if n == 0 {
			return
		}
	}
}
