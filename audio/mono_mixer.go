// SPDX-License-Identifier: EPL-2.0

package audio

// MonoMixer folds a multi-channel Source to mono by averaging each
// frame's channels. Mono input passes through untouched. The fold
// mirrors what the hardware does when bouncing a stereo patch onto a
// tape track.
type MonoMixer struct {
	src Source
	buf []float32
}

// NewMonoMixer wraps src in a mono fold.
func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	return m.src.Close()
}

// ReadSamples fills dst with mono samples, one per source frame.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	ch := m.src.Channels()
	if ch == 1 || len(dst) == 0 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * ch
	if cap(m.buf) < need {
		m.buf = make([]float32, need)
	}

	n, err := m.src.ReadSamples(m.buf[:need])
	frames := n / ch
	scale := 1 / float32(ch)
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < ch; c++ {
			sum += m.buf[f*ch+c]
		}
		dst[f] = sum * scale
	}
	return frames, err
}
