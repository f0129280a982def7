// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/opforge/optape/utils"
)

// filterAlpha is the coefficient of the one-pole low-pass engaged when
// downsampling. A crude anti-alias guard, not a brick wall.
const filterAlpha = 0.5

// Resampler converts a mono Source to a new sample rate using cubic
// interpolation over a four-tap window. Multi-channel input is folded
// through a MonoMixer first; every pipeline in this library resamples
// after the mono fold, so the resampler itself stays single-channel.
type Resampler struct {
	src   Source
	ratio float64 // source samples consumed per output sample
	rate  int

	// taps[1] and taps[2] bracket the read position; real marks taps
	// holding actual source data rather than end-of-stream padding.
	taps   [4]float32
	real   [4]bool
	primed bool
	pos    float64
	eof    bool

	// low-pass state
	prev float32
	warm bool
}

// NewResampler wraps src in a rate conversion to dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	if src.Channels() != 1 {
		src = NewMonoMixer(src)
	}
	return &Resampler{
		src:   src,
		ratio: float64(src.SampleRate()) / float64(dstRate),
		rate:  dstRate,
	}
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return 1 }

func (r *Resampler) Close() error {
	return r.src.Close()
}

// next reads one source sample, low-pass filtered when downsampling.
func (r *Resampler) next() (float32, error) {
	var buf [1]float32
	n, err := r.src.ReadSamples(buf[:])
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	v := buf[0]
	if r.ratio > 1 {
		if !r.warm {
			// Seed the filter with the first sample so the stream does
			// not start with a warm-up transient.
			r.prev = v
			r.warm = true
		}
		v = filterAlpha*v + (1-filterAlpha)*r.prev
		r.prev = v
	}
	return v, nil
}

// prime fills the tap window so taps[1] is the first source sample.
func (r *Resampler) prime() error {
	s, err := r.next()
	if err != nil {
		return err
	}
	r.taps = [4]float32{s, s, s, s}
	r.real = [4]bool{true, true, false, false}

	for i := 2; i < 4; i++ {
		s, err := r.next()
		if err == io.EOF {
			r.eof = true
			r.taps[i] = r.taps[i-1]
			continue
		}
		if err != nil {
			return err
		}
		r.taps[i] = s
		r.real[i] = true
	}
	r.primed = true
	return nil
}

// advance shifts the tap window one source sample forward, padding with
// the last real sample once the source is exhausted.
func (r *Resampler) advance() error {
	copy(r.taps[:3], r.taps[1:])
	copy(r.real[:3], r.real[1:])

	if r.eof {
		r.taps[3] = r.taps[2]
		r.real[3] = false
		return nil
	}

	s, err := r.next()
	if err == io.EOF {
		r.eof = true
		r.taps[3] = r.taps[2]
		r.real[3] = false
		return nil
	}
	if err != nil {
		return err
	}
	r.taps[3] = s
	r.real[3] = true
	return nil
}

// ReadSamples produces samples at the destination rate. The stream ends
// when the interpolation window runs past the last real source sample.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written, err
			}
		}
		if !r.real[1] || !r.real[2] {
			return written, io.EOF
		}

		dst[written] = utils.CubicInterpolate(
			r.taps[0], r.taps[1], r.taps[2], r.taps[3], float32(r.pos))
		written++
		r.pos += r.ratio
	}
	return written, nil
}
