// SPDX-License-Identifier: EPL-2.0

package optape

import (
	"fmt"
	"io"

	"github.com/opforge/optape/audio"
	"github.com/opforge/optape/mixer"
	"github.com/opforge/optape/patch"
	"github.com/opforge/optape/utils"
)

// LoadMetadata extracts the embedded configuration of the patch file at
// path. See patch.ExtractMetadata for the soft-failure semantics.
func LoadMetadata(path string) (*patch.Metadata, error) {
	return patch.ExtractMetadata(path)
}

// LoadDrumKit extracts the drum kit stored in the patch file at path.
// See patch.ExtractDrumKit for the soft-failure semantics.
func LoadDrumKit(path string) (*patch.DrumKit, error) {
	return patch.ExtractDrumKit(path)
}

// ResampleToTape converts src to the format the device records tape in:
// 44.1 kHz mono 16-bit PCM. Multi-channel sources are averaged to mono
// before resampling. bufSize is the processing chunk in samples; values
// below one select a default.
func ResampleToTape(src audio.Source, bufSize int) ([]int16, error) {
	if bufSize <= 0 {
		bufSize = 4096
	}

	s := src
	if s.Channels() != 1 {
		s = audio.NewMonoMixer(s)
	}
	if s.SampleRate() != mixer.SampleRate {
		s = audio.NewResampler(s, mixer.SampleRate)
	}

	buf := make([]float32, bufSize)
	var out []int16
	for {
		n, err := s.ReadSamples(buf)
		for i := 0; i < n; i++ {
			out = append(out, utils.Float32ToInt16(buf[i]))
		}

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}
