// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WritePCM16 writes interleaved 16-bit PCM samples as a WAV file.
// The writer must support seeking so chunk sizes can be finalized.
func WritePCM16(ws io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannelCount
	}

	enc := gowav.NewEncoder(ws, sampleRate, 16, channels, 1)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
