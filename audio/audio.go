// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Source is a readable stream of normalized PCM, the seam between
// format decoders and the playback pipelines. Patch previews and tape
// imports are both expressed as Source chains.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1]
	// and returns the number of values written. n == 0 with io.EOF
	// means the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader. The formats
// subpackages implement it.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}
