// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes the AIFF containers patches are stored in,
// built on github.com/go-audio/aiff.
//
// Decode returns an audio.Source of normalized float32 samples:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrNotAiffFile, ErrOnlyPCM16bitSupported, ...
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Only 16-bit PCM is accepted, matching what the device writes.
// Compressed AIFF-C and other bit depths return
// ErrOnlyPCM16bitSupported. Decoding is streaming; non-seekable input
// is buffered in memory first because the underlying decoder needs to
// seek between chunks.
package aiff
