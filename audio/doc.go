// SPDX-License-Identifier: EPL-2.0

// Package audio holds the PCM processing seam between format decoders
// and playback: the Source stream interface, a mono fold, and a sample
// rate converter.
//
// Samples are interleaved float32 in [-1.0, 1.0]. Streams end with
// io.EOF, which may accompany the final samples:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // consume buf[:n]
//	    if err != nil {
//	        break
//	    }
//	}
//
// A decoded patch is brought to the tape rate by chaining the
// primitives; NewResampler folds multi-channel input to mono on its
// own, so the usual import pipeline is just:
//
//	src, err := aiff.Decoder{}.Decode(f)
//	tape := audio.NewResampler(src, 44100)
package audio
