// SPDX-License-Identifier: EPL-2.0

// Package wav writes PCM audio as WAV files.
//
// Its single entry point backs the drum-kit export path: each sliced pad
// buffer is written out as a standalone 16-bit PCM WAV so kits can be
// edited in ordinary audio tools. Encoding is delegated to the
// github.com/go-audio library.
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("pad01.wav")
//	err := wav.WritePCM16(file, 44100, 1, samples)
//
// The writer needs an io.WriteSeeker because the RIFF chunk sizes are
// finalized on Close.
package wav
