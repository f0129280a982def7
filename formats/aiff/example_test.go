// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/opforge/optape/audio"
	"github.com/opforge/optape/formats/aiff"
	"github.com/opforge/optape/formats/wav"
	"github.com/opforge/optape/utils"
)

// Decoding a patch file and bringing it to the tape rate.
func ExampleDecoder_Decode() {
	f, err := os.Open("patch.aif")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	tape := audio.NewResampler(src, 44100)
	buf := make([]float32, 4096)
	for {
		n, err := tape.ReadSamples(buf)
		_ = buf[:n]
		if err != nil {
			break
		}
	}

	fmt.Printf("decoded %d Hz, %d channels\n", src.SampleRate(), src.Channels())
}

// Converting a patch to WAV for use outside the device.
func ExampleDecoder_Decode_convertToWav() {
	in, err := os.Open("patch.aif")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := aiff.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	var pcm []int16
	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		for _, s := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(s))
		}
		if err != nil {
			break
		}
	}

	out, err := os.Create("patch.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.WritePCM16(out, src.SampleRate(), src.Channels(), pcm); err != nil {
		log.Fatal(err)
	}
}

func ExampleDecoder_Decode_errorHandling() {
	_, err := aiff.Decoder{}.Decode(bytes.NewReader([]byte("not a patch")))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	// Output:
	// Error: not an AIFF file
}
