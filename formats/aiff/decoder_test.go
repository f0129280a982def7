// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/opforge/optape/utils"
)

// encodeAIFF authors a real AIFF file with the go-audio encoder and
// returns its bytes. Fixtures come from the encoder, not hand-built
// headers, so the test exercises the same chunk layout patches ship
// with.
func encodeAIFF(t *testing.T, rate, channels, bitDepth int, samples []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.aif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}

	enc := goaiff.NewEncoder(f, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{SampleRate: rate, NumChannels: channels},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	return data
}

func TestDecode_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not a patch container")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecode_Metadata(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 44100, 1, 16, []int{0, 100, -100, 200})

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestDecode_SampleConversion(t *testing.T) {
	t.Parallel()

	pcm := []int{0, 16384, -16384, 32767, -32768}
	data := encodeAIFF(t, 44100, 1, 16, pcm)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	dst := make([]float32, len(pcm))
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(pcm) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(pcm))
	}
	for i, s := range pcm {
		want := utils.Int16ToFloat32(int16(s))
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestDecode_StereoInterleaved(t *testing.T) {
	t.Parallel()

	// L/R pairs stay interleaved in decode order.
	pcm := []int{1000, -1000, 2000, -2000}
	data := encodeAIFF(t, 44100, 2, 16, pcm)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", src.Channels())
	}

	dst := make([]float32, len(pcm))
	n, _ := src.ReadSamples(dst)
	if n != len(pcm) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(pcm))
	}
	for i, s := range pcm {
		if want := utils.Int16ToFloat32(int16(s)); dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestDecode_RejectsNon16Bit(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 44100, 1, 24, []int{0, 1 << 20, -(1 << 20)})

	_, err := Decoder{}.Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrOnlyPCM16bitSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCM16bitSupported", err)
	}
}

func TestDecode_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 22050, 1, 16, []int{5, 10, 15})

	// Strip the Seek method; the decoder buffers the stream itself.
	src, err := Decoder{}.Decode(struct{ io.Reader }{bytes.NewReader(data)})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}
	dst := make([]float32, 3)
	if n, _ := src.ReadSamples(dst); n != 3 {
		t.Errorf("ReadSamples() n = %d, want 3", n)
	}
}

func TestDecode_DrainsFullStream(t *testing.T) {
	t.Parallel()

	const total = 1000
	pcm := make([]int, total)
	for i := range pcm {
		pcm[i] = i * 10
	}
	data := encodeAIFF(t, 44100, 1, 16, pcm)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	dst := make([]float32, 256)
	read := 0
	for {
		n, err := src.ReadSamples(dst)
		read += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if n == 0 {
			t.Fatal("ReadSamples() returned 0 samples without EOF")
		}
	}
	if read != total {
		t.Errorf("drained %d samples, want %d", read, total)
	}
}

func TestReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 44100, 1, 16, []int{1, 2})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		message string
	}{
		{ErrNotAiffFile, "not an AIFF file"},
		{ErrOnlyPCM16bitSupported, "only 16-bit PCM AIFF is supported"},
		{ErrUnsupportedAiffLayout, "unsupported AIFF layout"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.message {
			t.Errorf("error message = %q, want %q", tt.err.Error(), tt.message)
		}
	}
}

func BenchmarkDecodeAndDrain(b *testing.B) {
	pcm := make([]int, 4096)
	for i := range pcm {
		pcm[i] = (i % 64) * 100
	}

	path := filepath.Join(b.TempDir(), "bench.aif")
	f, err := os.Create(path)
	if err != nil {
		b.Fatal(err)
	}
	enc := goaiff.NewEncoder(f, 44100, 16, 1)
	if err := enc.Write(&goaudio.IntBuffer{
		Data:           pcm,
		Format:         &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		SourceBitDepth: 16,
	}); err != nil {
		b.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		b.Fatal(err)
	}
	f.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatal(err)
	}

	dst := make([]float32, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			n, err := src.ReadSamples(dst)
			if err != nil || n == 0 {
				break
			}
		}
		src.Close()
	}
}
