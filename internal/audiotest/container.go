// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// ContainerBuilder authors synthetic recorder containers in memory so
// parser tests do not depend on binary fixtures checked into the repo.
type ContainerBuilder struct {
	chunks []byte
}

// NewContainer returns an empty builder.
func NewContainer() *ContainerBuilder {
	return &ContainerBuilder{}
}

// Chunk appends a chunk with the given 4-byte id and body. Odd-length
// bodies get the on-disk pad byte, matching what the hardware writes.
func (b *ContainerBuilder) Chunk(id string, body []byte) *ContainerBuilder {
	var hdr [8]byte
	copy(hdr[0:4], id)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(len(body)))
	b.chunks = append(b.chunks, hdr[:]...)
	b.chunks = append(b.chunks, body...)
	if len(body)%2 == 1 {
		b.chunks = append(b.chunks, 0)
	}
	return b
}

// RawChunk appends a chunk header declaring declaredSize while writing
// only the given body bytes. Used to author deliberately truncated
// containers.
func (b *ContainerBuilder) RawChunk(id string, declaredSize uint32, body []byte) *ContainerBuilder {
	var hdr [8]byte
	copy(hdr[0:4], id)
	binary.BigEndian.PutUint32(hdr[4:8], declaredSize)
	b.chunks = append(b.chunks, hdr[:]...)
	b.chunks = append(b.chunks, body...)
	return b
}

// Format appends the format chunk the recorder writes, carrying the
// stream's channel count in its first two bytes.
func (b *ContainerBuilder) Format(channels int) *ContainerBuilder {
	body := make([]byte, 18)
	binary.BigEndian.PutUint16(body[0:2], uint16(channels))
	return b.Chunk("COMM", body)
}

// Metadata appends the vendor metadata chunk: the "op-1" signature
// followed by a JSON document.
func (b *ContainerBuilder) Metadata(doc string) *ContainerBuilder {
	body := append([]byte("op-1"), []byte(doc)...)
	return b.Chunk("APPL", body)
}

// SampleData appends the data chunk: an 8-byte offset/block-size
// sub-header followed by raw big-endian PCM bytes.
func (b *ContainerBuilder) SampleData(pcm []byte) *ContainerBuilder {
	body := make([]byte, 8+len(pcm))
	copy(body[8:], pcm)
	return b.Chunk("SSND", body)
}

// Bytes assembles the container: FORM group header, big-endian group
// length, AIFF form subtype, then the accumulated chunks.
func (b *ContainerBuilder) Bytes() []byte {
	out := make([]byte, 12, 12+len(b.chunks))
	copy(out[0:4], "FORM")
	binary.BigEndian.PutUint32(out[4:8], uint32(4+len(b.chunks)))
	copy(out[8:12], "AIFF")
	return append(out, b.chunks...)
}

// WriteFile writes the container into the test's temp dir and returns
// its path.
func (b *ContainerBuilder) WriteFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// PCM16BE encodes samples as big-endian 16-bit PCM, the byte order the
// hardware stores in its containers.
func PCM16BE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(out[i*2:i*2+2], uint16(s))
	}
	return out
}
