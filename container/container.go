// SPDX-License-Identifier: EPL-2.0

package container

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	groupID  = "FORM"
	formType = "AIFF"

	headerSize      = 12
	chunkHeaderSize = 8
)

// DataChunkID identifies the chunk holding raw PCM sample bytes.
const DataChunkID = "SSND"

// FormatChunkID identifies the chunk describing the stream layout.
const FormatChunkID = "COMM"

// dataSubHeaderSize covers the offset and block-size words that sit
// between the data chunk header and the first sample byte.
const dataSubHeaderSize = 8

// DefaultPayloadOffset is where sample bytes start in the fixed layout
// the recorder writes (group header, format chunk, data chunk header and
// sub-header). Used as a fallback when the data chunk cannot be resolved
// so a partially corrupt track can still play.
const DefaultPayloadOffset = 54

// Chunk is one named, length-prefixed block inside a container.
// Size is the declared body size. Bodies are padded to an even byte
// boundary on disk; the pad byte is never part of Size.
type Chunk struct {
	ID     string
	Offset int64 // byte offset of the chunk body
	Size   int64
}

// Container is an open handle to a chunked audio file. A Container is
// exclusively owned by the component that opened it and is not safe for
// concurrent use.
type Container struct {
	f    *os.File
	size int64

	payload    int64
	payloadSet bool
}

// Open opens a chunked audio file and validates its group header: the
// 4-byte group identifier at offset 0 and the 4-byte form subtype at
// offset 8. A missing file surfaces the os error; a header mismatch
// returns ErrNotContainer.
func Open(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("container: %w", err)
	}

	c := &Container{f: f, size: info.Size()}
	if err := c.validateHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) validateHeader() error {
	if c.size < headerSize {
		return ErrTruncated
	}

	var hdr [headerSize]byte
	if _, err := c.f.ReadAt(hdr[:], 0); err != nil {
		return fmt.Errorf("container: reading header: %w", err)
	}
	if string(hdr[0:4]) != groupID || string(hdr[8:12]) != formType {
		return ErrNotContainer
	}
	return nil
}

// Len returns the container's byte length.
func (c *Container) Len() int64 {
	return c.size
}

// FindChunk scans chunks sequentially from the first chunk header and
// returns the first chunk whose id matches. The scan is bounded by the
// file length: a chunk whose declared size would run past end-of-file
// yields ErrTruncated instead of garbage, and reaching end-of-file
// without a match yields ErrChunkNotFound.
func (c *Container) FindChunk(id string) (Chunk, error) {
	sc := c.Scan()
	for sc.Next() {
		if sc.Chunk().ID == id {
			return sc.Chunk(), nil
		}
	}
	if err := sc.Err(); err != nil {
		return Chunk{}, err
	}
	return Chunk{}, ErrChunkNotFound
}

// PayloadOffset resolves the byte offset where raw PCM samples begin:
// the body of the data chunk past its offset/block-size sub-header.
// If the data chunk cannot be resolved the fixed DefaultPayloadOffset
// is returned instead of an error. The result is cached.
func (c *Container) PayloadOffset() int64 {
	if c.payloadSet {
		return c.payload
	}
	c.payloadSet = true

	ch, err := c.FindChunk(DataChunkID)
	if err != nil || ch.Size < dataSubHeaderSize {
		c.payload = DefaultPayloadOffset
		return c.payload
	}
	c.payload = ch.Offset + dataSubHeaderSize
	return c.payload
}

// Channels returns the stream's channel count from the format chunk.
// A container without a usable format chunk reports mono, the layout
// the recorder writes for tape tracks.
func (c *Container) Channels() int {
	ch, err := c.FindChunk(FormatChunkID)
	if err != nil || ch.Size < 2 {
		return 1
	}

	var b [2]byte
	if _, err := c.f.ReadAt(b[:], ch.Offset); err != nil {
		return 1
	}
	n := int(int16(binary.BigEndian.Uint16(b[:])))
	if n < 1 {
		return 1
	}
	return n
}

// ReadAt reads container bytes at the given offset, implementing
// io.ReaderAt.
func (c *Container) ReadAt(p []byte, off int64) (int, error) {
	return c.f.ReadAt(p, off)
}

// Close releases the underlying file.
func (c *Container) Close() error {
	return c.f.Close()
}

// Scan returns a Scanner positioned before the first chunk.
func (c *Container) Scan() *Scanner {
	return &Scanner{c: c, next: headerSize}
}

// Scanner walks the container's chunks in file order. Usage follows
// bufio.Scanner: Next advances, Chunk returns the current chunk, and Err
// reports whether the walk ended on a malformed chunk rather than at
// end-of-file.
type Scanner struct {
	c    *Container
	next int64
	cur  Chunk
	err  error
}

// Next advances to the next chunk. It returns false at end-of-file or on
// a malformed chunk; Err distinguishes the two.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if s.next == s.c.size {
		return false
	}
	if s.next+chunkHeaderSize > s.c.size {
		// Trailing bytes too short to hold a chunk header.
		s.err = ErrTruncated
		return false
	}

	var hdr [chunkHeaderSize]byte
	if _, err := s.c.f.ReadAt(hdr[:], s.next); err != nil {
		s.err = fmt.Errorf("container: reading chunk header: %w", err)
		return false
	}

	size := int64(binary.BigEndian.Uint32(hdr[4:8]))
	body := s.next + chunkHeaderSize
	if body+size > s.c.size {
		s.err = ErrTruncated
		return false
	}

	s.cur = Chunk{ID: string(hdr[0:4]), Offset: body, Size: size}

	// Advance past the body, skipping the pad byte after an
	// odd-length chunk.
	s.next = body + size
	if size%2 == 1 && s.next < s.c.size {
		s.next++
	}
	return true
}

// Chunk returns the chunk read by the last successful call to Next.
func (s *Scanner) Chunk() Chunk {
	return s.cur
}

// Err returns the first malformed-chunk error hit by the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}
