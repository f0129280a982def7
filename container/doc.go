// SPDX-License-Identifier: EPL-2.0

// Package container reads the chunked binary files authored by the
// sampler hardware (tape tracks and instrument patches).
//
// The on-disk layout is an IFF-style group: a 4-byte group identifier at
// offset 0, a big-endian group length, a 4-byte form subtype at offset
// 8, then a sequence of chunks. Each chunk is an 8-byte header (4-byte
// id, 4-byte big-endian body size) followed by the body, padded to an
// even byte boundary. The pad byte is never counted in the declared
// size.
//
// Opening a file validates the group header:
//
//	c, err := container.Open("track_1.aif")
//	if err != nil {
//	    // os error, ErrNotContainer or ErrTruncated
//	}
//	defer c.Close()
//
// Chunks are located by a bounded sequential scan:
//
//	ch, err := c.FindChunk(container.DataChunkID)
//
// The scan never reads past the file length; a chunk whose declared size
// would overrun end-of-file is reported as ErrTruncated rather than
// decoded as garbage.
package container
