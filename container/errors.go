// SPDX-License-Identifier: EPL-2.0

package container

import "errors"

var (
	// ErrNotContainer indicates the file is not a chunked audio container
	ErrNotContainer = errors.New("not a chunked audio container")

	// ErrTruncated indicates a chunk or header runs past end-of-file
	ErrTruncated = errors.New("truncated container")

	// ErrChunkNotFound indicates the requested chunk id is absent
	ErrChunkNotFound = errors.New("chunk not found")
)
