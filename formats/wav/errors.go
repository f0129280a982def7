// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrInvalidChannelCount indicates a channel count below one
	ErrInvalidChannelCount = errors.New("channel count must be at least 1")
)
