// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	// ErrSinkUnavailable indicates playback was started with no output device
	ErrSinkUnavailable = errors.New("no audio output sink available")
)
