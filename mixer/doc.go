// SPDX-License-Identifier: EPL-2.0

// Package mixer plays a four-track tape: it mixes up to four mono or
// stereo PCM tape-track containers into one normalized float stream
// with transport control (play, pause, stop, seek) and per-track mute.
//
// The engine is an explicitly owned instance with an explicit
// Prepare/Release lifecycle:
//
//	mx := mixer.New(out)
//	if err := mx.Prepare([4]string{"track_1.aif", "track_2.aif"}); err != nil {
//	    // only systemic failures; a single bad track degrades to silence
//	}
//	defer mx.Release()
//
//	mx.Play()
//	mx.SetMuted(1, true)
//	mx.SeekToFrame(44100)
//	st := mx.Status()
//
// Mixing runs on a dedicated OS-thread-locked goroutine in fixed-size
// cycles. All tracks share one frame position; mute toggles and status
// reads land on cycle boundaries. Per-track I/O faults silence the
// affected track and never interrupt the others.
package mixer
