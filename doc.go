// SPDX-License-Identifier: EPL-2.0

// Package optape reads, plays and converts the audio files a portable
// hardware sampler exchanges over USB: instrument patches with embedded
// configuration, drum kits carrying per-pad slice boundaries, and
// four-track tape recordings.
//
// # Reading Patches
//
// Patch files are chunked big-endian containers. The patch subpackage
// extracts the embedded configuration and, for drum patches, the sample
// block with its pad boundaries:
//
//	meta, _ := optape.LoadMetadata("synth_patch.aif")
//	kit, _ := optape.LoadDrumKit("drum_kit.aif")
//	pads := kit.Slices()
//
// # Playing Tapes
//
// The mixer subpackage plays a four-track tape with transport control
// and per-track mute:
//
//	mx := mixer.New(out)
//	mx.Prepare([4]string{"track_1.aif", "track_2.aif", "track_3.aif", "track_4.aif"})
//	defer mx.Release()
//	mx.Play()
//
// # Triggering Pads
//
// The player subpackage fires drum-kit pads on a single cutting voice,
// the way the hardware's pads behave:
//
//	pl := player.New(out)
//	defer pl.Close()
//	pl.LoadKit(kit)
//	pl.Play(3)
//
// # Converting Audio
//
// ResampleToTape converts any decoded source to the tape format the
// device records in (44.1 kHz mono 16-bit). Decoders for the device's
// container format live under formats:
//
//	src, _ := aiff.Decoder{}.Decode(file)
//	samples, _ := optape.ResampleToTape(src, 4096)
//
// See the individual subpackages for more detailed documentation.
package optape
