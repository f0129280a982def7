// SPDX-License-Identifier: EPL-2.0

// Package player is a single-voice sample player for drum-kit pads and
// file previews. One render worker owns the voice; a new trigger cuts
// whatever is sounding, the way hardware pads behave.
//
//	pl := player.New(out)
//	defer pl.Close()
//
//	kit, _ := patch.ExtractDrumKit("kick_kit.aif")
//	pl.LoadKit(kit)
//	pl.Play(3)
package player
