// SPDX-License-Identifier: EPL-2.0

// Package patch decodes single-instrument patch files authored by the
// sampler hardware.
//
// A patch container embeds a vendor metadata chunk (a signed JSON
// document describing the instrument) and, for drum kits, a sample data
// chunk holding the raw PCM block shared by all pads.
//
// Metadata extraction is deliberately soft: a patch without readable
// metadata is displayed with generic info, not rejected.
//
//	md, err := patch.ExtractMetadata("kick-kit.aif")
//	if err != nil {
//	    // the file itself could not be opened
//	}
//	if md == nil {
//	    // no vendor metadata; nothing to show
//	}
//
// Drum kits additionally expose per-pad sample boundaries, recorded by
// the hardware in its internal position units:
//
//	kit, _ := patch.ExtractDrumKit("kick-kit.aif")
//	buffers := kit.Slices() // one []byte per pad, empty for unused slots
package patch
