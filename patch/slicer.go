// SPDX-License-Identifier: EPL-2.0

package patch

// sampleUnitDivisor converts the hardware's internal sample-position
// units to raw 16-bit mono sample indices. Inherited from the device
// firmware; no documented derivation exists.
const sampleUnitDivisor = 4058

// bytesPerSample is the byte width of one output sample (16-bit PCM).
const bytesPerSample = 2

// Slices cuts the kit's sample block into one buffer per pad, in pad
// order. Pads with degenerate or out-of-range boundaries (unused slots
// are common in hardware-authored kits) yield an empty buffer rather
// than an error; playing an empty buffer downstream is a no-op.
func (k *DrumKit) Slices() [][]byte {
	out := make([][]byte, len(k.Start))
	size := int64(len(k.Data))

	for i := range k.Start {
		from := k.Start[i] / sampleUnitDivisor * bytesPerSample
		to := k.End[i] / sampleUnitDivisor * bytesPerSample

		if from < 0 || to <= from || from >= size {
			out[i] = []byte{}
			continue
		}
		if to > size {
			to = size
		}
		out[i] = k.Data[from:to]
	}
	return out
}
