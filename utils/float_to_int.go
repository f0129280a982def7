// SPDX-License-Identifier: EPL-2.0

package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps a signed 16-bit sample into [-1, 1]. The scale is
// split so both full-scale extremes land exactly on the range bounds.
func Int16ToFloat32(s int16) float32 {
	if s >= 0 {
		return float32(s) / 32767.0
	}
	return float32(s) / 32768.0
}
