// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opforge/optape/formats/wav"
)

// ExportSampleRate is the rate the hardware records drum samples at.
const ExportSampleRate = 44100

// ExportWAV writes each non-empty pad slice into dir as a 16-bit mono
// WAV file named after the kit and pad number. Empty pad slots are
// skipped. Returns the paths written.
func (k *DrumKit) ExportWAV(dir string) ([]string, error) {
	base := sanitizeName(k.Name)
	var paths []string

	for i, slice := range k.Slices() {
		if len(slice) == 0 {
			continue
		}

		samples := make([]int16, len(slice)/bytesPerSample)
		for j := range samples {
			samples[j] = int16(binary.BigEndian.Uint16(slice[j*2 : j*2+2]))
		}

		path := filepath.Join(dir, fmt.Sprintf("%s-pad%02d.wav", base, i+1))
		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("patch: exporting pad %d: %w", i+1, err)
		}
		if err := wav.WritePCM16(f, ExportSampleRate, 1, samples); err != nil {
			f.Close()
			return paths, fmt.Errorf("patch: exporting pad %d: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("patch: exporting pad %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "kit"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
