// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ClipRegion is one recorded region on a tape track, in frames on the
// shared timeline. Regions come from the tape's sidecar document and
// exist purely so a UI can draw the tape; the mixing loop never reads
// them.
type ClipRegion struct {
	Track   int   `json:"track"`
	Channel int   `json:"channel"`
	Start   int64 `json:"start"`
	End     int64 `json:"end"`
}

// Duration returns the region length in wall-clock time at the tape
// rate.
func (r ClipRegion) Duration() time.Duration {
	if r.End <= r.Start {
		return 0
	}
	return time.Duration(r.End-r.Start) * time.Second / SampleRate
}

// Sidecar is the JSON document the recorder writes next to a tape,
// describing the time-aligned clip regions per track.
type Sidecar struct {
	Regions []ClipRegion `json:"regions"`
}

// LoadSidecar reads and decodes a tape sidecar document.
func LoadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mixer: reading sidecar: %w", err)
	}

	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("mixer: decoding sidecar: %w", err)
	}
	return &sc, nil
}

// TrackRegions returns the regions on one track, in document order.
func (s *Sidecar) TrackRegions(track int) []ClipRegion {
	var out []ClipRegion
	for _, r := range s.Regions {
		if r.Track == track {
			out = append(out, r)
		}
	}
	return out
}
