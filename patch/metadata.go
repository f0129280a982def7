// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/opforge/optape/container"
)

// MetadataChunkID identifies the chunk the hardware stores its patch
// configuration in.
const MetadataChunkID = "APPL"

// vendorSignature prefixes the metadata chunk body. Anything else in an
// APPL chunk belongs to some other application and is ignored.
const vendorSignature = "op-1"

// Engine is the synthesis engine / category tag of a patch.
type Engine string

const (
	EngineDrum         Engine = "drum"
	EngineWaveTable    Engine = "wave-table"
	EngineBoxSynth     Engine = "box-synth"
	EngineString       Engine = "string"
	EngineCluster      Engine = "cluster"
	EngineSampler      Engine = "sampler"
	EngineDigital      Engine = "digital"
	EngineFM           Engine = "fm"
	EnginePhase        Engine = "phase"
	EnginePulse        Engine = "pulse"
	EngineDiscreteSynth Engine = "discrete-synth"
	EngineVoltage      Engine = "voltage"
	EngineUnknown      Engine = "unknown"
)

var engines = map[string]Engine{
	string(EngineDrum):          EngineDrum,
	string(EngineWaveTable):     EngineWaveTable,
	string(EngineBoxSynth):      EngineBoxSynth,
	string(EngineString):        EngineString,
	string(EngineCluster):       EngineCluster,
	string(EngineSampler):       EngineSampler,
	string(EngineDigital):       EngineDigital,
	string(EngineFM):            EngineFM,
	string(EnginePhase):         EnginePhase,
	string(EnginePulse):         EnginePulse,
	string(EngineDiscreteSynth): EngineDiscreteSynth,
	string(EngineVoltage):       EngineVoltage,
}

// ParseEngine maps a document type tag to an Engine, defaulting to
// EngineUnknown.
func ParseEngine(tag string) Engine {
	if e, ok := engines[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return e
	}
	return EngineUnknown
}

// Metadata is the decoded configuration of one instrument patch.
// Immutable after construction; owned by the caller for display.
type Metadata struct {
	Name   string
	Engine Engine

	Effect    string
	EffectOn  bool
	ModSource string
	ModOn     bool

	// Drum patches only.
	SlotCount int
	Stereo    bool

	// Synth patches only.
	Octave  int
	Version int
}

// IsDrum reports whether the patch is a drum kit.
func (m *Metadata) IsDrum() bool {
	return m.Engine == EngineDrum
}

// document is the JSON shape the hardware embeds in the metadata chunk.
type document struct {
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	DrumVersion  *int    `json:"drum_version"`
	SynthVersion int     `json:"synth_version"`
	FXActive     bool    `json:"fx_active"`
	FXType       string  `json:"fx_type"`
	LFOActive    bool    `json:"lfo_active"`
	LFOType      string  `json:"lfo_type"`
	Octave       int     `json:"octave"`
	Stereo       bool    `json:"stereo"`
	Start        []int64 `json:"start"`
	End          []int64 `json:"end"`
}

// ExtractMetadata opens the patch container at path and decodes its
// embedded metadata. A missing or foreign metadata chunk and a malformed
// document all yield (nil, nil): absence of metadata is "nothing to
// show", not a failure. Only opening the container can fail.
func ExtractMetadata(path string) (*Metadata, error) {
	c, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	ch, err := c.FindChunk(MetadataChunkID)
	if err != nil {
		return nil, nil
	}

	body := make([]byte, ch.Size)
	if _, err := c.ReadAt(body, ch.Offset); err != nil {
		return nil, nil
	}

	doc, ok := decodeDocument(body)
	if !ok {
		return nil, nil
	}
	return doc.metadata(), nil
}

// decodeDocument verifies the vendor signature and unmarshals the JSON
// document that follows it.
func decodeDocument(body []byte) (*document, bool) {
	if len(body) < len(vendorSignature) {
		return nil, false
	}
	if string(body[:len(vendorSignature)]) != vendorSignature {
		return nil, false
	}

	text := bytes.TrimRight(body[len(vendorSignature):], "\x00 ")
	var doc document
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, false
	}
	return &doc, true
}

func (d *document) metadata() *Metadata {
	m := &Metadata{
		Name:      d.Name,
		Effect:    d.FXType,
		EffectOn:  d.FXActive,
		ModSource: d.LFOType,
		ModOn:     d.LFOActive,
	}

	// A drum-specific version key marks a drum patch even when the type
	// tag is absent or mangled.
	if d.DrumVersion != nil || ParseEngine(d.Type) == EngineDrum {
		m.Engine = EngineDrum
		m.SlotCount = len(d.Start)
		m.Stereo = d.Stereo
		if d.DrumVersion != nil {
			m.Version = *d.DrumVersion
		}
		return m
	}

	m.Engine = ParseEngine(d.Type)
	m.Octave = d.Octave
	m.Version = d.SynthVersion
	return m
}
