// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/opforge/optape/container"
	"github.com/opforge/optape/internal/audiotest"
)

func TestExtractMetadata_DrumByVersionKey(t *testing.T) {
	t.Parallel()

	doc := `{"name":"808 kit","drum_version":2,"stereo":true,` +
		`"fx_active":true,"fx_type":"delay",` +
		`"lfo_active":false,"lfo_type":"tremolo",` +
		`"start":[0,4058],"end":[4058,8116]}`
	path := audiotest.NewContainer().
		Metadata(doc).
		WriteFile(t, "drum.aif")

	md, err := ExtractMetadata(path)
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if md == nil {
		t.Fatal("ExtractMetadata() = nil, want metadata")
	}

	if md.Engine != EngineDrum {
		t.Errorf("Engine = %q, want drum", md.Engine)
	}
	if !md.IsDrum() {
		t.Error("IsDrum() = false, want true")
	}
	if md.Name != "808 kit" {
		t.Errorf("Name = %q, want %q", md.Name, "808 kit")
	}
	if md.SlotCount != 2 {
		t.Errorf("SlotCount = %d, want 2", md.SlotCount)
	}
	if !md.Stereo {
		t.Error("Stereo = false, want true")
	}
	if md.Version != 2 {
		t.Errorf("Version = %d, want 2", md.Version)
	}
	if md.Effect != "delay" || !md.EffectOn {
		t.Errorf("Effect = %q/%v, want delay/true", md.Effect, md.EffectOn)
	}
	if md.ModSource != "tremolo" || md.ModOn {
		t.Errorf("ModSource = %q/%v, want tremolo/false", md.ModSource, md.ModOn)
	}
}

func TestExtractMetadata_DrumByTypeTag(t *testing.T) {
	t.Parallel()

	path := audiotest.NewContainer().
		Metadata(`{"type":"drum","name":"kit","start":[0],"end":[4058]}`).
		WriteFile(t, "drum2.aif")

	md, err := ExtractMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if md == nil || md.Engine != EngineDrum {
		t.Fatalf("Engine = %v, want drum", md)
	}
}

func TestExtractMetadata_Synth(t *testing.T) {
	t.Parallel()

	doc := `{"type":"cluster","name":"pad lead","octave":-1,"synth_version":3,` +
		`"fx_active":false,"fx_type":"punch","lfo_active":true,"lfo_type":"element"}`
	path := audiotest.NewContainer().
		Metadata(doc).
		WriteFile(t, "synth.aif")

	md, err := ExtractMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if md == nil {
		t.Fatal("ExtractMetadata() = nil, want metadata")
	}

	if md.Engine != EngineCluster {
		t.Errorf("Engine = %q, want cluster", md.Engine)
	}
	if md.Octave != -1 {
		t.Errorf("Octave = %d, want -1", md.Octave)
	}
	if md.Version != 3 {
		t.Errorf("Version = %d, want 3", md.Version)
	}
	if !md.ModOn || md.ModSource != "element" {
		t.Errorf("ModSource = %q/%v, want element/true", md.ModSource, md.ModOn)
	}
}

func TestExtractMetadata_UnknownTypeTag(t *testing.T) {
	t.Parallel()

	path := audiotest.NewContainer().
		Metadata(`{"type":"theremin","name":"odd"}`).
		WriteFile(t, "odd.aif")

	md, err := ExtractMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if md == nil {
		t.Fatal("ExtractMetadata() = nil, want metadata")
	}
	if md.Engine != EngineUnknown {
		t.Errorf("Engine = %q, want unknown", md.Engine)
	}
}

func TestExtractMetadata_TrailingPadding(t *testing.T) {
	t.Parallel()

	doc := `{"type":"fm","name":"bell"}` + "\x00\x00  \x00"
	path := audiotest.NewContainer().
		Metadata(doc).
		WriteFile(t, "padded.aif")

	md, err := ExtractMetadata(path)
	if err != nil {
		t.Fatal(err)
	}
	if md == nil || md.Engine != EngineFM {
		t.Fatalf("metadata = %+v, want fm engine", md)
	}
}

func TestExtractMetadata_SoftAbsence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(t *testing.T) string
	}{
		{
			name: "no metadata chunk",
			build: func(t *testing.T) string {
				return audiotest.NewContainer().
					Chunk("COMM", make([]byte, 18)).
					WriteFile(t, "nometa.aif")
			},
		},
		{
			name: "foreign signature",
			build: func(t *testing.T) string {
				return audiotest.NewContainer().
					Chunk("APPL", []byte(`ab12{"type":"drum"}`)).
					WriteFile(t, "foreign.aif")
			},
		},
		{
			name: "malformed document",
			build: func(t *testing.T) string {
				return audiotest.NewContainer().
					Metadata(`{"type":`).
					WriteFile(t, "badjson.aif")
			},
		},
		{
			name: "chunk shorter than signature",
			build: func(t *testing.T) string {
				return audiotest.NewContainer().
					Chunk("APPL", []byte("op")).
					WriteFile(t, "short.aif")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := ExtractMetadata(tt.build(t))
			if err != nil {
				t.Fatalf("ExtractMetadata() error = %v, want nil", err)
			}
			if md != nil {
				t.Errorf("ExtractMetadata() = %+v, want nil", md)
			}
		})
	}
}

func TestExtractMetadata_OpenErrors(t *testing.T) {
	t.Parallel()

	if _, err := ExtractMetadata(filepath.Join(t.TempDir(), "gone.aif")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.aif")
	if err := os.WriteFile(bad, []byte("MTHDnot a sampler file"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractMetadata(bad); !errors.Is(err, container.ErrNotContainer) {
		t.Errorf("non-container error = %v, want ErrNotContainer", err)
	}
}

func TestParseEngine(t *testing.T) {
	t.Parallel()

	if got := ParseEngine(" Voltage "); got != EngineVoltage {
		t.Errorf("ParseEngine(Voltage) = %q, want voltage", got)
	}
	if got := ParseEngine(""); got != EngineUnknown {
		t.Errorf("ParseEngine(empty) = %q, want unknown", got)
	}
	if got := ParseEngine("discrete-synth"); got != EngineDiscreteSynth {
		t.Errorf("ParseEngine(discrete-synth) = %q, want discrete-synth", got)
	}
}
