// SPDX-License-Identifier: EPL-2.0

package patch

import (
	"github.com/opforge/optape/container"
)

// DrumKit is a drum patch ready for slicing: its raw sample block and
// the per-pad boundaries the hardware recorded. Boundaries are in the
// device's internal sample units, not byte offsets; Slices performs the
// conversion.
type DrumKit struct {
	Name   string
	Engine Engine

	Data  []byte
	Start []int64
	End   []int64
}

// Pads returns the number of pad slots the kit defines.
func (k *DrumKit) Pads() int {
	return len(k.Start)
}

// ExtractDrumKit opens the patch container at path and collects both the
// metadata chunk and the sample data chunk in a single pass over the
// chunk list, short-circuiting once both are found. It returns
// (nil, nil) unless both chunks are present and the document carries
// parallel, non-empty start and end boundary arrays. Only opening the
// container can fail.
func ExtractDrumKit(path string) (*DrumKit, error) {
	c, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	var (
		doc  *document
		data []byte
	)

	sc := c.Scan()
	for sc.Next() && (doc == nil || data == nil) {
		ch := sc.Chunk()
		switch ch.ID {
		case MetadataChunkID:
			if doc != nil {
				continue
			}
			body := make([]byte, ch.Size)
			if _, err := c.ReadAt(body, ch.Offset); err != nil {
				return nil, nil
			}
			if d, ok := decodeDocument(body); ok {
				doc = d
			}

		case container.DataChunkID:
			if data != nil || ch.Size < dataSubHeaderSize {
				continue
			}
			// Skip the offset/block-size sub-header preceding the
			// sample bytes.
			data = make([]byte, ch.Size-dataSubHeaderSize)
			if _, err := c.ReadAt(data, ch.Offset+dataSubHeaderSize); err != nil {
				return nil, nil
			}
		}
	}

	if doc == nil || data == nil {
		return nil, nil
	}
	if len(doc.Start) == 0 || len(doc.Start) != len(doc.End) {
		return nil, nil
	}

	engine := EngineDrum
	if doc.DrumVersion == nil && ParseEngine(doc.Type) != EngineDrum {
		engine = ParseEngine(doc.Type)
	}

	return &DrumKit{
		Name:   doc.Name,
		Engine: engine,
		Data:   data,
		Start:  doc.Start,
		End:    doc.End,
	}, nil
}

// dataSubHeaderSize mirrors the sub-header the data chunk carries before
// its sample bytes.
const dataSubHeaderSize = 8
