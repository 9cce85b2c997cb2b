package content

import (
	"bytes"
	"fmt"
)

// SplitPolicy decides how a related-document boundary marker inside a stream
// is treated.
type SplitPolicy string

const (
	// PolicySplit cuts the stream at each marker; every segment becomes an
	// independent unit with its own header. Default.
	PolicySplit SplitPolicy = "split"
	// PolicyKeep leaves the marker in place as body content of one document.
	PolicyKeep SplitPolicy = "keep"
)

// BoundaryMarker is the line that separates logically distinct documents
// within one ingested stream.
const BoundaryMarker = "<<<related>>>"

// SplitStream expands one raw stream into content units according to the
// split policy. Under PolicySplit, segment N >= 2 gets the source identifier
// `<source>#N` so slug derivation stays deterministic per segment.
func SplitStream(source string, raw []byte, policy SplitPolicy) []Unit {
	if policy == PolicyKeep {
		return []Unit{{Source: source, Content: raw}}
	}

	segments := cutOnMarker(raw)
	units := make([]Unit, 0, len(segments))
	for i, seg := range segments {
		id := source
		if i > 0 {
			id = fmt.Sprintf("%s#%d", source, i+1)
		}
		units = append(units, Unit{Source: id, Content: seg})
	}
	return units
}

// cutOnMarker splits raw content at lines consisting solely of the boundary
// marker. The marker lines themselves are dropped.
func cutOnMarker(raw []byte) [][]byte {
	var segments [][]byte
	var current []byte
	start := 0

	offset := 0
	for offset <= len(raw) {
		idx := bytes.IndexByte(raw[offset:], '\n')
		var lineEnd int
		if idx < 0 {
			lineEnd = len(raw)
		} else {
			lineEnd = offset + idx
		}

		line := bytes.TrimRight(raw[offset:lineEnd], "\r")
		if string(bytes.TrimSpace(line)) == BoundaryMarker {
			current = raw[start:offset]
			segments = append(segments, current)
			start = lineEnd + 1
		}

		if idx < 0 {
			break
		}
		offset = lineEnd + 1
	}

	if start <= len(raw) {
		segments = append(segments, raw[start:])
	}

	if len(segments) == 0 {
		return [][]byte{raw}
	}
	return segments
}
