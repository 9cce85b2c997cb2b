package header

import (
	"bytes"
	"errors"
)

// delimiter is the marker line that opens and closes a header block.
const delimiter = "+++"

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline shape and does not attempt to preserve
// original assignment formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the unit started with a header
// delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("header start delimiter found but closing delimiter is missing")

// Split separates the `+++` delimited header block from the body.
//
// The opening delimiter must be the first non-blank line of the unit. If the
// unit does not start with a delimiter, had is false and body is the full
// input.
func Split(content []byte) (header []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	lines := splitLines(content, style.Newline)

	// Skip leading blank lines before the opening delimiter.
	start := 0
	for start < len(lines) && isBlankLine(lines[start].text) {
		start++
	}
	if start >= len(lines) || !isDelimiterLine(lines[start].text) {
		return nil, content, false, style, nil
	}

	for i := start + 1; i < len(lines); i++ {
		if !isDelimiterLine(lines[i].text) {
			continue
		}
		headerStart := lines[start].end
		headerEnd := lines[i].start
		bodyStart := lines[i].end
		return content[headerStart:headerEnd], content[bodyStart:], true, style, nil
	}

	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a unit from raw header and body.
//
// If had is false, Join returns body as-is. Otherwise it emits the header
// between `+++` delimiter lines using the newline style captured in Style.
func Join(header []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	open := []byte(delimiter + nl)
	closing := []byte(delimiter + nl)

	out := make([]byte, 0, len(open)+len(header)+len(closing)+len(body))
	out = append(out, open...)
	out = append(out, header...)
	if len(header) > 0 && !bytes.HasSuffix(header, []byte(nl)) {
		out = append(out, nl...)
	}
	out = append(out, closing...)
	out = append(out, body...)
	return out
}

// line records one physical line and its byte offsets within the input.
// end points past the trailing newline so slicing stays allocation-free.
type line struct {
	text  []byte
	start int
	end   int
}

func splitLines(content []byte, nl string) []line {
	var lines []line
	offset := 0
	for offset < len(content) {
		idx := bytes.IndexByte(content[offset:], '\n')
		if idx < 0 {
			lines = append(lines, line{text: content[offset:], start: offset, end: len(content)})
			break
		}
		end := offset + idx + 1
		text := content[offset : end-1]
		if nl == "\r\n" && len(text) > 0 && text[len(text)-1] == '\r' {
			text = text[:len(text)-1]
		}
		lines = append(lines, line{text: text, start: offset, end: end})
		offset = end
	}
	return lines
}

func isDelimiterLine(text []byte) bool {
	return string(bytes.TrimRight(text, " \t")) == delimiter
}

func isBlankLine(text []byte) bool {
	return len(bytes.TrimSpace(text)) == 0
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
