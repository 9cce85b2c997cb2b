package content

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// splitSegmentSource separates a `path#N` segment identifier into the stream
// path and the 1-based segment number (1 when no suffix is present).
func splitSegmentSource(source string) (stream string, segment int) {
	base, suffix, found := strings.Cut(source, "#")
	if !found {
		return source, 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 2 {
		return source, 1
	}
	return base, n
}

// DeriveSlug derives the document identity from a source identifier.
//
// The stem is the filename without extension; index files take their parent
// directory name instead. A `#N` segment suffix becomes a `-N` slug suffix.
// The result is pure in the source identifier: same input, same slug.
func DeriveSlug(source string) string {
	stream, segment := splitSegmentSource(source)

	p := path.Clean(strings.ReplaceAll(stream, "\\", "/"))
	base := path.Base(p)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "index" || stem == "_index" {
		if dir := path.Base(path.Dir(p)); dir != "." && dir != "/" {
			stem = dir
		}
	}

	slug := normalizeSlug(stem)
	if slug == "" {
		slug = "untitled"
	}
	if segment > 1 {
		slug = fmt.Sprintf("%s-%d", slug, segment)
	}
	return slug
}

// stripMarks removes combining marks after NFD decomposition, so accented
// characters reduce to their ASCII base where one exists.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeSlug(s string) string {
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
