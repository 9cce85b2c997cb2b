package header

import (
	"bytes"
	"sort"
	"strings"
	"time"
)

// Serialize renders assignments back into header block content (without
// delimiters).
//
// Determinism: assignments are emitted in sorted key order to keep output
// stable regardless of input order. Newlines follow the provided Style
// (defaults to \n). If assignments is empty, Serialize returns an empty slice.
func Serialize(assignments []Assignment, style Style) []byte {
	if len(assignments) == 0 {
		return []byte{}
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var buf bytes.Buffer
	for _, a := range sorted {
		buf.WriteString(a.Key)
		buf.WriteString(" = ")
		buf.WriteString(formatValue(a.Value))
		buf.WriteString(nl)
	}
	return buf.Bytes()
}

func formatValue(v Value) string {
	switch v.Kind {
	case KindString:
		return quote(v.Str)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindDate:
		return `date(` + quote(v.Time.UTC().Format(time.RFC3339)) + `)`
	default:
		return v.Raw
	}
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
