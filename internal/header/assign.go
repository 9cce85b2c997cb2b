package header

import (
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the typed values the assignment grammar recognizes.
type Kind int

const (
	// KindRaw preserves value text verbatim for forward compatibility.
	KindRaw Kind = iota
	KindString
	KindBool
	KindDate
)

// Value is one typed assignment value.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	Time time.Time
	// Raw holds the verbatim value text for KindRaw values.
	Raw string
}

// Assignment is a single `key = value` line from a header block.
type Assignment struct {
	Key   string
	Value Value
}

// SyntaxError reports a malformed assignment line.
type SyntaxError struct {
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("header syntax error on line %d: %s", e.Line, e.Reason)
}

// dateLayouts are accepted inside a date("...") constructor, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAssignments parses raw header block content (without delimiters) into
// an ordered assignment list.
//
// Grammar: one `key = value` per line; blank lines and `#` comments are
// skipped; a single trailing comma after the value is tolerated. Values are a
// double-quoted string, a bare true/false, or a date("...") constructor.
// Anything else is preserved verbatim as a raw value so unknown keys can
// round-trip; typed validation of known fields is the caller's concern.
func ParseAssignments(raw []byte) ([]Assignment, error) {
	var assignments []Assignment

	for i, ln := range strings.Split(string(raw), "\n") {
		text := strings.TrimSpace(strings.TrimSuffix(ln, "\r"))
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		eq := strings.Index(text, "=")
		if eq < 0 {
			return nil, &SyntaxError{Line: i + 1, Reason: "expected key = value"}
		}

		key := strings.TrimSpace(text[:eq])
		if key == "" || strings.ContainsAny(key, " \t\"") {
			return nil, &SyntaxError{Line: i + 1, Reason: fmt.Sprintf("invalid key %q", key)}
		}

		valueText := strings.TrimSpace(text[eq+1:])
		if valueText == "" {
			return nil, &SyntaxError{Line: i + 1, Reason: fmt.Sprintf("missing value for key %q", key)}
		}

		assignments = append(assignments, Assignment{Key: key, Value: parseValue(valueText)})
	}

	return assignments, nil
}

// parseValue interprets a single value token. It never fails: text that does
// not match a typed form is kept raw and rejected later if the key is typed.
func parseValue(text string) Value {
	text = trimTrailingComma(text)

	if s, ok := unquote(text); ok {
		return Value{Kind: KindString, Str: s}
	}

	switch text {
	case "true":
		return Value{Kind: KindBool, Bool: true}
	case "false":
		return Value{Kind: KindBool, Bool: false}
	}

	if inner, ok := strings.CutPrefix(text, "date("); ok {
		if arg, ok := strings.CutSuffix(inner, ")"); ok {
			if s, ok := unquote(strings.TrimSpace(arg)); ok {
				for _, layout := range dateLayouts {
					if t, err := time.Parse(layout, s); err == nil {
						return Value{Kind: KindDate, Time: t.UTC()}
					}
				}
			}
		}
	}

	return Value{Kind: KindRaw, Raw: text}
}

// trimTrailingComma removes at most one trailing comma, but never from inside
// a quoted string.
func trimTrailingComma(text string) string {
	if !strings.HasSuffix(text, ",") {
		return text
	}
	if strings.HasPrefix(text, `"`) && !strings.HasSuffix(text, `",`) {
		// unterminated quote; the comma is part of the (malformed) literal
		return text
	}
	return strings.TrimSpace(strings.TrimSuffix(text, ","))
}

// unquote parses a double-quoted string literal with \" \\ \n \t escapes.
func unquote(text string) (string, bool) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}

	var b strings.Builder
	escaped := false
	inner := text[1 : len(text)-1]
	for _, r := range inner {
		if escaped {
			switch r {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				return "", false
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '"' {
			// embedded unescaped quote means the closing quote we matched was not the end
			return "", false
		}
		b.WriteRune(r)
	}
	if escaped {
		return "", false
	}
	return b.String(), true
}
