package content

import (
	"strings"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/header"
)

// Parse parses one content unit into a Document.
//
// Parsing is a pure function of the unit's content and source identifier; it
// never touches the filesystem. Errors are classified under CategoryParse and
// unwrap to ErrMissingHeader or *InvalidFieldError for inspection.
func Parse(unit Unit) (*Document, error) {
	raw, body, had, style, err := header.Split(unit.Content)
	if err != nil || !had {
		cause := ErrMissingHeader
		if err != nil {
			cause = err
		}
		return nil, ferrors.WrapError(cause, ferrors.CategoryParse, "missing header block").
			WithContext("source", unit.Source).
			Build()
	}

	assignments, err := header.ParseAssignments(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "malformed header block").
			WithContext("source", unit.Source).
			Build()
	}

	hdr, err := buildHeader(assignments)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "invalid header field").
			WithContext("source", unit.Source).
			Build()
	}

	bodyCopy := append([]byte(nil), body...)
	stream, _ := splitSegmentSource(unit.Source)

	return &Document{
		Slug:   DeriveSlug(unit.Source),
		Source: unit.Source,
		Stream: stream,
		Header: hdr,
		Body:   bodyCopy,
		Style:  style,
	}, nil
}

// buildHeader converts raw assignments into a typed Header, validating the
// known fields. Later assignments win on duplicate keys.
func buildHeader(assignments []header.Assignment) (Header, error) {
	hdr := Header{Extra: map[string]header.Value{}}
	seen := map[string]bool{}

	for _, a := range assignments {
		v := a.Value
		seen[a.Key] = true
		switch a.Key {
		case "title":
			if v.Kind != header.KindString {
				return hdr, &InvalidFieldError{Field: "title", Reason: "expected a quoted string"}
			}
			hdr.Title = v.Str
		case "date":
			if v.Kind != header.KindDate {
				return hdr, &InvalidFieldError{Field: "date", Reason: "expected date(\"...\") with a parseable timestamp"}
			}
			hdr.Date = v.Time
		case "author":
			if v.Kind != header.KindString {
				return hdr, &InvalidFieldError{Field: "author", Reason: "expected a quoted string"}
			}
			hdr.Author = v.Str
		case "layout":
			if v.Kind != header.KindString {
				return hdr, &InvalidFieldError{Field: "layout", Reason: "expected a quoted string"}
			}
			hdr.Layout = v.Str
		case "draft":
			if v.Kind != header.KindBool {
				return hdr, &InvalidFieldError{Field: "draft", Reason: "expected true or false"}
			}
			hdr.Draft = v.Bool
		case "series":
			if v.Kind != header.KindString {
				return hdr, &InvalidFieldError{Field: "series", Reason: "expected a quoted string"}
			}
			hdr.Series = v.Str
		default:
			hdr.Extra[a.Key] = v
		}
	}

	if !seen["title"] || strings.TrimSpace(hdr.Title) == "" {
		return hdr, &InvalidFieldError{Field: "title", Reason: "required and must be non-empty"}
	}
	if !seen["date"] {
		return hdr, &InvalidFieldError{Field: "date", Reason: "required"}
	}
	if !seen["layout"] || strings.TrimSpace(hdr.Layout) == "" {
		return hdr, &InvalidFieldError{Field: "layout", Reason: "required and must be non-empty"}
	}

	return hdr, nil
}
