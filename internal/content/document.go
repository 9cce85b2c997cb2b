package content

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"git.home.luguber.info/inful/blogforge/internal/header"
)

// Unit is one raw content unit: the bytes of a source document plus the
// path-like source identifier used for slug derivation and diagnostics.
type Unit struct {
	Source  string
	Content []byte
}

// Header holds the typed metadata block of a document. Unknown keys are kept
// in Extra so they survive rewriting.
type Header struct {
	Title  string
	Date   time.Time
	Author string
	Layout string
	Draft  bool
	// Series groups documents for related-content ranking. Optional.
	Series string
	Extra  map[string]header.Value
}

// Document is one parsed content unit. The slug is derived deterministically
// from the source identifier and is unique within a store.
type Document struct {
	Slug   string
	Source string
	// Stream is the source identifier without any segment suffix; documents
	// split out of the same stream share it.
	Stream string
	Header Header
	Body   []byte
	Style  header.Style
}

// ErrMissingHeader indicates a unit without a recognizable header block.
var ErrMissingHeader = errors.New("content unit has no header block")

// InvalidFieldError reports a required field that is absent or a typed value
// that cannot be converted.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid header field %q: %s", e.Field, e.Reason)
}

// Is lets errors.Is match on the field name alone.
func (e *InvalidFieldError) Is(target error) bool {
	if other, ok := target.(*InvalidFieldError); ok {
		return e.Field == other.Field
	}
	return false
}

// Assignments renders the header back into assignment form, typed fields
// first-class and Extra values verbatim. Used for round-trip serialization.
func (h Header) Assignments() []header.Assignment {
	assignments := []header.Assignment{
		{Key: "title", Value: header.Value{Kind: header.KindString, Str: h.Title}},
		{Key: "date", Value: header.Value{Kind: header.KindDate, Time: h.Date}},
		{Key: "layout", Value: header.Value{Kind: header.KindString, Str: h.Layout}},
		{Key: "draft", Value: header.Value{Kind: header.KindBool, Bool: h.Draft}},
	}
	if h.Author != "" {
		assignments = append(assignments, header.Assignment{Key: "author", Value: header.Value{Kind: header.KindString, Str: h.Author}})
	}
	if h.Series != "" {
		assignments = append(assignments, header.Assignment{Key: "series", Value: header.Value{Kind: header.KindString, Str: h.Series}})
	}

	keys := make([]string, 0, len(h.Extra))
	for k := range h.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		assignments = append(assignments, header.Assignment{Key: k, Value: h.Extra[k]})
	}
	return assignments
}

// Bytes re-joins the serialized header and the body into full document bytes.
func (d *Document) Bytes() []byte {
	raw := header.Serialize(d.Header.Assignments(), d.Style)
	return header.Join(raw, d.Body, true, d.Style)
}
