// Package render maps resolved documents to render requests for an external
// layout engine.
//
// The adapter's responsibility ends at producing complete, self-sufficient
// Request records; markup generation belongs to the engine behind the Engine
// interface.
package render

import (
	"slices"

	"git.home.luguber.info/inful/blogforge/internal/collection"
	"git.home.luguber.info/inful/blogforge/internal/content"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/repository"
)

// Request is the complete payload handed to the layout engine for one page.
type Request struct {
	Slug       string
	Layout     string
	Header     content.Header
	Body       []byte
	OutputPath string
}

// Engine turns one request into final page markup. Implementations live
// outside the core pipeline.
type Engine interface {
	Render(req Request) ([]byte, error)
}

// Scheme selects how output paths derive from document identity. Both schemes
// are injective given unique slugs.
type Scheme string

const (
	// SchemePretty emits /blog/<slug>/index.html.
	SchemePretty Scheme = "pretty"
	// SchemeFlat emits /<slug>.html.
	SchemeFlat Scheme = "flat"
)

// ErrorPolicy decides what a per-document render error does to the batch.
type ErrorPolicy string

const (
	PolicyAbort ErrorPolicy = "abort"
	PolicySkip  ErrorPolicy = "skip"
)

// Options configures request derivation.
type Options struct {
	Scheme Scheme
	// Layouts is the set of layout names the engine knows. Empty means no
	// restriction.
	Layouts []string
	// IncludeDrafts switches to the preview predicate.
	IncludeDrafts bool
	OnError       ErrorPolicy
}

// OutputPath derives the routing target for a slug under a scheme.
func OutputPath(scheme Scheme, slug string) string {
	if scheme == SchemeFlat {
		return "/" + slug + ".html"
	}
	return "/blog/" + slug + "/index.html"
}

// Requests produces one render request per eligible document, ordered like
// the public listing (date descending, slug ascending on ties).
//
// A document referencing an unknown layout yields a classified render error
// naming its source. Under PolicySkip the remaining documents still come
// through and all errors are returned; under PolicyAbort (default) the first
// error stops derivation with no requests.
func Requests(repo *repository.Repository, opts Options) ([]Request, []error) {
	pred := collection.Published
	if opts.IncludeDrafts {
		pred = collection.All
	}
	view := collection.New(repo, pred, collection.SortByDate, collection.Descending)

	var requests []Request
	var errs []error
	for _, doc := range view.Docs() {
		if len(opts.Layouts) > 0 && !slices.Contains(opts.Layouts, doc.Header.Layout) {
			err := ferrors.RenderError("unknown layout").
				WithContext("source", doc.Source).
				WithContext("layout", doc.Header.Layout).
				Build()
			if opts.OnError != PolicySkip {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}

		requests = append(requests, Request{
			Slug:       doc.Slug,
			Layout:     doc.Header.Layout,
			Header:     doc.Header,
			Body:       doc.Body,
			OutputPath: OutputPath(opts.Scheme, doc.Slug),
		})
	}

	return requests, errs
}
