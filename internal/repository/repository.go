// Package repository holds the in-memory document set for one build cycle.
//
// A Repository is created empty, populated once by Ingest, and read-only from
// then on. Downstream consumers (collections, related-content, rendering)
// borrow documents and must not outlive the build.
package repository

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"git.home.luguber.info/inful/blogforge/internal/content"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
)

// Repository is the frozen document set of one build. All accessors are safe
// for concurrent use; nothing mutates after Ingest returns.
type Repository struct {
	bySlug map[string]*content.Document
	order  []*content.Document
}

// Options tunes ingestion.
type Options struct {
	// Workers caps concurrent unit parsing. Values < 1 select a default.
	Workers int
	// DefaultAuthor fills the author field of documents that omit it.
	DefaultAuthor string
}

const defaultWorkers = 4

// DuplicateIdentityError reports two units resolving to the same slug. It is
// fatal to the build: ambiguous routing must not be silently resolved.
type DuplicateIdentityError struct {
	Slug         string
	FirstSource  string
	SecondSource string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity %q: %s and %s", e.Slug, e.FirstSource, e.SecondSource)
}

// AggregateError collects per-unit parse failures. The batch continues past
// them; the caller decides what to do with the report.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d unit(s) failed to parse: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is/As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Ingest parses units concurrently and merges them into a new Repository.
//
// Per-unit parse failures do not abort the batch: the returned Repository
// contains every unit that parsed, and the failures come back as an
// *AggregateError alongside it. A duplicate identity is fatal: Ingest returns
// a nil Repository and a classified content error wrapping
// *DuplicateIdentityError, naming both conflicting sources.
func Ingest(units []content.Unit, opts Options) (*Repository, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	if workers > len(units) {
		workers = len(units)
	}

	// Parse phase: embarrassingly parallel, results land at the unit's index
	// so merge order stays the input order regardless of scheduling.
	docs := make([]*content.Document, len(units))
	parseErrs := make([]error, len(units))

	var wg sync.WaitGroup
	indexes := make(chan int)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				docs[i], parseErrs[i] = content.Parse(units[i])
			}
		}()
	}
	for i := range units {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Merge phase: single writer, insert-if-absent.
	repo := &Repository{bySlug: make(map[string]*content.Document, len(units))}
	var failed []error
	for i, doc := range docs {
		if parseErrs[i] != nil {
			slog.Warn("Skipping unparseable unit",
				logfields.Source(units[i].Source),
				logfields.Error(parseErrs[i]))
			failed = append(failed, parseErrs[i])
			continue
		}

		if doc.Header.Author == "" {
			doc.Header.Author = opts.DefaultAuthor
		}

		if existing, ok := repo.bySlug[doc.Slug]; ok {
			dup := &DuplicateIdentityError{
				Slug:         doc.Slug,
				FirstSource:  existing.Source,
				SecondSource: doc.Source,
			}
			return nil, ferrors.WrapError(dup, ferrors.CategoryContent, "duplicate document identity").
				Fatal().
				WithContext("slug", doc.Slug).
				WithContext("source", doc.Source).
				Build()
		}
		repo.bySlug[doc.Slug] = doc
		repo.order = append(repo.order, doc)
	}

	slog.Info("Ingestion complete",
		logfields.Count(len(repo.order)),
		slog.Int("failed", len(failed)))

	if len(failed) > 0 {
		return repo, &AggregateError{Errors: failed}
	}
	return repo, nil
}

// Get returns the document with the given identity.
func (r *Repository) Get(slug string) (*content.Document, bool) {
	doc, ok := r.bySlug[slug]
	return doc, ok
}

// All returns every document in insertion order. The order is stable but not
// meaningful for display; callers wanting display order go through a
// collection view. The returned slice is a copy; the documents are not.
func (r *Repository) All() []*content.Document {
	out := make([]*content.Document, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of documents in the repository.
func (r *Repository) Len() int {
	return len(r.order)
}
