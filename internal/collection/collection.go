// Package collection derives ordered, filtered views over a repository.
//
// Views are pure projections: building the same view twice over the same
// repository yields an identical sequence, and no view ever mutates the
// underlying documents.
package collection

import (
	"sort"

	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/repository"
)

// SortKey selects the primary ordering of a view.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
	SortBySlug  SortKey = "slug"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Predicate decides membership of a document in a view.
type Predicate func(*content.Document) bool

// Published matches non-draft documents. This is the default predicate for
// public listings.
func Published(doc *content.Document) bool {
	return !doc.Header.Draft
}

// All matches every document; used by preview builds that include drafts.
func All(*content.Document) bool {
	return true
}

// View is an ordered sequence of borrowed document references.
type View struct {
	docs []*content.Document
}

// New builds a view over the repository with the given predicate, sort key
// and direction. Ties always break by slug ascending so the ordering is total
// and deterministic regardless of input order.
func New(repo *repository.Repository, pred Predicate, key SortKey, dir Direction) View {
	if pred == nil {
		pred = Published
	}

	var docs []*content.Document
	for _, doc := range repo.All() {
		if pred(doc) {
			docs = append(docs, doc)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return less(docs[i], docs[j], key, dir)
	})

	return View{docs: docs}
}

// PublishedByDate is the default public listing: non-draft documents, most
// recent first.
func PublishedByDate(repo *repository.Repository) View {
	return New(repo, Published, SortByDate, Descending)
}

func less(a, b *content.Document, key SortKey, dir Direction) bool {
	var cmp int
	switch key {
	case SortByTitle:
		cmp = compareStrings(a.Header.Title, b.Header.Title)
	case SortBySlug:
		cmp = compareStrings(a.Slug, b.Slug)
	default:
		cmp = a.Header.Date.Compare(b.Header.Date)
	}

	if cmp == 0 {
		// Tie break is slug ascending independent of direction.
		return a.Slug < b.Slug
	}
	if dir == Descending {
		return cmp > 0
	}
	return cmp < 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Docs returns the documents of the view in order. The slice is a copy; the
// documents are borrowed from the repository.
func (v View) Docs() []*content.Document {
	out := make([]*content.Document, len(v.docs))
	copy(out, v.docs)
	return out
}

// Len returns the number of documents in the view.
func (v View) Len() int {
	return len(v.docs)
}

// Page slices the view to [offset, offset+limit) without re-querying the
// repository. A limit < 0 means "to the end". Out-of-range offsets yield an
// empty view.
func (v View) Page(offset, limit int) View {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(v.docs) {
		return View{}
	}
	end := len(v.docs)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return View{docs: v.docs[offset:end]}
}
