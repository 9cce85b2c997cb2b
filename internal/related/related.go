// Package related ranks documents by relevance to a given document.
//
// The heuristic favors explicit same-series tagging (including segments split
// out of the same source stream) and recency proximity. Results are bounded
// and never padded: if fewer documents qualify, fewer come back.
package related

import (
	"math"
	"sort"

	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/repository"
)

// seriesWeight dominates recency so explicit grouping always outranks
// accidental date neighbors.
const seriesWeight = 1000.0

type scored struct {
	doc   *content.Document
	score float64
}

// Resolve returns up to maxCount non-draft documents related to doc, most
// relevant first, ties broken by slug ascending. doc itself is never
// included. maxCount <= 0 returns an empty slice.
func Resolve(repo *repository.Repository, doc *content.Document, maxCount int) []*content.Document {
	if maxCount <= 0 {
		return nil
	}

	var candidates []scored
	for _, other := range repo.All() {
		if other.Slug == doc.Slug || other.Header.Draft {
			continue
		}
		candidates = append(candidates, scored{doc: other, score: score(doc, other)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].doc.Slug < candidates[j].doc.Slug
	})

	if maxCount > len(candidates) {
		maxCount = len(candidates)
	}
	out := make([]*content.Document, 0, maxCount)
	for _, c := range candidates[:maxCount] {
		out = append(out, c.doc)
	}
	return out
}

// Slugs projects a related set onto document identities.
func Slugs(docs []*content.Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.Slug
	}
	return out
}

func score(doc, other *content.Document) float64 {
	s := recencyProximity(doc, other)
	if sameSeries(doc, other) {
		s += seriesWeight
	}
	return s
}

// sameSeries matches on the explicit series tag, or on segments that were
// split out of the same ingested stream.
func sameSeries(doc, other *content.Document) bool {
	if doc.Header.Series != "" && doc.Header.Series == other.Header.Series {
		return true
	}
	return doc.Stream != "" && doc.Stream == other.Stream
}

// recencyProximity decays from 1 toward 0 as the dates drift apart.
func recencyProximity(doc, other *content.Document) float64 {
	days := math.Abs(doc.Header.Date.Sub(other.Header.Date).Hours()) / 24
	return 1 / (1 + days)
}
