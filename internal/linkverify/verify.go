package linkverify

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
)

// Problem is one internal link that does not resolve to an emitted page.
type Problem struct {
	Page string // output path of the page containing the link
	URL  string // the unresolved link target
}

func (p Problem) String() string {
	return fmt.Sprintf("%s -> %s", p.Page, p.URL)
}

// VerifyInternal checks every internal link in the rendered pages against the
// set of emitted output paths. pages maps output path to rendered HTML.
// Problems come back sorted by page then target for stable reporting.
func VerifyInternal(pages map[string][]byte, baseURL string) ([]Problem, error) {
	emitted := make(map[string]bool, len(pages))
	for p := range pages {
		emitted[p] = true
	}

	var problems []Problem
	for page, content := range pages {
		links, err := ExtractLinksFromReader(bytes.NewReader(content), baseURL)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			if !link.IsInternal {
				continue
			}
			if !resolves(link.URL, emitted) {
				problems = append(problems, Problem{Page: page, URL: link.URL})
			}
		}
	}

	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Page != problems[j].Page {
			return problems[i].Page < problems[j].Page
		}
		return problems[i].URL < problems[j].URL
	})
	return problems, nil
}

// resolves normalizes a link target into candidate output paths and checks
// membership. `/blog/a/` resolves to `/blog/a/index.html`; `/blog/a` tries
// both the bare path and the directory index.
func resolves(raw string, emitted map[string]bool) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	target := path.Clean(u.Path)
	if target == "." || target == "/" {
		return true
	}

	candidates := []string{target}
	if strings.HasSuffix(u.Path, "/") {
		candidates = []string{target + "/index.html"}
	} else if path.Ext(target) == "" {
		candidates = append(candidates, target+"/index.html")
	}

	for _, c := range candidates {
		if emitted[c] {
			return true
		}
	}
	return false
}
