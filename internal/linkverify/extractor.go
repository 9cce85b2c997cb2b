// Package linkverify checks links in rendered pages against the set of pages
// a build actually emitted.
package linkverify

import (
	"io"
	"net/url"

	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Tag        string // HTML tag (a, img, script, link)
	Attribute  string // Attribute containing the link (href, src)
	IsInternal bool   // True if the link targets the site itself
}

// linkAttrs maps tags to the attribute that carries their target.
var linkAttrs = map[string]string{
	"a":      "href",
	"img":    "src",
	"link":   "href",
	"script": "src",
}

// ExtractLinksFromReader extracts all links from an HTML reader.
//
// baseURL is the site's base; links under it (or site-relative paths) are
// marked internal.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "failed to parse HTML").Build()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid base URL").
			WithContext("base_url", baseURL).
			Build()
	}

	var links []*Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				for _, a := range n.Attr {
					if a.Key != attr || a.Val == "" {
						continue
					}
					links = append(links, &Link{
						URL:        a.Val,
						Tag:        n.Data,
						Attribute:  attr,
						IsInternal: isInternal(a.Val, base),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

func isInternal(raw string, base *url.URL) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		// site-relative or fragment-only
		return u.Path != ""
	}
	return base.Host != "" && u.Host == base.Host
}
