package site

import (
	"bytes"
	"fmt"
	"html"

	"git.home.luguber.info/inful/blogforge/internal/markdown"
	"git.home.luguber.info/inful/blogforge/internal/render"
)

// HTMLEngine is the built-in layout engine: a plain page shell around the
// Goldmark-rendered body. It exists so the binary works standalone; real
// theming engines implement render.Engine externally.
type HTMLEngine struct {
	SiteTitle string
}

// Render implements render.Engine.
func (e *HTMLEngine) Render(req render.Request) ([]byte, error) {
	body, err := markdown.ToHTML(req.Body)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&buf, "<title>%s - %s</title>\n", html.EscapeString(req.Header.Title), html.EscapeString(e.SiteTitle))
	fmt.Fprintf(&buf, "<meta name=\"layout\" content=%q>\n", req.Layout)
	buf.WriteString("</head>\n<body>\n<article>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(req.Header.Title))
	fmt.Fprintf(&buf, "<p class=\"meta\"><time datetime=%q>%s</time>", req.Header.Date.Format("2006-01-02"), req.Header.Date.Format("January 2, 2006"))
	if req.Header.Author != "" {
		fmt.Fprintf(&buf, " · %s", html.EscapeString(req.Header.Author))
	}
	buf.WriteString("</p>\n")
	buf.Write(body)
	buf.WriteString("</article>\n</body>\n</html>\n")
	return buf.Bytes(), nil
}
