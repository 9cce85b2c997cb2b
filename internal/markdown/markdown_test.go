package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML_BasicMarkup(t *testing.T) {
	out, err := ToHTML([]byte("# Heading\n\nSome *emphasis* and a [link](/blog/a/).\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<em>emphasis</em>")
	assert.Contains(t, html, `<a href="/blog/a/">link</a>`)
}

func TestToHTML_GFMTable(t *testing.T) {
	out, err := ToHTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}

func TestToHTML_EmptyBody(t *testing.T) {
	out, err := ToHTML(nil)
	require.NoError(t, err)
	assert.Empty(t, string(out))
}
