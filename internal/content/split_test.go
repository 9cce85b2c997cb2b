package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSegmentStream = `+++
title = "First"
date = date("2022-03-12")
layout = "post"
series = "s"
+++
First body.
<<<related>>>
+++
title = "Second"
date = date("2022-04-01")
layout = "post"
series = "s"
+++
Second body.
`

func TestSplitStream_PolicySplit_CutsAtMarker(t *testing.T) {
	units := SplitStream("posts/stream.md", []byte(twoSegmentStream), PolicySplit)
	require.Len(t, units, 2)

	assert.Equal(t, "posts/stream.md", units[0].Source)
	assert.Equal(t, "posts/stream.md#2", units[1].Source)
	assert.NotContains(t, string(units[0].Content), BoundaryMarker)
	assert.NotContains(t, string(units[1].Content), BoundaryMarker)

	first, err := Parse(units[0])
	require.NoError(t, err)
	second, err := Parse(units[1])
	require.NoError(t, err)

	assert.Equal(t, "stream", first.Slug)
	assert.Equal(t, "stream-2", second.Slug)
	assert.Equal(t, first.Stream, second.Stream)
	assert.Equal(t, "First", first.Header.Title)
	assert.Equal(t, "Second", second.Header.Title)
}

func TestSplitStream_PolicyKeep_SingleUnitWithMarker(t *testing.T) {
	units := SplitStream("posts/stream.md", []byte(twoSegmentStream), PolicyKeep)
	require.Len(t, units, 1)
	assert.Contains(t, string(units[0].Content), BoundaryMarker)
}

func TestSplitStream_NoMarker_SingleUnit(t *testing.T) {
	units := SplitStream("posts/a.md", []byte("+++\n+++\nbody\n"), PolicySplit)
	require.Len(t, units, 1)
	assert.Equal(t, "posts/a.md", units[0].Source)
}

func TestSplitStream_MarkerWithSurroundingWhitespace(t *testing.T) {
	raw := "first\n  <<<related>>>  \nsecond\n"
	units := SplitStream("posts/s.md", []byte(raw), PolicySplit)
	require.Len(t, units, 2)
	assert.Equal(t, "first\n", string(units[0].Content))
	assert.Equal(t, "second\n", string(units[1].Content))
}

func TestSplitStream_ThreeSegments(t *testing.T) {
	raw := "a\n<<<related>>>\nb\n<<<related>>>\nc\n"
	units := SplitStream("posts/s.md", []byte(raw), PolicySplit)
	require.Len(t, units, 3)
	assert.Equal(t, "posts/s.md#3", units[2].Source)
	assert.Equal(t, "c\n", string(units[2].Content))
}
