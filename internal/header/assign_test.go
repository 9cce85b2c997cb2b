package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) []Assignment {
	t.Helper()
	assignments, err := ParseAssignments([]byte(raw))
	require.NoError(t, err)
	return assignments
}

func byKey(assignments []Assignment, key string) (Value, bool) {
	for _, a := range assignments {
		if a.Key == key {
			return a.Value, true
		}
	}
	return Value{}, false
}

func TestParseAssignments_TypedValues(t *testing.T) {
	raw := `
title = "The Silent Shift"
draft = false
date = date("2022-03-12T09:30:00Z")
`
	assignments := mustParse(t, raw)
	require.Len(t, assignments, 3)

	title, ok := byKey(assignments, "title")
	require.True(t, ok)
	assert.Equal(t, KindString, title.Kind)
	assert.Equal(t, "The Silent Shift", title.Str)

	draft, ok := byKey(assignments, "draft")
	require.True(t, ok)
	assert.Equal(t, KindBool, draft.Kind)
	assert.False(t, draft.Bool)

	date, ok := byKey(assignments, "date")
	require.True(t, ok)
	assert.Equal(t, KindDate, date.Kind)
	assert.Equal(t, time.Date(2022, 3, 12, 9, 30, 0, 0, time.UTC), date.Time)
}

func TestParseAssignments_DateOnlyConstructor(t *testing.T) {
	date, ok := byKey(mustParse(t, `date = date("2025-07-19")`), "date")
	require.True(t, ok)
	assert.Equal(t, KindDate, date.Kind)
	assert.Equal(t, time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC), date.Time)
}

func TestParseAssignments_TrailingCommaTolerated(t *testing.T) {
	raw := "title = \"A\",\ndraft = true,\n"
	assignments := mustParse(t, raw)

	title, _ := byKey(assignments, "title")
	assert.Equal(t, "A", title.Str)
	draft, _ := byKey(assignments, "draft")
	assert.True(t, draft.Bool)
}

func TestParseAssignments_CommentsAndBlanksSkipped(t *testing.T) {
	raw := "# publishing metadata\n\ntitle = \"A\"\n"
	assignments := mustParse(t, raw)
	require.Len(t, assignments, 1)
}

func TestParseAssignments_StringEscapes(t *testing.T) {
	title, _ := byKey(mustParse(t, `title = "He said \"go\"\\now"`), "title")
	assert.Equal(t, KindString, title.Kind)
	assert.Equal(t, "He said \"go\"\\now", title.Str)
}

func TestParseAssignments_UnknownShapeKeptRaw(t *testing.T) {
	cases := map[string]string{
		"weight = 42":                  "42",
		"tags = [\"a\", \"b\"]":        "[\"a\", \"b\"]",
		"date = date(\"not-a-date\")":  "date(\"not-a-date\")",
		"title = \"unterminated":       "\"unterminated",
	}
	for raw, want := range cases {
		assignments := mustParse(t, raw)
		require.Len(t, assignments, 1, raw)
		assert.Equal(t, KindRaw, assignments[0].Value.Kind, raw)
		assert.Equal(t, want, assignments[0].Value.Raw, raw)
	}
}

func TestParseAssignments_MalformedLine_ReturnsSyntaxError(t *testing.T) {
	cases := []string{
		"just words without equals",
		"= \"no key\"",
		"title =",
		"two words = \"bad key\"",
	}
	for _, raw := range cases {
		_, err := ParseAssignments([]byte(raw))
		require.Error(t, err, raw)
		var syn *SyntaxError
		require.ErrorAs(t, err, &syn, raw)
		assert.Equal(t, 1, syn.Line, raw)
	}
}

func TestParseAssignments_OrderInsensitive(t *testing.T) {
	a := mustParse(t, "title = \"A\"\ndraft = true\n")
	b := mustParse(t, "draft = true\ntitle = \"A\"\n")

	va, _ := byKey(a, "title")
	vb, _ := byKey(b, "title")
	assert.Equal(t, va, vb)
}

func TestSerialize_RoundTripEquivalence(t *testing.T) {
	raw := "title = \"The Silent Shift\"\ndate = date(\"2022-03-12T09:30:00Z\")\ndraft = false\nweight = 42\n"
	first := mustParse(t, raw)

	out := Serialize(first, Style{Newline: "\n"})
	second, err := ParseAssignments(out)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for _, a := range first {
		v, ok := byKey(second, a.Key)
		require.True(t, ok, a.Key)
		assert.Equal(t, a.Value, v, a.Key)
	}
}

func TestSerialize_DeterministicKeyOrder(t *testing.T) {
	assignments := mustParse(t, "zeta = \"z\"\nalpha = \"a\"\n")
	out := string(Serialize(assignments, Style{}))
	assert.Equal(t, "alpha = \"a\"\nzeta = \"z\"\n", out)
}

func TestSerialize_Empty(t *testing.T) {
	assert.Empty(t, Serialize(nil, Style{}))
}
