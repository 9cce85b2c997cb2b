package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_Defaults(t *testing.T) {
	err := NewError(CategoryParse, "invalid header field").Build()

	require.Equal(t, CategoryParse, err.Category())
	require.Equal(t, SeverityError, err.Severity())
	require.Equal(t, "invalid header field", err.Message())
	require.Nil(t, err.Cause())
	require.Contains(t, err.Error(), "[parse:error]")
}

func TestWrapError_PreservesCauseChain(t *testing.T) {
	cause := stderrors.New("boom")
	err := WrapError(cause, CategoryFileSystem, "failed to read unit").Build()

	require.Equal(t, cause, err.Cause())
	require.True(t, stderrors.Is(err, cause))
	require.Contains(t, err.Error(), "boom")
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	base := NewError(CategoryContent, "duplicate identity").Build()
	enriched := base.WithContext("slug", "the-silent-shift")

	_, ok := base.Context().Get("slug")
	require.False(t, ok)

	slug, ok := enriched.Context().GetString("slug")
	require.True(t, ok)
	require.Equal(t, "the-silent-shift", slug)
}

func TestBuilder_SeverityHelpers(t *testing.T) {
	require.Equal(t, SeverityFatal, ContentError("dup").Build().Severity())
	require.Equal(t, SeverityFatal, ConfigError("bad").Build().Severity())
	require.Equal(t, SeverityError, ParseError("bad field").Build().Severity())
	require.Equal(t, SeverityWarning, RenderError("skip").Warning().Build().Severity())
}

func TestHasCategory(t *testing.T) {
	err := ParseError("missing header").WithContext("source", "posts/a.md").Build()

	require.True(t, HasCategory(err, CategoryParse))
	require.False(t, HasCategory(err, CategoryRender))
	require.False(t, HasCategory(stderrors.New("plain"), CategoryParse))
}

func TestGetCategory_FallsBackToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	require.Equal(t, CategoryRender, GetCategory(RenderError("unknown layout").Build()))
}

func TestIs_MatchesCategoryAndMessage(t *testing.T) {
	a := ParseError("missing header").Build()
	b := ParseError("missing header").WithContext("source", "x").Build()
	c := ParseError("other").Build()

	require.True(t, stderrors.Is(a, b))
	require.False(t, stderrors.Is(a, c))
}
