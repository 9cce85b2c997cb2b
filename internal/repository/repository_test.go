package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/content"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

func unit(source, title, date string) content.Unit {
	raw := fmt.Sprintf("+++\ntitle = %q\ndate = date(%q)\nlayout = \"post\"\n+++\nbody of %s\n", title, date, title)
	return content.Unit{Source: source, Content: []byte(raw)}
}

func TestIngest_PopulatesRepositoryInInputOrder(t *testing.T) {
	units := []content.Unit{
		unit("posts/b.md", "B", "2022-03-12"),
		unit("posts/a.md", "A", "2025-07-19"),
		unit("posts/c.md", "C", "2023-01-01"),
	}

	repo, err := Ingest(units, Options{})
	require.NoError(t, err)
	require.Equal(t, 3, repo.Len())

	var slugs []string
	for _, doc := range repo.All() {
		slugs = append(slugs, doc.Slug)
	}
	assert.Equal(t, []string{"b", "a", "c"}, slugs)
}

func TestIngest_InputOrderStableAcrossWorkerCounts(t *testing.T) {
	var units []content.Unit
	for i := range 50 {
		units = append(units, unit(fmt.Sprintf("posts/p%02d.md", i), fmt.Sprintf("P%02d", i), "2024-01-02"))
	}

	for _, workers := range []int{1, 4, 16} {
		repo, err := Ingest(units, Options{Workers: workers})
		require.NoError(t, err)
		require.Equal(t, 50, repo.Len())
		for i, doc := range repo.All() {
			assert.Equal(t, fmt.Sprintf("p%02d", i), doc.Slug)
		}
	}
}

func TestIngest_ParseFailureDoesNotAbortBatch(t *testing.T) {
	units := []content.Unit{
		unit("posts/good.md", "Good", "2024-05-01"),
		{Source: "posts/bad.md", Content: []byte("+++\ntitle = \"A\"\nlayout = \"post\"\n+++\nb")}, // no date
	}

	repo, err := Ingest(units, Options{})
	require.Error(t, err)

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errors, 1)

	var fieldErr *content.InvalidFieldError
	require.ErrorAs(t, agg.Errors[0], &fieldErr)
	assert.Equal(t, "date", fieldErr.Field)

	require.NotNil(t, repo)
	assert.Equal(t, 1, repo.Len())
	_, ok := repo.Get("good")
	assert.True(t, ok)
}

func TestIngest_DuplicateIdentityIsFatal(t *testing.T) {
	units := []content.Unit{
		unit("posts/shift.md", "First", "2022-03-12"),
		unit("other/shift.md", "Second", "2023-06-01"),
	}

	repo, err := Ingest(units, Options{})
	require.Error(t, err)
	assert.Nil(t, repo)

	var dup *DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "shift", dup.Slug)
	assert.Equal(t, "posts/shift.md", dup.FirstSource)
	assert.Equal(t, "other/shift.md", dup.SecondSource)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryContent))
}

func TestIngest_DefaultAuthorApplied(t *testing.T) {
	repo, err := Ingest([]content.Unit{unit("posts/a.md", "A", "2024-01-01")}, Options{DefaultAuthor: "Site Crew"})
	require.NoError(t, err)

	doc, ok := repo.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Site Crew", doc.Header.Author)
}

func TestIngest_ExplicitAuthorWins(t *testing.T) {
	raw := "+++\ntitle = \"A\"\ndate = date(\"2024-01-01\")\nauthor = \"Mira Holt\"\nlayout = \"post\"\n+++\nb"
	repo, err := Ingest([]content.Unit{{Source: "posts/a.md", Content: []byte(raw)}}, Options{DefaultAuthor: "Site Crew"})
	require.NoError(t, err)

	doc, _ := repo.Get("a")
	assert.Equal(t, "Mira Holt", doc.Header.Author)
}

func TestIngest_EmptyBatch(t *testing.T) {
	repo, err := Ingest(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, repo.All())
}

func TestGet_Unknown(t *testing.T) {
	repo, err := Ingest([]content.Unit{unit("posts/a.md", "A", "2024-01-01")}, Options{})
	require.NoError(t, err)

	_, ok := repo.Get("nope")
	assert.False(t, ok)
}

func TestAggregateError_UnwrapExposesAll(t *testing.T) {
	inner := errors.New("inner")
	agg := &AggregateError{Errors: []error{inner}}
	assert.True(t, errors.Is(agg, inner))
	assert.Contains(t, agg.Error(), "1 unit(s) failed to parse")
}
