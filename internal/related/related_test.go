package related

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/repository"
)

func unit(source, title, date, series string, draft bool) content.Unit {
	raw := fmt.Sprintf("+++\ntitle = %q\ndate = date(%q)\nlayout = \"post\"\ndraft = %v\n", title, date, draft)
	if series != "" {
		raw += fmt.Sprintf("series = %q\n", series)
	}
	raw += "+++\nbody\n"
	return content.Unit{Source: source, Content: []byte(raw)}
}

func buildRepo(t *testing.T, units ...content.Unit) *repository.Repository {
	t.Helper()
	repo, err := repository.Ingest(units, repository.Options{})
	require.NoError(t, err)
	return repo
}

func get(t *testing.T, repo *repository.Repository, slug string) *content.Document {
	t.Helper()
	doc, ok := repo.Get(slug)
	require.True(t, ok, slug)
	return doc
}

func TestResolve_ZeroMaxCountReturnsEmpty(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/a.md", "A", "2024-01-01", "", false),
		unit("posts/b.md", "B", "2024-01-02", "", false),
	)

	assert.Empty(t, Resolve(repo, get(t, repo, "a"), 0))
}

func TestResolve_NeverIncludesSelf(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/a.md", "A", "2024-01-01", "", false),
		unit("posts/b.md", "B", "2024-01-02", "", false),
	)

	for _, doc := range Resolve(repo, get(t, repo, "a"), 10) {
		assert.NotEqual(t, "a", doc.Slug)
	}
}

func TestResolve_ExcludesDrafts(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/a.md", "A", "2024-01-01", "", false),
		unit("posts/b.md", "B", "2024-01-02", "", true),
		unit("posts/c.md", "C", "2024-01-03", "", false),
	)

	got := Slugs(Resolve(repo, get(t, repo, "a"), 10))
	assert.Equal(t, []string{"c"}, got)
}

func TestResolve_BoundedWithoutPadding(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/a.md", "A", "2024-01-01", "", false),
		unit("posts/b.md", "B", "2024-01-02", "", false),
		unit("posts/c.md", "C", "2024-01-03", "", false),
	)

	assert.Len(t, Resolve(repo, get(t, repo, "a"), 1), 1)
	assert.Len(t, Resolve(repo, get(t, repo, "a"), 2), 2)
	assert.Len(t, Resolve(repo, get(t, repo, "a"), 50), 2)
}

func TestResolve_SeriesOutranksRecency(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/subject.md", "Subject", "2024-06-01", "infra", false),
		unit("posts/same-day.md", "Same Day", "2024-06-01", "", false),
		unit("posts/old-sibling.md", "Old Sibling", "2019-01-01", "infra", false),
	)

	got := Slugs(Resolve(repo, get(t, repo, "subject"), 2))
	assert.Equal(t, []string{"old-sibling", "same-day"}, got)
}

func TestResolve_RecencyProximityOrders(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/subject.md", "Subject", "2024-06-01", "", false),
		unit("posts/near.md", "Near", "2024-06-10", "", false),
		unit("posts/far.md", "Far", "2020-06-01", "", false),
	)

	got := Slugs(Resolve(repo, get(t, repo, "subject"), 2))
	assert.Equal(t, []string{"near", "far"}, got)
}

func TestResolve_TiesBreakBySlugAscending(t *testing.T) {
	repo := buildRepo(t,
		unit("posts/subject.md", "Subject", "2024-06-01", "", false),
		unit("posts/zeta.md", "Zeta", "2024-06-02", "", false),
		unit("posts/alpha.md", "Alpha", "2024-05-31", "", false),
	)

	// both candidates are exactly one day away
	got := Slugs(Resolve(repo, get(t, repo, "subject"), 2))
	assert.Equal(t, []string{"alpha", "zeta"}, got)
}

func TestResolve_SplitSegmentsAreSameSeries(t *testing.T) {
	stream := "+++\ntitle = \"First\"\ndate = date(\"2022-03-12\")\nlayout = \"post\"\n+++\nfirst\n" +
		"<<<related>>>\n" +
		"+++\ntitle = \"Second\"\ndate = date(\"2010-01-01\")\nlayout = \"post\"\n+++\nsecond\n"
	units := content.SplitStream("posts/stream.md", []byte(stream), content.PolicySplit)
	units = append(units, unit("posts/noise.md", "Noise", "2022-03-13", "", false))

	repo, err := repository.Ingest(units, repository.Options{})
	require.NoError(t, err)

	got := Slugs(Resolve(repo, get(t, repo, "stream"), 1))
	assert.Equal(t, []string{"stream-2"}, got)
}
