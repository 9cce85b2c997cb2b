package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/blogforge/internal/collection"
	"git.home.luguber.info/inful/blogforge/internal/config"
	"git.home.luguber.info/inful/blogforge/internal/repository"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	All    bool `name:"all" help:"Include draft documents"`
	Offset int  `name:"offset" default:"0" help:"Skip the first N documents"`
	Limit  int  `name:"limit" default:"-1" help:"Show at most N documents (-1 for all)"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	repo, err := ingest(cfg)
	if err != nil {
		return err
	}

	pred := collection.Published
	if l.All {
		pred = collection.All
	}
	view := collection.New(repo, pred, collection.SortByDate, collection.Descending).
		Page(l.Offset, l.Limit)

	for _, doc := range view.Docs() {
		marker := " "
		if doc.Header.Draft {
			marker = "d"
		}
		fmt.Printf("%s %s  %-30s  %s\n",
			marker, doc.Header.Date.Format("2006-01-02"), doc.Slug, doc.Header.Title)
	}
	fmt.Printf("%d documents\n", view.Len())
	return nil
}

// ingest reads and parses the configured content directory. Per-unit parse
// failures are logged, not fatal.
func ingest(cfg *config.Config) (*repository.Repository, error) {
	units, err := site.ReadUnits(cfg.Content.SourceDir, cfg.Content.Policy())
	if err != nil {
		return nil, err
	}

	repo, err := repository.Ingest(units, repository.Options{
		Workers:       cfg.Build.Workers,
		DefaultAuthor: cfg.Site.DefaultAuthor,
	})
	if err != nil {
		var agg *repository.AggregateError
		if !errors.As(err, &agg) {
			return nil, err
		}
		for _, parseErr := range agg.Errors {
			slog.Warn("Skipping unparseable unit", "error", parseErr)
		}
	}
	return repo, nil
}
