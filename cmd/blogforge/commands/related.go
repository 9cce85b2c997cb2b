package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/related"
)

// RelatedCmd implements the 'related' command.
type RelatedCmd struct {
	Slug string `arg:"" help:"Document slug to resolve related documents for"`
	Max  int    `name:"max" default:"0" help:"Override the configured related document cap"`
}

func (r *RelatedCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	repo, err := ingest(cfg)
	if err != nil {
		return err
	}

	doc, ok := repo.Get(r.Slug)
	if !ok {
		return ferrors.NewError(ferrors.CategoryNotFound, fmt.Sprintf("no document with slug %q", r.Slug)).Build()
	}

	maxCount := cfg.Build.RelatedMax
	if r.Max > 0 {
		maxCount = r.Max
	}

	docs := related.Resolve(repo, doc, maxCount)
	if len(docs) == 0 {
		fmt.Println("no related documents")
		return nil
	}
	for _, slug := range related.Slugs(docs) {
		fmt.Println(slug)
	}
	return nil
}
