package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogforge/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" name:"output" default:"./public" help:"Output directory for the generated site"`
	Drafts bool   `name:"drafts" help:"Render draft documents too"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if b.Drafts {
		cfg.Build.IncludeDrafts = true
	}

	slog.Info("Starting site build",
		"source", cfg.Content.SourceDir,
		"output", b.Output)

	generator := site.NewGenerator(cfg, b.Output, &site.HTMLEngine{SiteTitle: cfg.Site.Title})
	report, err := generator.Build(context.Background())
	if err != nil {
		return err
	}

	for _, failure := range report.ParseFailures {
		fmt.Println("parse failure:", failure)
	}
	for _, failure := range report.RenderFailures {
		fmt.Println("skipped:", failure)
	}
	fmt.Printf("Built %d pages from %d documents (%d drafts excluded) in %s\n",
		report.PagesWritten, report.Documents, report.DraftsExcluded,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	return nil
}
