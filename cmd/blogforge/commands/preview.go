package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/blogforge/internal/preview"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

// PreviewCmd implements the 'preview' command: serve locally and rebuild on
// content changes.
type PreviewCmd struct {
	Output string `short:"o" name:"output" default:"" help:"Output directory for the generated site (defaults to temp)"`
	Port   int    `name:"port" default:"1316" help:"Preview server port"`
	Drafts bool   `name:"drafts" help:"Render draft documents too"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	if p.Drafts {
		cfg.Build.IncludeDrafts = true
	}

	outDir := p.Output
	if outDir == "" {
		tmp, err := os.MkdirTemp("", "blogforge-preview-*")
		if err != nil {
			return fmt.Errorf("create temp output: %w", err)
		}
		outDir = tmp
		defer func() {
			if rmErr := os.RemoveAll(tmp); rmErr != nil {
				slog.Warn("failed to remove temp output", "dir", tmp, "error", rmErr)
			}
		}()
		slog.Info("Using temporary output directory for preview", "output", outDir)
	}

	server := preview.NewServer(cfg, outDir, &site.HTMLEngine{SiteTitle: cfg.Site.Title})
	return server.Run(sigctx, p.Port)
}
