package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogforge/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"blogforge.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site from the content directory"`
	List    ListCmd    `cmd:"" help:"List ingested documents in publication order"`
	Related RelatedCmd `cmd:"" help:"Show the related documents for a slug"`
	Verify  VerifyCmd  `cmd:"" help:"Verify internal links in a built site"`
	Preview PreviewCmd `cmd:"" help:"Serve the site locally and rebuild on content changes"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration named by the root --config flag, falling
// back to defaults when the default file does not exist.
func LoadConfig(root *CLI) (*config.Config, error) {
	if _, err := os.Stat(root.Config); os.IsNotExist(err) && root.Config == "blogforge.yaml" {
		return config.Default(), nil
	}
	return config.Load(root.Config)
}
