package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/blogforge/cmd/blogforge/commands"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/version"
)

func main() {
	// Optional .env for BLOGFORGE_* overrides; absence is not an error.
	_ = godotenv.Load()

	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogforge"),
		kong.Description("Build HTML blogs from delimited-header content files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
