package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" name:"output" default:"./public" help:"Built site directory to verify"`
}

func (v *VerifyCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}

	problems, err := site.VerifyLinks(v.Output, cfg.Site.BaseURL)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Println("all internal links resolve")
		return nil
	}

	for _, p := range problems {
		fmt.Printf("%s: dangling link %s\n", p.Page, p.URL)
	}
	return ferrors.ValidationError(fmt.Sprintf("%d dangling internal links", len(problems))).Build()
}
