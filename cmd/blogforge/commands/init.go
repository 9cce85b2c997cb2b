package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/blogforge/internal/config"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory to place the generated config file in"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfgPath := root.Config
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, "blogforge.yaml")
	}
	return RunInit(cfgPath, i.Force)
}

// RunInit writes a starter configuration file.
func RunInit(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
		}
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
				WithContext("source", dir).
				Build()
		}
	}
	if err := os.WriteFile(configPath, []byte(config.StarterYAML), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration").
			WithContext("source", configPath).
			Build()
	}
	fmt.Printf("Wrote starter configuration to %s\n", configPath)
	return nil
}
