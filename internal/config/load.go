package config

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
)

const (
	defaultSourceDir  = "content"
	defaultWorkers    = 4
	defaultRelatedMax = 3
)

// Load reads, defaults, overrides and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the CLI flag
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read configuration").
			WithContext("source", path).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
			WithContext("source", path).
			Build()
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "Untitled Site"
	}
	if cfg.Content.SourceDir == "" {
		cfg.Content.SourceDir = defaultSourceDir
	}
	if cfg.Build.Workers < 1 {
		cfg.Build.Workers = defaultWorkers
	}
	if cfg.Build.RelatedMax == 0 {
		cfg.Build.RelatedMax = defaultRelatedMax
	}
	if cfg.Build.RelatedMax < 0 {
		cfg.Build.RelatedMax = 0
	}
}

// applyEnvOverrides lets BLOGFORGE_* variables override file values, highest
// precedence below CLI flags.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLOGFORGE_SOURCE_DIR"); v != "" {
		cfg.Content.SourceDir = v
	}
	if v := os.Getenv("BLOGFORGE_DEFAULT_AUTHOR"); v != "" {
		cfg.Site.DefaultAuthor = v
	}
	if v := os.Getenv("BLOGFORGE_BASE_URL"); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := os.Getenv("BLOGFORGE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Build.Workers = n
		}
	}
	if v := os.Getenv("BLOGFORGE_INCLUDE_DRAFTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Build.IncludeDrafts = b
		}
	}
}

// Validate rejects values outside the recognized enumerations.
func Validate(cfg *Config) error {
	if !enumOK(cfg.Routing.Scheme, "pretty", "flat") {
		return ferrors.ConfigError("routing.scheme must be pretty or flat").
			WithContext("value", cfg.Routing.Scheme).
			Build()
	}
	if !enumOK(cfg.Content.SplitPolicy, "split", "keep") {
		return ferrors.ConfigError("content.split_policy must be split or keep").
			WithContext("value", cfg.Content.SplitPolicy).
			Build()
	}
	if !enumOK(cfg.Build.OnRenderError, "abort", "skip") {
		return ferrors.ConfigError("build.on_render_error must be abort or skip").
			WithContext("value", cfg.Build.OnRenderError).
			Build()
	}
	for _, layout := range cfg.Layouts {
		if strings.TrimSpace(layout) == "" {
			return ferrors.ConfigError("layouts must not contain empty names").Build()
		}
	}
	return nil
}

func enumOK(value string, allowed ...string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "" || slices.Contains(allowed, v)
}

// StarterYAML is the configuration written by `blogforge init`.
const StarterYAML = `site:
  title: "My Blog"
  base_url: "https://example.com"
  default_author: "Site Crew"

content:
  source_dir: "content"
  split_policy: "split"

routing:
  scheme: "pretty"

build:
  workers: 4
  include_drafts: false
  on_render_error: "abort"
  related_max: 3

layouts:
  - post
  - page
  - index
`
