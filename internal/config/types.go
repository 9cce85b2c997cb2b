package config

import (
	"strings"

	"git.home.luguber.info/inful/blogforge/internal/content"
	"git.home.luguber.info/inful/blogforge/internal/render"
)

// Config is the fixed configuration object consumed at build start. It is
// never mutated after loading.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Routing RoutingConfig `yaml:"routing"`
	Build   BuildConfig   `yaml:"build"`
	// Layouts is the set of layout names the external engine knows. An empty
	// list accepts any layout.
	Layouts []string `yaml:"layouts,omitempty"`
}

// SiteConfig holds site-wide metadata.
type SiteConfig struct {
	Title         string `yaml:"title"`
	BaseURL       string `yaml:"base_url,omitempty"`
	DefaultAuthor string `yaml:"default_author,omitempty"`
}

// ContentConfig locates and shapes the source content.
type ContentConfig struct {
	// SourceDir is the directory scanned for content units.
	SourceDir string `yaml:"source_dir,omitempty"`
	// SplitPolicy decides how related-document boundary markers are treated:
	// split (default) or keep.
	SplitPolicy string `yaml:"split_policy,omitempty"`
}

// RoutingConfig selects output path derivation.
type RoutingConfig struct {
	// Scheme is pretty (/blog/<slug>/index.html, default) or flat (/<slug>.html).
	Scheme string `yaml:"scheme,omitempty"`
}

// BuildConfig holds build tuning knobs. Zero values trigger defaults.
type BuildConfig struct {
	// Workers caps concurrent unit parsing. Defaults to 4.
	Workers int `yaml:"workers,omitempty"`
	// IncludeDrafts switches to the preview predicate (drafts get pages).
	IncludeDrafts bool `yaml:"include_drafts,omitempty"`
	// OnRenderError is abort (default) or skip.
	OnRenderError string `yaml:"on_render_error,omitempty"`
	// RelatedMax bounds the related set computed per page. Defaults to 3.
	RelatedMax int `yaml:"related_max,omitempty"`
}

// SplitPolicy returns the normalized typed split policy. Unknown values
// return the default so callers can branch safely.
func (c ContentConfig) Policy() content.SplitPolicy {
	if strings.EqualFold(strings.TrimSpace(c.SplitPolicy), string(content.PolicyKeep)) {
		return content.PolicyKeep
	}
	return content.PolicySplit
}

// SchemeType returns the normalized typed routing scheme.
func (r RoutingConfig) SchemeType() render.Scheme {
	if strings.EqualFold(strings.TrimSpace(r.Scheme), string(render.SchemeFlat)) {
		return render.SchemeFlat
	}
	return render.SchemePretty
}

// ErrorPolicy returns the normalized typed render error policy.
func (b BuildConfig) ErrorPolicy() render.ErrorPolicy {
	if strings.EqualFold(strings.TrimSpace(b.OnRenderError), string(render.PolicySkip)) {
		return render.PolicySkip
	}
	return render.PolicyAbort
}
