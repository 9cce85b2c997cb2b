// Package site orchestrates a whole build: read units, ingest, derive render
// requests, hand them to the layout engine, and write the resulting pages.
package site

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogforge/internal/config"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
	"git.home.luguber.info/inful/blogforge/internal/metrics"
	"git.home.luguber.info/inful/blogforge/internal/observability"
	"git.home.luguber.info/inful/blogforge/internal/render"
	"git.home.luguber.info/inful/blogforge/internal/repository"
)

// manifestName is the build report written into the output directory.
const manifestName = "build-manifest.json"

// Generator runs builds against a fixed configuration and engine.
type Generator struct {
	cfg       *config.Config
	outputDir string
	engine    render.Engine
	recorder  metrics.Recorder
}

// NewGenerator creates a generator writing into outputDir.
func NewGenerator(cfg *config.Config, outputDir string, engine render.Engine) *Generator {
	return &Generator{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		engine:    engine,
		recorder:  metrics.NoopRecorder{},
	}
}

// SetRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// Report is the manifest of one build.
type Report struct {
	BuildID        string    `json:"build_id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Documents      int       `json:"documents"`
	PagesWritten   int       `json:"pages_written"`
	DraftsExcluded int       `json:"drafts_excluded"`
	ParseFailures  []string  `json:"parse_failures,omitempty"`
	RenderFailures []string  `json:"render_failures,omitempty"`
	Outcome        string    `json:"outcome"`
}

// Build runs the pipeline once. Per-unit parse failures and (under the skip
// policy) render failures are recorded in the report without failing the
// build; duplicate identities and abort-policy render errors fail it.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:   uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	ctx = observability.WithBuildID(ctx, report.BuildID)
	buildStart := time.Now()

	repo, err := g.runIngest(ctx, report)
	if err != nil {
		g.finish(report, buildStart, "failed")
		return report, err
	}
	report.Documents = repo.Len()

	requests, err := g.runDerive(ctx, repo, report)
	if err != nil {
		g.finish(report, buildStart, "failed")
		return report, err
	}

	if err := g.runRender(ctx, requests, report); err != nil {
		g.finish(report, buildStart, "failed")
		return report, err
	}

	g.finish(report, buildStart, "ok")
	if err := g.writeManifest(report); err != nil {
		return report, err
	}

	observability.InfoContext(ctx, "Build complete",
		logfields.Count(report.PagesWritten),
		slog.Int("documents", report.Documents))
	return report, nil
}

func (g *Generator) runIngest(ctx context.Context, report *Report) (*repository.Repository, error) {
	ctx = observability.WithStage(ctx, "ingest")
	start := time.Now()
	defer func() { g.recorder.StageCompleted("ingest", time.Since(start)) }()

	units, err := ReadUnits(g.cfg.Content.SourceDir, g.cfg.Content.Policy())
	if err != nil {
		return nil, err
	}
	observability.InfoContext(ctx, "Content units discovered", logfields.Count(len(units)))

	repo, err := repository.Ingest(units, repository.Options{
		Workers:       g.cfg.Build.Workers,
		DefaultAuthor: g.cfg.Site.DefaultAuthor,
	})
	if err != nil {
		var agg *repository.AggregateError
		if !errors.As(err, &agg) {
			return nil, err
		}
		for _, parseErr := range agg.Errors {
			g.recorder.ParseFailed()
			report.ParseFailures = append(report.ParseFailures, parseErr.Error())
		}
	}
	for range repo.Len() {
		g.recorder.UnitParsed()
	}
	return repo, nil
}

func (g *Generator) runDerive(ctx context.Context, repo *repository.Repository, report *Report) ([]render.Request, error) {
	ctx = observability.WithStage(ctx, "derive")
	start := time.Now()
	defer func() { g.recorder.StageCompleted("derive", time.Since(start)) }()

	requests, renderErrs := render.Requests(repo, render.Options{
		Scheme:        g.cfg.Routing.SchemeType(),
		Layouts:       g.cfg.Layouts,
		IncludeDrafts: g.cfg.Build.IncludeDrafts,
		OnError:       g.cfg.Build.ErrorPolicy(),
	})

	if g.cfg.Build.ErrorPolicy() == render.PolicyAbort && len(renderErrs) > 0 {
		return nil, renderErrs[0]
	}
	for _, renderErr := range renderErrs {
		observability.WarnContext(ctx, "Skipping document with render error", logfields.Error(renderErr))
		report.RenderFailures = append(report.RenderFailures, renderErr.Error())
	}

	if !g.cfg.Build.IncludeDrafts {
		report.DraftsExcluded = repo.Len() - len(requests) - len(renderErrs)
	}
	return requests, nil
}

func (g *Generator) runRender(ctx context.Context, requests []render.Request, report *Report) error {
	ctx = observability.WithStage(ctx, "render")
	start := time.Now()
	defer func() { g.recorder.StageCompleted("render", time.Since(start)) }()

	for _, req := range requests {
		markup, err := g.engine.Render(req)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryRender, "layout engine failed").
				WithContext("source", req.Slug).
				WithContext("layout", req.Layout).
				Build()
		}
		if err := g.writePage(req.OutputPath, markup); err != nil {
			return err
		}
		g.recorder.PageRendered()
		report.PagesWritten++
		observability.DebugContext(ctx, "Page written",
			logfields.Slug(req.Slug),
			logfields.OutputPath(req.OutputPath))
	}
	return nil
}

func (g *Generator) writePage(outputPath string, markup []byte) error {
	target := filepath.Join(g.outputDir, filepath.FromSlash(strings.TrimPrefix(outputPath, "/")))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			WithContext("source", target).
			Build()
	}
	if err := os.WriteFile(target, markup, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write page").
			WithContext("source", target).
			Build()
	}
	return nil
}

func (g *Generator) finish(report *Report, start time.Time, outcome string) {
	report.FinishedAt = time.Now().UTC()
	report.Outcome = outcome
	g.recorder.BuildCompleted(outcome, time.Since(start))
}

func (g *Generator) writeManifest(report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode build manifest").Build()
	}
	data = append(data, '\n')

	target := filepath.Join(g.outputDir, manifestName)
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output directory").
			WithContext("source", g.outputDir).
			Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write build manifest").
			WithContext("source", target).
			Build()
	}
	return nil
}
