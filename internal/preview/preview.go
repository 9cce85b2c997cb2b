// Package preview serves a built site locally and rebuilds it when the
// content directory changes.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/blogforge/internal/config"
	ferrors "git.home.luguber.info/inful/blogforge/internal/foundation/errors"
	"git.home.luguber.info/inful/blogforge/internal/metrics"
	"git.home.luguber.info/inful/blogforge/internal/render"
	"git.home.luguber.info/inful/blogforge/internal/site"
)

// debounceDelay coalesces bursts of filesystem events into one rebuild.
const debounceDelay = 300 * time.Millisecond

// buildStatus tracks the current build state for error display.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) getStatus() (hasError bool, err error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError != nil, bs.lastError, bs.hasGoodBuild
}

// Server previews a site: initial build, file server, watch-and-rebuild.
type Server struct {
	cfg       *config.Config
	outputDir string
	engine    render.Engine
	status    *buildStatus
	registry  *prom.Registry
	recorder  metrics.Recorder
}

// NewServer creates a preview server building into outputDir. Build metrics
// for every rebuild are exposed on /metrics.
func NewServer(cfg *config.Config, outputDir string, engine render.Engine) *Server {
	registry := prom.NewRegistry()
	return &Server{
		cfg:       cfg,
		outputDir: filepath.Clean(outputDir),
		engine:    engine,
		status:    &buildStatus{},
		registry:  registry,
		recorder:  metrics.NewPrometheusRecorder(registry),
	}
}

// Run builds once, serves the output directory on port, and rebuilds on
// content changes until ctx is cancelled.
func (s *Server) Run(ctx context.Context, port int) error {
	sourceDir, err := resolveSourceDir(s.cfg)
	if err != nil {
		return err
	}

	s.rebuild(ctx)

	httpServer, err := s.startHTTPServer(port)
	if err != nil {
		return err
	}

	watcher, err := setupWatcher(sourceDir)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	rebuildReq, trigger := setupDebouncer()
	s.startRebuildWorker(ctx, rebuildReq)

	return s.runLoop(ctx, watcher, trigger, rebuildReq, httpServer)
}

// resolveSourceDir validates and resolves the absolute content directory.
func resolveSourceDir(cfg *config.Config) (string, error) {
	abs, err := filepath.Abs(cfg.Content.SourceDir)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryConfig, "failed to resolve source directory").Build()
	}
	if st, statErr := os.Stat(abs); statErr != nil || !st.IsDir() {
		return "", ferrors.ConfigError(fmt.Sprintf("source directory not found or not a directory: %s", abs)).Build()
	}
	return abs, nil
}

func (s *Server) rebuild(ctx context.Context) {
	gen := site.NewGenerator(s.cfg, s.outputDir, s.engine).SetRecorder(s.recorder)
	if _, err := gen.Build(ctx); err != nil {
		slog.Warn("Preview build failed", "error", err)
		s.status.setError(err)
		return
	}
	s.status.setSuccess()
}

func (s *Server) startHTTPServer(port int) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", s.servePage)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to bind preview port").
			WithContext("source", fmt.Sprintf(":%d", port)).
			Build()
	}

	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if serveErr := httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("Preview server stopped", "error", serveErr)
		}
	}()
	slog.Info("Preview server listening", "port", port, "url", fmt.Sprintf("http://localhost:%d", port))
	return httpServer, nil
}

// servePage serves the built site, surfacing the last build error when no
// good build exists yet.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	hasError, buildErr, hasGoodBuild := s.status.getStatus()
	if hasError && !hasGoodBuild {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "build failed:\n%v\n", buildErr)
		return
	}
	http.FileServer(http.Dir(s.outputDir)).ServeHTTP(w, r)
}

func setupWatcher(sourceDir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	if err := addDirsRecursive(watcher, sourceDir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// setupDebouncer creates the rebuild channel and a debounced trigger.
func setupDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}

	return rebuildReq, trigger
}

// startRebuildWorker processes rebuild requests one at a time; a request
// arriving mid-build queues exactly one follow-up rebuild.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected; rebuilding site")
				s.rebuild(ctx)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) runLoop(ctx context.Context, watcher *fsnotify.Watcher, trigger func(), rebuildReq chan struct{}, httpServer *http.Server) error {
	for {
		select {
		case <-ctx.Done():
			return shutdown(httpServer, rebuildReq)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func shutdown(httpServer *http.Server, rebuildReq chan struct{}) error {
	slog.Info("Shutting down preview server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", "error", err)
	}
	close(rebuildReq)
	return nil
}

// handleFileEvent triggers a rebuild for relevant changes and starts
// watching newly created directories.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				slog.Warn("watch add failed", "dir", path, "error", addErr)
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files.
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	if base == ".DS_Store" || base == "Thumbs.db" {
		return true
	}

	return false
}
