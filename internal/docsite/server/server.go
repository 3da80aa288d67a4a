// Package server is the local preview server. It renders pages per request
// from the current build.Site and rebuilds it when source files change.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/microsoft/retina-site/internal/docsite/build"
	"github.com/microsoft/retina-site/internal/docsite/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Loader produces a fresh site. It is called once at startup and again on
// every debounced change.
type Loader func(ctx context.Context) (*build.Site, error)

// Options configures the preview server.
type Options struct {
	Addr     string
	Debounce time.Duration
}

// Server serves the current site and swaps in a new one after each
// successful rebuild. A failed rebuild keeps the previous site.
type Server struct {
	load   Loader
	opts   Options
	log    *logger.Logger
	site   atomic.Pointer[build.Site]
	router chi.Router
}

// New creates a server. Nothing is loaded until Reload or Run.
func New(load Loader, log *logger.Logger, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "localhost:3000"
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	s := &Server{load: load, opts: opts, log: log}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)
	router.Use(noCache)

	router.Get("/healthz", s.handleHealth)
	router.Get("/*", s.handleSite)
	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Site returns the site currently being served, or nil before the first load.
func (s *Server) Site() *build.Site {
	return s.site.Load()
}

// Reload loads a new site and swaps it in.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	site, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.site.Store(site)
	s.log.Infof("Site loaded in %s (%d pages)", time.Since(start).Round(time.Millisecond), len(site.Routes()))
	return nil
}

// Run loads the site, starts watching its sources and serves until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	watcher, err := NewWatcher(s.opts.Debounce, s.log, func() {
		if err := s.Reload(ctx); err != nil {
			s.log.Error(err, "rebuild failed, still serving the previous site")
		}
	})
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()
	for _, root := range s.Site().WatchPaths() {
		watcher.AddTree(root)
	}
	go watcher.Run(ctx)

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Infof("Serving site on http://%s", s.opts.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.Site() == nil {
		http.Error(w, "loading", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleSite resolves a request path in order: generated file, page,
// static file, then the 404 page.
func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	site := s.Site()
	if site == nil {
		http.Error(w, "site is still loading", http.StatusServiceUnavailable)
		return
	}

	rel, ok := siteRelative(site.Descriptor.BaseURL, r.URL.Path)
	if !ok {
		s.notFound(w, site)
		return
	}

	if data, ok := site.File(rel); ok {
		http.ServeContent(w, r, path.Base(rel), time.Time{}, bytes.NewReader(data))
		return
	}

	html, ok, err := site.Render(strings.TrimSuffix(rel, "index.html"))
	if err != nil {
		s.log.WithFields(map[string]any{"route": rel}).Error(err, "render failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
		return
	}

	file := filepath.Join(site.StaticDir, filepath.FromSlash(rel))
	if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
		http.ServeFile(w, r, file)
		return
	}

	s.notFound(w, site)
}

func (s *Server) notFound(w http.ResponseWriter, site *build.Site) {
	html, err := site.NotFound()
	if err != nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(html))
}

// siteRelative strips the base URL from a request path. The result is
// cleaned and always starts with "/".
func siteRelative(baseURL, p string) (string, bool) {
	base := strings.TrimSuffix(baseURL, "/")
	if p != base && !strings.HasPrefix(p, base+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(p, base)
	trailing := strings.HasSuffix(rel, "/")
	rel = path.Clean("/" + rel)
	if trailing && rel != "/" {
		rel += "/"
	}
	return rel, true
}

// noCache keeps browsers from holding on to pages between rebuilds.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Debug(r.Method + " " + r.URL.Path)
	})
}
