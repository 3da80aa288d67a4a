// Package build runs the site generation pipeline: it loads docs, checks
// links, renders every page and writes the published site.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/microsoft/retina-site/internal/docsite/config"
	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/plugin"
)

// DefaultConcurrency bounds concurrent page renders.
const DefaultConcurrency = 32

// Options configures a Builder.
type Options struct {
	// OutDir receives the published site.
	OutDir string
	// StaticDir defaults to "static" next to the descriptor.
	StaticDir      string
	Concurrency    int
	MaxSitemapURLs int
	// Now stamps the copyright year and sitemap lastmod.
	Now func() time.Time
}

// Builder orchestrates the entire static site generation pipeline.
type Builder struct {
	site    *config.SiteDescriptor
	plugins *plugin.Registry
	log     *logger.Logger
	opts    Options
}

// Result summarizes a finished build.
type Result struct {
	BuildID  string
	Pages    int
	Files    int
	Warnings []*siteerrors.UnresolvedReferenceError
	Duration time.Duration
	OutDir   string
}

// NewBuilder creates a new builder. A nil registry means the built-in plugins.
func NewBuilder(site *config.SiteDescriptor, plugins *plugin.Registry, log *logger.Logger, opts Options) *Builder {
	if plugins == nil {
		plugins = plugin.Default()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OutDir == "" {
		opts.OutDir = site.Path("build")
	}
	return &Builder{site: site, plugins: plugins, log: log, opts: opts}
}

// Build runs the complete build pipeline.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	buildID := uuid.NewString()
	log := b.log.WithFields(map[string]any{"build": buildID})
	log.Infof("Building site: %s", b.site.Title)

	site, err := b.loadSite(ctx, log)
	if err != nil {
		return nil, err
	}

	outDir := b.opts.OutDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	// 8. Render pages (concurrent)
	routes := site.Routes()
	log.Infof("Rendering %d pages...", len(routes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Concurrency)
	for _, route := range routes {
		route := route
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			html, _, err := site.Render(route)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", route, err)
			}
			log.Debug("rendered " + route)
			return writeFile(outDir, pageFile(route), []byte(html))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notFound, err := site.NotFound()
	if err != nil {
		return nil, fmt.Errorf("rendering 404 page: %w", err)
	}
	if err := writeFile(outDir, notFoundPath, []byte(notFound)); err != nil {
		return nil, err
	}

	// 9. Write generated files
	files := site.Files()
	for _, name := range files {
		data, _ := site.File(name)
		if err := writeFile(outDir, name, data); err != nil {
			return nil, err
		}
	}
	log.Infof("Generated %d site file(s)", len(files))

	// 10. Copy static assets
	if err := copyDir(site.StaticDir, outDir); err != nil {
		log.Error(err, "failed to copy static assets")
	}

	res := &Result{
		BuildID:  buildID,
		Pages:    len(routes),
		Files:    len(files),
		Warnings: site.Report.Warnings,
		Duration: time.Since(start),
		OutDir:   outDir,
	}
	log.Info("Build complete!")
	log.Infof("  Pages:     %d", res.Pages)
	log.Infof("  Warnings:  %d", len(res.Warnings))
	log.Infof("  Output:    %s", outDir)
	log.Infof("  Duration:  %s", res.Duration.Round(time.Millisecond))
	return res, nil
}

// pageFile maps a route to its output file: "/" to index.html and
// "/docs/x" to docs/x/index.html.
func pageFile(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(route), "index.html")
}

func writeFile(outDir, name string, data []byte) error {
	p := filepath.Join(outDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", name, err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dstPath, data, 0644); err != nil {
			return err
		}
	}
	return nil
}
