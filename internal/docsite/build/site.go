package build

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microsoft/retina-site/internal/docsite/components"
	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	"github.com/microsoft/retina-site/internal/docsite/links"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/nav"
	"github.com/microsoft/retina-site/internal/docsite/node"
	"github.com/microsoft/retina-site/internal/docsite/output"
	"github.com/microsoft/retina-site/internal/docsite/plugin"
	"github.com/microsoft/retina-site/internal/docsite/render"
	"github.com/microsoft/retina-site/internal/docsite/schema"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

const (
	customCSSPath  = "assets/css/custom.css"
	socialCardPath = "img/social-card.svg"
	notFoundPath   = "404.html"
	descriptionLen = 160
)

// Site is a loaded, checked and render-ready site. It is immutable once
// built and safe for concurrent use; the preview server swaps whole Sites
// on rebuild.
type Site struct {
	Descriptor *config.SiteDescriptor
	Docs       *docs.Set
	Sidebars   *sidebar.Sidebars
	Report     links.Report
	// StaticDir holds files copied verbatim into the output.
	StaticDir string
	// DocsDir is the directory the docs were loaded from.
	DocsDir string

	classic  config.ClassicPreset
	engine   *render.Engine
	resolver *nav.Resolver
	markdown *docs.Markdown
	schema   *schema.Generator
	log      *logger.Logger

	routes   []string
	imageURL string
	files    map[string][]byte
}

// Site loads the docs and sidebars, checks links and prepares every page
// and generated file. A link problem under a "throw" policy fails here,
// before anything is rendered.
func (b *Builder) Site(ctx context.Context) (*Site, error) {
	return b.loadSite(ctx, b.log)
}

func (b *Builder) loadSite(ctx context.Context, log *logger.Logger) (*Site, error) {
	d := b.site

	classic, err := d.Classic()
	if err != nil {
		return nil, err
	}

	// 1. Load docs
	docsDir := d.Path(classic.Docs.Path)
	log.Infof("Loading docs from %s...", docsDir)
	loader := &docs.Loader{Dir: docsDir, RouteBasePath: classic.Docs.RouteBasePath, Log: log}
	loaded, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading docs: %w", err)
	}
	set := docs.NewSet(loaded)
	log.Infof("Loaded %d docs", len(loaded))

	// 2. Resolve sidebars
	def, err := sidebar.Load(d.Path(classic.Docs.SidebarPath))
	if err != nil {
		return nil, fmt.Errorf("loading sidebars: %w", err)
	}
	sidebars := sidebar.Resolve(def, set)

	// 3. Check links
	staticDir := b.opts.StaticDir
	if staticDir == "" {
		staticDir = d.Path("static")
	}
	staticRoutes, err := collectStaticRoutes(staticDir)
	if err != nil {
		return nil, fmt.Errorf("reading static dir: %w", err)
	}

	md := docs.NewMarkdown()
	checker := &links.Checker{Docs: set, Sidebars: sidebars, Markdown: md, Routes: staticRoutes, Log: log}
	report, err := checker.Check(d)
	if err != nil {
		return nil, fmt.Errorf("checking links: %w", err)
	}
	log.Infof("Checked %d links (%d warnings)", report.Checked, len(report.Warnings))

	s := &Site{
		Descriptor: d,
		Docs:       set,
		Sidebars:   sidebars,
		Report:     report,
		StaticDir:  staticDir,
		DocsDir:    docsDir,
		classic:    classic,
		markdown:   md,
		schema:     schema.NewGenerator(d),
		log:        log,
		files:      make(map[string][]byte),
		resolver: &nav.Resolver{
			BaseURL:  d.BaseURL,
			DocsBase: "/" + classic.Docs.RouteBasePath,
			Docs:     set,
			Sidebars: sidebars,
		},
	}

	// 4. Collect assets
	renderOpts := render.Options{Year: b.opts.Now().Year()}
	if css := classic.Theme.CustomCSS; css != "" {
		data, err := os.ReadFile(d.Path(css))
		if err != nil {
			log.Error(err, "skipping custom CSS")
		} else {
			s.files[customCSSPath] = data
			renderOpts.CustomCSS = customCSSPath
		}
	}

	s.imageURL = d.AbsoluteURL(d.ThemeConfig.Image)
	if d.ThemeConfig.Image == "" {
		s.files[socialCardPath] = []byte(render.SocialCardSVG(d.Title, d.Tagline, d.AbsoluteURL("/")))
		s.imageURL = d.AbsoluteURL(socialCardPath)
	}

	// 5. Initialize render engine
	s.engine, err = render.NewEngine(d, renderOpts)
	if err != nil {
		return nil, fmt.Errorf("initializing render engine: %w", err)
	}

	s.routes = append(s.routes, "/")
	for _, doc := range set.All() {
		s.routes = append(s.routes, doc.Route)
	}

	// 6. Run emitter plugins
	if err := s.emit(ctx, b.plugins); err != nil {
		return nil, err
	}

	// 7. Generate site files
	s.generateFiles(b.opts.Now(), b.opts.MaxSitemapURLs)

	return s, nil
}

func (s *Site) emit(ctx context.Context, registry *plugin.Registry) error {
	plugins, err := registry.Instantiate(s.Descriptor.Plugins)
	if err != nil {
		return fmt.Errorf("configuring plugins: %w", err)
	}

	bc := &plugin.BuildContext{Site: s.Descriptor, Docs: s.Docs, Markdown: s.markdown, Log: s.log}
	for _, p := range plugins {
		emitter, ok := p.(plugin.Emitter)
		if !ok {
			s.log.Debug("plugin " + p.Name() + " emits no files")
			continue
		}
		files, err := emitter.Emit(ctx, bc)
		if err != nil {
			return fmt.Errorf("running plugin %s: %w", p.Name(), err)
		}
		for _, f := range files {
			s.files[strings.TrimPrefix(f.Path, "/")] = f.Data
		}
	}
	return nil
}

func (s *Site) generateFiles(now time.Time, maxURLs int) {
	d := s.Descriptor
	today := now.Format("2006-01-02")

	var entries []output.SitemapEntry
	for _, route := range s.routes {
		entries = append(entries, output.NewSitemapEntry(d, route, today))
	}
	for _, sf := range output.GenerateSitemapFiles(d, entries, maxURLs) {
		s.files[sf.Filename] = []byte(sf.Content)
	}

	s.files["robots.txt"] = []byte(output.GenerateRobotsTxt(d))
	s.files["manifest.json"] = []byte(output.GenerateManifest(d))
	s.files["llms.txt"] = []byte(output.GenerateLlmsTxt(d, s.Docs, s.Sidebars))
}

// Routes lists the page routes: the home page, then every doc in source order.
func (s *Site) Routes() []string {
	return s.routes
}

// Files lists the generated file paths in sorted order.
func (s *Site) Files() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns a generated file by its path relative to the output root.
func (s *Site) File(name string) ([]byte, bool) {
	data, ok := s.files[strings.TrimPrefix(name, "/")]
	return data, ok
}

// Render renders the page at route. The boolean is false when no page has
// that route.
func (s *Site) Render(route string) (string, bool, error) {
	if route == "" || route == "/" {
		html, err := s.renderHome()
		return html, true, err
	}
	doc, ok := s.Docs.ByRoute(route)
	if !ok {
		return "", false, nil
	}
	html, err := s.renderDoc(doc)
	return html, true, err
}

// NotFound renders the 404 page.
func (s *Site) NotFound() (string, error) {
	body := node.El("main", node.Props{"class": "container not-found"},
		node.El("h1", nil, node.Text("Page Not Found")),
		node.El("p", nil, node.Text("We could not find what you were looking for.")),
		node.El("p", nil, node.El("a", node.Props{"href": s.Descriptor.Href("/")}, node.Text("Back to the home page"))),
	)
	return s.engine.RenderPage(render.PageContext{
		Title: "Page Not Found",
		Body:  template.HTML(node.String(body)),
		Nav:   s.resolver.Resolve(s.Descriptor.ThemeConfig.Navbar, ""),
	})
}

func (s *Site) renderHome() (string, error) {
	d := s.Descriptor
	cctx := components.NewContext(d, s.firstDocHref())
	body := node.String(components.Home(cctx))

	return s.engine.RenderPage(render.PageContext{
		Route:       "/",
		Title:       d.Title,
		Description: d.Tagline,
		Body:        template.HTML(body),
		Nav:         s.resolver.Resolve(d.ThemeConfig.Navbar, "/"),
		OG: render.OGMeta{
			Title:       d.Title,
			Description: d.Tagline,
			URL:         d.AbsoluteURL("/"),
			ImageURL:    s.imageURL,
			Type:        "website",
			SiteName:    d.Title,
		},
		JsonLD: template.HTML(schema.MarshalSchemas(s.schema.GenerateWebSiteSchema(s.imageURL))),
	})
}

func (s *Site) renderDoc(doc *docs.Doc) (string, error) {
	d := s.Descriptor

	body, err := s.markdown.ToHTML(doc.Body, func(dest string) (string, bool) {
		if !docs.IsDocLink(dest) {
			return "", false
		}
		target, fragment, ok := s.Docs.ResolveLink(doc, dest)
		if !ok {
			return "", false
		}
		href := d.Href(target.Route)
		if fragment != "" {
			href += "#" + fragment
		}
		return href, true
	})
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", doc.RelPath, err)
	}

	pageURL := d.AbsoluteURL(doc.Route)
	description := summarize(s.markdown.PlainText(doc.Body), descriptionLen)

	view := &render.DocView{EditURL: s.editURL(doc)}
	crumbs := []schema.BreadcrumbItem{{Name: "Docs", URL: d.AbsoluteURL("/" + s.classic.Docs.RouteBasePath)}}
	if sidebarID, ok := s.Sidebars.SidebarOf(doc.ID); ok {
		entries := s.Sidebars.Entries(sidebarID)
		view.Sidebar = template.HTML(node.String(render.SidebarTree(entries, doc.ID, s.docHref)))
		for _, label := range categoryPath(entries, doc.ID) {
			view.Breadcrumbs = append(view.Breadcrumbs, render.Breadcrumb{Name: label})
			crumbs = append(crumbs, schema.BreadcrumbItem{Name: label})
		}

		prev, next := s.Sidebars.Neighbors(doc.ID)
		view.Prev = s.pageLink(prev)
		view.Next = s.pageLink(next)
	}
	view.Breadcrumbs = append(view.Breadcrumbs, render.Breadcrumb{Name: doc.Title, URL: d.Href(doc.Route)})
	crumbs = append(crumbs, schema.BreadcrumbItem{Name: doc.Title, URL: pageURL})

	jsonLD := schema.MarshalSchemas(
		s.schema.GenerateArticleSchema(doc.Title, description, pageURL),
		s.schema.GenerateBreadcrumbSchema(crumbs),
	)

	return s.engine.RenderPage(render.PageContext{
		Route:       doc.Route,
		Title:       doc.Title,
		Description: description,
		Body:        template.HTML(body),
		Nav:         s.resolver.Resolve(d.ThemeConfig.Navbar, doc.Route),
		OG: render.OGMeta{
			Title:       doc.Title,
			Description: description,
			URL:         pageURL,
			ImageURL:    s.imageURL,
			Type:        "article",
			SiteName:    d.Title,
		},
		JsonLD: template.HTML(jsonLD),
		Doc:    view,
	})
}

func (s *Site) docHref(id string) string {
	if doc, ok := s.Docs.ByID(id); ok {
		return s.Descriptor.Href(doc.Route)
	}
	return s.Descriptor.Href("/" + s.classic.Docs.RouteBasePath)
}

func (s *Site) pageLink(id string) *render.PageLink {
	doc, ok := s.Docs.ByID(id)
	if !ok {
		return nil
	}
	return &render.PageLink{Label: doc.Label(), Href: s.Descriptor.Href(doc.Route)}
}

// firstDocHref is the call-to-action target: the first doc of the default
// sidebar, or of the first sidebar when there is no default one.
func (s *Site) firstDocHref() string {
	id, ok := s.Sidebars.First(sidebar.DefaultSidebar)
	if !ok {
		if ids := s.Sidebars.IDs(); len(ids) > 0 {
			id, ok = s.Sidebars.First(ids[0])
		}
	}
	if !ok {
		return ""
	}
	return s.docHref(id)
}

func (s *Site) editURL(doc *docs.Doc) string {
	base := s.classic.Docs.EditURL
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + doc.RelPath
}

// WatchPaths lists the files and directories whose changes invalidate the site.
func (s *Site) WatchPaths() []string {
	paths := []string{s.Descriptor.Dir, s.DocsDir, s.StaticDir}
	if p := s.classic.Docs.SidebarPath; p != "" {
		paths = append(paths, filepath.Dir(s.Descriptor.Path(p)))
	}
	return dedupe(paths)
}

// categoryPath returns the labels of the categories enclosing docID.
func categoryPath(entries []sidebar.Entry, docID string) []string {
	for _, e := range entries {
		switch e.Type {
		case sidebar.TypeDoc:
			if e.DocID == docID {
				return []string{}
			}
		case sidebar.TypeCategory:
			if sub := categoryPath(e.Items, docID); sub != nil {
				return append([]string{e.Label}, sub...)
			}
		}
	}
	return nil
}

// collectStaticRoutes lists every file below dir as a site route.
func collectStaticRoutes(dir string) ([]string, error) {
	var routes []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		routes = append(routes, path.Join("/", filepath.ToSlash(rel)))
		return nil
	})
	return routes, err
}

// summarize cuts text to at most max bytes on a word boundary.
func summarize(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := strings.LastIndex(text[:max], " ")
	if cut <= 0 {
		cut = max
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
	}
	return strings.TrimRight(text[:cut], " ,.;:") + "…"
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
