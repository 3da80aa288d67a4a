// Package render turns page contexts into complete HTML documents using the
// embedded layout templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/highlight"
	"github.com/microsoft/retina-site/internal/docsite/nav"
	"github.com/microsoft/retina-site/internal/docsite/node"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine is the template rendering engine. It is safe for concurrent use.
type Engine struct {
	tmpl     *template.Template
	site     *config.SiteDescriptor
	opts     Options
	headTags []template.HTML
	themeCSS template.CSS
	footer   footerView
}

// Options carries the build-level values the layout needs.
type Options struct {
	// Year expands {{.Year}} in the footer copyright.
	Year int
	// CustomCSS is the site-relative path of the custom stylesheet, if any.
	CustomCSS string
}

// PageContext is the template context for one page.
type PageContext struct {
	Route       string
	Title       string
	Description string
	Body        template.HTML
	Nav         nav.Resolved
	OG          OGMeta
	JsonLD      template.HTML
	Doc         *DocView
}

// DocView is the doc-specific part of a page: sidebar, pager and edit link.
type DocView struct {
	Sidebar     template.HTML
	Breadcrumbs []Breadcrumb
	EditURL     string
	Prev        *PageLink
	Next        *PageLink
}

// PageLink is a labelled link to another page.
type PageLink struct {
	Label string
	Href  string
}

// Breadcrumb is a single breadcrumb entry.
type Breadcrumb struct {
	Name string
	URL  string
}

// OGMeta holds Open Graph and Twitter Card metadata for a page.
type OGMeta struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	Type        string // "website" for the home page, "article" for docs
	SiteName    string
}

type footerView struct {
	Style     string
	Logo      *config.Logo
	Groups    []footerGroup
	Copyright string
}

type footerGroup struct {
	Title string
	Items []footerLink
}

type footerLink struct {
	Label    string
	Href     string
	External bool
}

type layoutData struct {
	Site      *config.SiteDescriptor
	Page      PageContext
	PageTitle string
	HeadTags  []template.HTML
	ThemeCSS  template.CSS
	CustomCSS string
	Footer    footerView
}

// NewEngine parses the embedded templates and precomputes the parts of the
// layout that are the same on every page.
func NewEngine(site *config.SiteDescriptor, opts Options) (*Engine, error) {
	tmpl, err := template.New("").Funcs(BuildFuncMap(site)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	e := &Engine{tmpl: tmpl, site: site, opts: opts}
	e.headTags = renderHeadTags(site.HeadTags)
	e.themeCSS = template.CSS(ThemeCSS(site.Themes()))
	e.footer = buildFooter(site, opts.Year)
	return e, nil
}

// RenderPage renders a full HTML document.
func (e *Engine) RenderPage(ctx PageContext) (string, error) {
	title := e.site.Title
	if ctx.Title != "" && ctx.Title != e.site.Title {
		title = ctx.Title + " | " + e.site.Title
	}

	data := layoutData{
		Site:      e.site,
		Page:      ctx,
		PageTitle: title,
		HeadTags:  e.headTags,
		ThemeCSS:  e.themeCSS,
		Footer:    e.footer,
	}
	if e.opts.CustomCSS != "" {
		data.CustomCSS = e.site.Href(e.opts.CustomCSS)
	}
	return e.render("layout.html", data)
}

func (e *Engine) render(name string, data interface{}) (string, error) {
	t := e.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}

	return buf.String(), nil
}

// ThemeCSS renders both code-highlight stylesheets, each scoped to its
// display mode.
func ThemeCSS(themes highlight.Themes) string {
	return highlight.CSS(themes.Light, `[data-theme="light"]`) +
		highlight.CSS(themes.Dark, `[data-theme="dark"]`)
}

func renderHeadTags(tags []config.HeadTag) []template.HTML {
	out := make([]template.HTML, 0, len(tags))
	for _, tag := range tags {
		out = append(out, template.HTML(node.String(node.El(tag.TagName, node.Props(tag.Attributes)))))
	}
	return out
}

func buildFooter(site *config.SiteDescriptor, year int) footerView {
	f := site.ThemeConfig.Footer
	view := footerView{Style: f.Style, Logo: f.Logo, Copyright: f.CopyrightText(year)}
	for _, group := range f.Links {
		g := footerGroup{Title: group.Title}
		for _, item := range group.Items {
			if item.Href != "" {
				g.Items = append(g.Items, footerLink{Label: item.Label, Href: item.Href, External: true})
				continue
			}
			g.Items = append(g.Items, footerLink{Label: item.Label, Href: site.Href(item.To)})
		}
		view.Groups = append(view.Groups, g)
	}
	return view
}

// isExternal reports whether ref is an absolute URL rather than a site path.
func isExternal(ref string) bool {
	return strings.Contains(ref, "://") || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, "data:")
}
