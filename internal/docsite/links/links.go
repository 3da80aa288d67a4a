// Package links checks that navigation items, footer links and markdown links
// point at something that exists, applying the descriptor's broken-link
// policies.
package links

import (
	"errors"
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

// Checker resolves link targets against the loaded docs, the sidebars and a
// set of extra routes (the home page, static files).
type Checker struct {
	Docs     *docs.Set
	Sidebars *sidebar.Sidebars
	Markdown *docs.Markdown
	Routes   []string
	Log      *logger.Logger
}

// Report holds the non-fatal records of a check.
type Report struct {
	Warnings []*siteerrors.UnresolvedReferenceError
	Checked  int
}

type problem struct {
	kind   siteerrors.ReferenceKind
	ref    string
	source string
}

// Check inspects the descriptor and every loaded doc. Problems found under a
// "throw" policy are returned joined as the error; "warn" and "log" problems
// are logged and returned in the Report; "ignore" skips the class entirely.
func (c *Checker) Check(d *config.SiteDescriptor) (Report, error) {
	routes := c.routeSet()

	var report Report
	var fatal []error

	apply := func(policy string, found []problem) {
		for _, p := range found {
			rec := siteerrors.NewUnresolvedReferenceError(p.kind, p.ref, p.source, policy)
			switch policy {
			case config.PolicyThrow:
				fatal = append(fatal, rec)
			case config.PolicyWarn:
				c.Log.WithFields(map[string]any{"kind": string(p.kind), "ref": p.ref, "source": p.source}).Warn("broken link")
				report.Warnings = append(report.Warnings, rec)
			case config.PolicyLog:
				c.Log.WithFields(map[string]any{"kind": string(p.kind), "ref": p.ref, "source": p.source}).Info("broken link")
				report.Warnings = append(report.Warnings, rec)
			}
		}
	}

	mdFound, bodyFound, mdChecked, bodyChecked := c.docLinks(routes)

	if d.OnBrokenLinks != config.PolicyIgnore {
		found, n := c.siteLinks(d, routes)
		report.Checked += n + bodyChecked
		apply(d.OnBrokenLinks, append(found, bodyFound...))
	}
	if d.OnBrokenMarkdownLinks != config.PolicyIgnore {
		report.Checked += mdChecked
		apply(d.OnBrokenMarkdownLinks, mdFound)
	}

	if len(fatal) > 0 {
		return report, fmt.Errorf("%d broken link(s): %w", len(fatal), errors.Join(fatal...))
	}
	return report, nil
}

func (c *Checker) routeSet() map[string]bool {
	set := map[string]bool{"/": true}
	for _, r := range c.Routes {
		set[normalize(r)] = true
	}
	for _, d := range c.Docs.All() {
		set[normalize(d.Route)] = true
	}
	return set
}

// siteLinks covers navbar targets, footer links and sidebar doc items.
func (c *Checker) siteLinks(d *config.SiteDescriptor, routes map[string]bool) ([]problem, int) {
	var found []problem
	checked := 0

	for i, item := range d.ThemeConfig.Navbar.Items {
		source := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		checked++
		switch item.Type {
		case config.NavDocSidebar:
			if !c.Sidebars.Has(item.SidebarID) {
				found = append(found, problem{siteerrors.RefSidebar, item.SidebarID, source})
			}
		case config.NavDoc:
			if _, ok := c.Docs.ByID(item.DocID); !ok {
				found = append(found, problem{siteerrors.RefDoc, item.DocID, source})
			}
		default:
			if item.To != "" && !routes[normalize(item.To)] {
				found = append(found, problem{siteerrors.RefRoute, item.To, source})
			}
		}
	}

	for i, group := range d.ThemeConfig.Footer.Links {
		for j, item := range group.Items {
			if item.To == "" {
				continue
			}
			checked++
			if !routes[normalize(item.To)] {
				found = append(found, problem{siteerrors.RefRoute, item.To,
					fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", i, j)})
			}
		}
	}

	for _, m := range c.Sidebars.Missing() {
		checked++
		found = append(found, problem{siteerrors.RefDoc, m.DocID, "sidebar " + m.Sidebar})
	}
	return found, checked
}

// docLinks walks the links inside doc bodies. Relative links to markdown
// sources are returned in md; absolute internal links, which are checked
// like any other site link, in site.
func (c *Checker) docLinks(routes map[string]bool) (md, site []problem, mdChecked, siteChecked int) {
	if c.Markdown == nil {
		return nil, nil, 0, 0
	}

	for _, doc := range c.Docs.All() {
		for _, dest := range c.Markdown.Links(doc.Body) {
			switch {
			case docs.IsDocLink(dest):
				mdChecked++
				if _, _, ok := c.Docs.ResolveLink(doc, dest); !ok {
					md = append(md, problem{siteerrors.RefMarkdownLink, dest, doc.RelPath})
				}
			case isInternal(dest):
				siteChecked++
				target, _, _ := strings.Cut(dest, "#")
				if !routes[normalize(target)] {
					site = append(site, problem{siteerrors.RefRoute, dest, doc.RelPath})
				}
			}
		}
	}
	return md, site, mdChecked, siteChecked
}

func isInternal(dest string) bool {
	return strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//")
}

func normalize(route string) string {
	route, _, _ = strings.Cut(route, "?")
	if route == "" || route == "/" {
		return "/"
	}
	return "/" + strings.Trim(route, "/")
}
