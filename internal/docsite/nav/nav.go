// Package nav resolves navbar items for the current route.
package nav

import (
	"regexp"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

// Positions.
const (
	Left  = "left"
	Right = "right"
)

// ResolvedItem is a navbar item ready for rendering.
type ResolvedItem struct {
	Label    string
	Href     string
	External bool
	Position string
	IsActive bool
}

// Resolved holds the navbar items split by position, each in declaration order.
type Resolved struct {
	Left  []ResolvedItem
	Right []ResolvedItem
}

// All returns the left items followed by the right items.
func (r Resolved) All() []ResolvedItem {
	out := make([]ResolvedItem, 0, len(r.Left)+len(r.Right))
	out = append(out, r.Left...)
	return append(out, r.Right...)
}

// Resolver computes hrefs and active state. Docs and Sidebars may be nil, in
// which case doc and docSidebar items link to the docs root and are never active.
type Resolver struct {
	BaseURL  string
	DocsBase string
	Docs     *docs.Set
	Sidebars *sidebar.Sidebars
}

// Resolve positions every navbar item and marks the ones matching route.
// route is a site path without the base URL, such as "/" or "/docs/intro".
func (r *Resolver) Resolve(nb config.Navbar, route string) Resolved {
	route = cleanRoute(route)

	var out Resolved
	for _, item := range nb.Items {
		ri := ResolvedItem{
			Label:    item.Label,
			Position: item.Position,
			IsActive: r.isActive(item, route),
		}
		ri.Href, ri.External = r.href(item)

		if item.Position == Right {
			out.Right = append(out.Right, ri)
		} else {
			ri.Position = Left
			out.Left = append(out.Left, ri)
		}
	}
	return out
}

func (r *Resolver) href(item config.NavItem) (string, bool) {
	switch item.Type {
	case config.NavDocSidebar:
		if id, ok := r.Sidebars.First(item.SidebarID); ok {
			return r.docHref(id), false
		}
		return r.join(r.DocsBase), false
	case config.NavDoc:
		return r.docHref(item.DocID), false
	}
	if item.Href != "" {
		return item.Href, true
	}
	return r.join(item.To), false
}

func (r *Resolver) docHref(id string) string {
	if d, ok := r.Docs.ByID(id); ok {
		return r.join(d.Route)
	}
	return r.join(r.DocsBase)
}

func (r *Resolver) join(p string) string {
	base := strings.TrimSuffix(r.BaseURL, "/")
	return base + "/" + strings.TrimPrefix(p, "/")
}

// isActive applies the first rule that fits the item: activeBaseRegex,
// then activeBasePath, then the item kind's own rule.
func (r *Resolver) isActive(item config.NavItem, route string) bool {
	if item.ActiveBaseRegex != "" {
		re, err := regexp.Compile(item.ActiveBaseRegex)
		if err != nil {
			return false
		}
		return re.MatchString(route)
	}
	if item.ActiveBasePath != "" {
		base := cleanRoute(item.ActiveBasePath)
		return route == base || strings.HasPrefix(route, strings.TrimSuffix(base, "/")+"/")
	}

	switch item.Type {
	case config.NavDocSidebar:
		d, ok := r.Docs.ByRoute(route)
		if !ok {
			return false
		}
		owner, ok := r.Sidebars.SidebarOf(d.ID)
		return ok && owner == item.SidebarID
	case config.NavDoc:
		d, ok := r.Docs.ByID(item.DocID)
		return ok && cleanRoute(d.Route) == route
	}
	if item.To != "" {
		return cleanRoute(item.To) == route
	}
	return false
}

func cleanRoute(route string) string {
	route, _, _ = strings.Cut(route, "#")
	route, _, _ = strings.Cut(route, "?")
	if route == "" || route == "/" {
		return "/"
	}
	return "/" + strings.Trim(route, "/")
}
