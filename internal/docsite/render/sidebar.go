package render

import (
	"github.com/microsoft/retina-site/internal/docsite/node"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

// SidebarTree renders resolved sidebar entries as nested lists. The entry for
// activeDocID is marked, and so is every category containing it.
func SidebarTree(entries []sidebar.Entry, activeDocID string, docHref func(id string) string) *node.Node {
	list, _ := sidebarList(entries, activeDocID, docHref)
	return node.El("nav", node.Props{"class": "menu", "aria-label": "Docs sidebar"}, list)
}

func sidebarList(entries []sidebar.Entry, activeDocID string, docHref func(string) string) (*node.Node, bool) {
	items := make([]*node.Node, 0, len(entries))
	containsActive := false

	for _, e := range entries {
		switch e.Type {
		case sidebar.TypeDoc:
			props := node.Props{"class": "menu__link", "href": docHref(e.DocID)}
			if e.DocID == activeDocID {
				props["class"] = "menu__link menu__link--active"
				props["aria-current"] = "page"
				containsActive = true
			}
			items = append(items, node.El("li", node.Props{"class": "menu__list-item"},
				node.El("a", props, node.Text(e.Label))))
		case sidebar.TypeLink:
			items = append(items, node.El("li", node.Props{"class": "menu__list-item"},
				node.El("a", node.Props{
					"class":  "menu__link menu__link--external",
					"href":   e.Href,
					"target": "_blank",
					"rel":    "noopener noreferrer",
				}, node.Text(e.Label))))
		case sidebar.TypeCategory:
			sub, active := sidebarList(e.Items, activeDocID, docHref)
			class := "menu__list-item menu__list-item--category"
			if active {
				class += " menu__list-item--active"
				containsActive = true
			}
			items = append(items, node.El("li", node.Props{"class": class},
				node.El("div", node.Props{"class": "menu__caret"}, node.Text(e.Label)),
				sub,
			))
		}
	}
	return node.El("ul", node.Props{"class": "menu__list"}, items...), containsActive
}
