package output

import (
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

// GenerateLlmsTxt generates an llms.txt file in the llmstxt.org format.
// Top-level sidebar categories become sections; docs outside any category
// are listed under "Docs" and docs outside every sidebar under "Other".
func GenerateLlmsTxt(site *config.SiteDescriptor, set *docs.Set, sidebars *sidebar.Sidebars) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s", site.Title))
	lines = append(lines, "")

	if site.Tagline != "" {
		lines = append(lines, fmt.Sprintf("> %s", site.Tagline))
		lines = append(lines, "")
	}

	listed := make(map[string]bool)
	docLine := func(id string) (string, bool) {
		d, ok := set.ByID(id)
		if !ok || listed[id] {
			return "", false
		}
		listed[id] = true
		return fmt.Sprintf("- [%s](%s)", d.Title, site.AbsoluteURL(d.Route)), true
	}

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("## %s", title))
		lines = append(lines, items...)
		lines = append(lines, "")
	}

	for _, id := range sidebars.IDs() {
		var loose []string
		for _, e := range sidebars.Entries(id) {
			switch e.Type {
			case sidebar.TypeDoc:
				if l, ok := docLine(e.DocID); ok {
					loose = append(loose, l)
				}
			case sidebar.TypeCategory:
				var items []string
				for _, docID := range categoryDocIDs(e) {
					if l, ok := docLine(docID); ok {
						items = append(items, l)
					}
				}
				section(e.Label, items)
			}
		}
		section("Docs", loose)
	}

	var other []string
	for _, d := range set.All() {
		if l, ok := docLine(d.ID); ok {
			other = append(other, l)
		}
	}
	section("Other", other)

	return strings.Join(lines, "\n")
}

func categoryDocIDs(e sidebar.Entry) []string {
	var ids []string
	for _, child := range e.Items {
		switch child.Type {
		case sidebar.TypeDoc:
			ids = append(ids, child.DocID)
		case sidebar.TypeCategory:
			ids = append(ids, categoryDocIDs(child)...)
		}
	}
	return ids
}
