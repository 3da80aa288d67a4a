// Package schema generates JSON-LD structured data for site pages.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

// Generator creates JSON-LD structured data.
type Generator struct {
	Site *config.SiteDescriptor
}

// NewGenerator creates a new JSON-LD generator.
func NewGenerator(site *config.SiteDescriptor) *Generator {
	return &Generator{Site: site}
}

// BreadcrumbItem is one step of a breadcrumb trail. The last item usually
// has no URL.
type BreadcrumbItem struct {
	Name string
	URL  string
}

// GenerateWebSiteSchema generates WebSite JSON-LD for the home page.
func (g *Generator) GenerateWebSiteSchema(imageURL string) map[string]interface{} {
	siteURL := g.Site.AbsoluteURL("/")
	s := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        g.Site.Title,
		"url":         siteURL,
		"description": g.Site.Tagline,
	}
	if g.Site.OrganizationName != "" {
		s["publisher"] = map[string]interface{}{
			"@type": "Organization",
			"name":  g.Site.OrganizationName,
		}
	}
	if imageURL != "" {
		s["image"] = imageURL
	}
	return s
}

// GenerateArticleSchema generates TechArticle JSON-LD for a doc page.
func (g *Generator) GenerateArticleSchema(title, description, pageURL string) map[string]interface{} {
	s := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": title,
		"url":      pageURL,
		"isPartOf": map[string]interface{}{
			"@type": "WebSite",
			"name":  g.Site.Title,
			"url":   g.Site.AbsoluteURL("/"),
		},
	}
	if description != "" {
		s["description"] = description
	}
	if len(g.Site.I18n.DefaultLocale) > 0 {
		s["inLanguage"] = g.Site.I18n.DefaultLocale
	}
	return s
}

// GenerateBreadcrumbSchema generates BreadcrumbList JSON-LD.
func (g *Generator) GenerateBreadcrumbSchema(items []BreadcrumbItem) map[string]interface{} {
	if len(items) == 0 {
		return nil
	}
	var listItems []map[string]interface{}
	for i, item := range items {
		li := map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
		}
		if item.URL != "" {
			li["item"] = item.URL
		}
		listItems = append(listItems, li)
	}

	return map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": listItems,
	}
}

// MarshalSchemas renders each non-nil schema as a <script> tag.
func MarshalSchemas(schemas ...map[string]interface{}) string {
	var parts []string
	for _, s := range schemas {
		if s == nil {
			continue
		}
		data, err := json.Marshal(s)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf(`<script type="application/ld+json">%s</script>`, string(data)))
	}
	return strings.Join(parts, "\n")
}
