package output

import (
	"encoding/json"
	"mime"
	"path"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

// Fallback colors when the light code theme leaves them unset.
const (
	defaultBackground = "#ffffff"
	defaultTheme      = "#2f6df6"
)

// GenerateManifest generates a web app manifest.json. Its colors follow the
// plain style of the light code theme so the installed app matches the site.
func GenerateManifest(site *config.SiteDescriptor) string {
	plain := site.Themes().Light.Plain

	background := plain.BackgroundColor
	if background == "" {
		background = defaultBackground
	}
	theme := plain.Color
	if theme == "" {
		theme = defaultTheme
	}

	shortName := site.ProjectName
	if shortName == "" {
		shortName = site.Title
	}

	manifest := map[string]interface{}{
		"name":             site.Title,
		"short_name":       shortName,
		"description":      site.Tagline,
		"start_url":        site.BaseURL,
		"lang":             site.I18n.DefaultLocale,
		"display":          "standalone",
		"background_color": background,
		"theme_color":      theme,
	}
	if site.Favicon != "" {
		icon := map[string]string{"src": site.Href(site.Favicon), "sizes": "any"}
		if typ := mime.TypeByExtension(path.Ext(site.Favicon)); typ != "" {
			icon["type"] = typ
		}
		manifest["icons"] = []map[string]string{icon}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
