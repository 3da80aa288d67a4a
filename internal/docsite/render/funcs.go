package render

import (
	"html/template"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

// BuildFuncMap returns the template helpers bound to the site.
func BuildFuncMap(site *config.SiteDescriptor) template.FuncMap {
	return template.FuncMap{
		"asset": func(ref string) string {
			if ref == "" || isExternal(ref) {
				return ref
			}
			return site.Href(ref)
		},
		"default": defaultVal,
	}
}

// defaultVal returns def when val is nil or an empty string.
func defaultVal(def, val interface{}) interface{} {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}
