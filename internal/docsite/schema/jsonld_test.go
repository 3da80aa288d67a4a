package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

func testSite() *config.SiteDescriptor {
	return &config.SiteDescriptor{
		Title:            "Retina",
		Tagline:          "kubernetes network observability platform",
		URL:              "https://retina.sh",
		BaseURL:          "/",
		OrganizationName: "Azure",
		I18n:             config.I18nConfig{DefaultLocale: "en", Locales: []string{"en"}},
	}
}

func TestGenerateWebSiteSchema(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testSite())

	s := g.GenerateWebSiteSchema("https://retina.sh/img/card.png")
	require.Equal(t, "WebSite", s["@type"])
	require.Equal(t, "https://retina.sh/", s["url"])
	require.Equal(t, "https://retina.sh/img/card.png", s["image"])
	require.Equal(t, map[string]interface{}{"@type": "Organization", "name": "Azure"}, s["publisher"])

	noImage := g.GenerateWebSiteSchema("")
	require.NotContains(t, noImage, "image")
}

func TestGenerateArticleSchema(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testSite())
	s := g.GenerateArticleSchema("Overview", "", "https://retina.sh/docs/Introduction/intro")

	require.Equal(t, "TechArticle", s["@type"])
	require.Equal(t, "Overview", s["headline"])
	require.Equal(t, "en", s["inLanguage"])
	require.NotContains(t, s, "description")
}

func TestGenerateBreadcrumbSchema(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testSite())
	require.Nil(t, g.GenerateBreadcrumbSchema(nil))

	s := g.GenerateBreadcrumbSchema([]BreadcrumbItem{
		{Name: "Docs", URL: "https://retina.sh/docs"},
		{Name: "Overview"},
	})
	items, ok := s["itemListElement"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[1]["position"])
	require.NotContains(t, items[1], "item")
}

func TestMarshalSchemas(t *testing.T) {
	t.Parallel()

	g := NewGenerator(testSite())
	out := MarshalSchemas(g.GenerateWebSiteSchema(""), nil)

	require.True(t, strings.HasPrefix(out, `<script type="application/ld+json">`))
	require.Equal(t, 1, strings.Count(out, "<script"))

	body := strings.TrimSuffix(strings.TrimPrefix(out, `<script type="application/ld+json">`), "</script>")
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	require.Equal(t, "Retina", decoded["name"])
}
