package build

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/retina-site/internal/docsite/config"
	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/plugin"
)

func fixedNow() time.Time {
	return time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func loadExample(t *testing.T) *config.SiteDescriptor {
	t.Helper()
	d, err := config.Load("../../../examples/site/retina.yaml", plugin.Default())
	require.NoError(t, err)
	return d
}

func writeSite(t *testing.T, descriptor string, files map[string]string) *config.SiteDescriptor {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "retina.yaml"), []byte(descriptor), 0644))
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	d, err := config.Load(filepath.Join(dir, "retina.yaml"), plugin.Default())
	require.NoError(t, err)
	return d
}

func readOut(t *testing.T, outDir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

// localAssetRef matches images the page loads from the site itself.
var localAssetRef = regexp.MustCompile(`(?:src="/|og:image" content="https://retina\.sh/)([^"#?]+\.(?:svg|png))"`)

func TestBuildExampleSite(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	b := NewBuilder(loadExample(t), nil, logger.Nop(), Options{OutDir: outDir, Now: fixedNow})

	res, err := b.Build(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(res.BuildID)
	require.NoError(t, err)
	require.Equal(t, 5, res.Pages)
	require.Equal(t, outDir, res.OutDir)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, siteerrors.RefMarkdownLink, res.Warnings[0].Kind)
	require.Equal(t, "./conduct.md", res.Warnings[0].Ref)
	require.False(t, res.Warnings[0].Fatal())

	for _, name := range []string{
		"index.html",
		"404.html",
		"docs/Introduction/intro/index.html",
		"docs/Introduction/architecture/index.html",
		"docs/Installation/setup/index.html",
		"docs/Contributing/readme/index.html",
		"sitemap.xml",
		"robots.txt",
		"manifest.json",
		"llms.txt",
		"search-index.json",
		"assets/css/custom.css",
		"img/retina-logo.svg",
		"img/favicon.svg",
	} {
		require.FileExists(t, filepath.Join(outDir, filepath.FromSlash(name)))
	}
	require.NoFileExists(t, filepath.Join(outDir, "img", "social-card.svg"))

	home := readOut(t, outDir, "index.html")
	require.Contains(t, home, "<title>Retina</title>")
	require.Contains(t, home, `href="/docs/Introduction/intro">Get Started</a>`)
	require.Contains(t, home, `"@type":"WebSite"`)
	require.Contains(t, home, "Copyright 2030 Retina Contributors")
	for _, m := range localAssetRef.FindAllStringSubmatch(home, -1) {
		require.FileExists(t, filepath.Join(outDir, filepath.FromSlash(m[1])), m[0])
	}
	require.Contains(t, home, `<meta property="og:image" content="https://retina.sh/img/retina-social-card.png">`)

	intro := readOut(t, outDir, "docs/Introduction/intro/index.html")
	require.Contains(t, intro, "<title>Overview | Retina</title>")
	require.Contains(t, intro, `href="/docs/Introduction/architecture"`)
	require.Contains(t, intro, `href="/docs/Installation/setup#helm"`)
	require.Contains(t, intro, `href="https://github.com/microsoft/retina/blob/main/docs/01-Introduction/01-intro.md"`)
	require.Contains(t, intro, `<li><span>Introduction</span></li>`)
	require.Contains(t, intro, `pagination-nav__link--next" href="/docs/Introduction/architecture"`)
	require.Contains(t, intro, `<a class="navbar__item navbar__link navbar__link--active" href="/docs/Introduction/intro" aria-current="page">Docs</a>`)
	require.Contains(t, intro, `"@type":"TechArticle"`)
	require.Contains(t, intro, `<meta property="og:type" content="article">`)

	arch := readOut(t, outDir, "docs/Introduction/architecture/index.html")
	require.Contains(t, arch, `<pre class="code-block"><code class="language-go">`)

	robots := readOut(t, outDir, "robots.txt")
	require.Contains(t, robots, "Sitemap: https://retina.sh/sitemap.xml")

	sitemap := readOut(t, outDir, "sitemap.xml")
	require.Contains(t, sitemap, "<loc>https://retina.sh/docs/Installation/setup</loc>")
	require.Contains(t, sitemap, "<lastmod>2030-03-01</lastmod>")

	var index []map[string]string
	require.NoError(t, json.Unmarshal([]byte(readOut(t, outDir, "search-index.json")), &index))
	require.Len(t, index, 4)
}

func TestBuildFailsOnThrowPolicy(t *testing.T) {
	t.Parallel()

	d := writeSite(t, `title: Demo
url: https://demo.dev
baseUrl: /demo/
themeConfig:
  navbar:
    items:
      - to: /missing
        label: Missing
`, map[string]string{"docs/intro.md": "# Intro\n"})

	outDir := filepath.Join(t.TempDir(), "out")
	_, err := NewBuilder(d, nil, logger.Nop(), Options{OutDir: outDir}).Build(context.Background())
	require.Error(t, err)

	var ref *siteerrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &ref))
	require.Equal(t, "/missing", ref.Ref)
	require.True(t, ref.Fatal())
	require.NoDirExists(t, outDir)
}

func TestBuildWithoutImageWritesSocialCard(t *testing.T) {
	t.Parallel()

	d := writeSite(t, `title: Demo
tagline: a demo site
url: https://demo.dev
baseUrl: /demo/
`, map[string]string{
		"docs/intro.md":       "---\ntitle: Intro\n---\n\nHello.\n",
		"static/img/logo.svg": "<svg/>",
	})

	outDir := t.TempDir()
	res, err := NewBuilder(d, nil, logger.Nop(), Options{OutDir: outDir, Now: fixedNow}).Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, res.Pages)
	require.Empty(t, res.Warnings)

	card := readOut(t, outDir, "img/social-card.svg")
	require.Contains(t, card, ">Demo</text>")
	require.FileExists(t, filepath.Join(outDir, "img", "logo.svg"))

	home := readOut(t, outDir, "index.html")
	require.Contains(t, home, `<meta property="og:image" content="https://demo.dev/demo/img/social-card.svg">`)
	require.Contains(t, home, `href="/demo/docs/intro">Get Started</a>`)

	intro := readOut(t, outDir, "docs/intro/index.html")
	require.Contains(t, intro, "<title>Intro | Demo</title>")
	require.Contains(t, intro, `<meta name="description" content="Hello.">`)
}

func TestSiteRender(t *testing.T) {
	t.Parallel()

	site, err := NewBuilder(loadExample(t), nil, logger.Nop(), Options{Now: fixedNow}).Site(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{
		"/",
		"/docs/Introduction/intro",
		"/docs/Introduction/architecture",
		"/docs/Installation/setup",
		"/docs/Contributing/readme",
	}, site.Routes())

	html, ok, err := site.Render("/docs/Installation/setup/")
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, html, "<title>Setup | Retina</title>")

	_, ok, err = site.Render("/docs/nope")
	require.NoError(t, err)
	require.False(t, ok)

	notFound, err := site.NotFound()
	require.NoError(t, err)
	require.Contains(t, notFound, "Page Not Found")

	data, ok := site.File("/robots.txt")
	require.True(t, ok)
	require.NotEmpty(t, data)
	require.Contains(t, site.Files(), "llms.txt")

	require.Contains(t, site.WatchPaths(), site.Descriptor.Dir)
	require.Contains(t, site.WatchPaths(), site.DocsDir)
}

func TestPageFile(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/":                        "index.html",
		"/docs/Introduction/intro": filepath.Join("docs", "Introduction", "intro", "index.html"),
		"/docs/x/":                 filepath.Join("docs", "x", "index.html"),
	}
	for route, want := range tests {
		require.Equal(t, want, pageFile(route), route)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", summarize("short", 10))
	require.Equal(t, "one two…", summarize("one two three", 9))
	require.Equal(t, "abcd…", summarize("abcdefgh", 4))
}
