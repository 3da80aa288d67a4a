package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microsoft/retina-site/internal/docsite/logger"
)

const exampleDocs = "../../../examples/docs"

func writeDoc(t *testing.T, dir, rel, contents string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
}

func TestLoadExampleDocs(t *testing.T) {
	t.Parallel()

	l := &Loader{Dir: exampleDocs, RouteBasePath: "docs", Log: logger.Nop()}
	loaded, err := l.Load()
	require.NoError(t, err)

	set := NewSet(loaded)
	require.Len(t, set.All(), 4)

	intro, ok := set.ByID("Introduction/intro")
	require.True(t, ok)
	require.Equal(t, "Overview", intro.Title)
	require.Equal(t, "/docs/Introduction/intro", intro.Route)
	require.Equal(t, "Introduction", intro.Dir)
	require.True(t, intro.HasPosition)
	require.Equal(t, 1.0, intro.Position)

	arch, ok := set.ByID("Introduction/architecture")
	require.True(t, ok)
	require.Equal(t, "Architecture", arch.Title)
	require.Equal(t, 2.0, arch.Position)

	contrib, ok := set.ByRoute("/docs/Contributing/readme/")
	require.True(t, ok)
	require.Equal(t, "Contributing", contrib.Label())
	require.Equal(t, "Contributing to Retina", contrib.Title)
	require.False(t, contrib.HasPosition)
}

func TestLoaderRoutesAndTitles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "getting-started.md", "plain body without heading\n")
	writeDoc(t, dir, "guides/03-deep_dive.mdx", "---\nslug: dive\n---\n# Deep\n")
	writeDoc(t, dir, "guides/abs.md", "---\nslug: /custom/place\n---\n")
	writeDoc(t, dir, "_drafts/hidden.md", "# Hidden\n")
	writeDoc(t, dir, "notes.txt", "ignored")

	l := &Loader{Dir: dir, RouteBasePath: "/", Log: logger.Nop()}
	loaded, err := l.Load()
	require.NoError(t, err)

	set := NewSet(loaded)
	require.Len(t, set.All(), 3)

	gs, ok := set.ByID("getting-started")
	require.True(t, ok)
	require.Equal(t, "Getting Started", gs.Title)
	require.Equal(t, "/getting-started", gs.Route)

	dive, ok := set.ByID("guides/deep_dive")
	require.True(t, ok)
	require.Equal(t, "Deep", dive.Title)
	require.Equal(t, "/guides/dive", dive.Route)
	require.Equal(t, 3.0, dive.Position)

	abs, ok := set.ByID("guides/abs")
	require.True(t, ok)
	require.Equal(t, "/custom/place", abs.Route)
}

func TestLoaderRejectsEscapingSlugs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "---\nslug: ../../../outside\n---\n# A\n")
	writeDoc(t, dir, "guides/b.md", "---\nslug: ../../b\n---\n# B\n")
	writeDoc(t, dir, "guides/c.md", "---\nid: ../c\n---\n# C\n")
	writeDoc(t, dir, "guides/d.md", "---\nslug: /../../d\n---\n# D\n")
	writeDoc(t, dir, "guides/e.md", "---\nslug: ../e\n---\n# E\n")

	l := &Loader{Dir: dir, RouteBasePath: "docs", Log: logger.Nop()}
	loaded, err := l.Load()
	require.NoError(t, err)

	routes := map[string]string{}
	for _, d := range loaded {
		routes[d.RelPath] = d.Route
	}
	require.Equal(t, map[string]string{
		"guides/d.md": "/docs/d",
		"guides/e.md": "/docs/e",
	}, routes)
	for _, route := range routes {
		require.True(t, strings.HasPrefix(route, "/docs/"), route)
	}
}

func TestLoaderRejectsDuplicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "id",
			files: map[string]string{
				"intro.md": "# Intro\n",
				"other.md": "---\nid: intro\n---\n# Other\n",
			},
			want: `duplicate doc id "intro" in intro.md and other.md`,
		},
		{
			name: "route",
			files: map[string]string{
				"a.md": "---\nslug: /same\n---\n",
				"b.md": "---\nslug: /same\n---\n",
			},
			want: `duplicate doc route "/docs/same" in a.md and b.md`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for rel, contents := range tc.files {
				writeDoc(t, dir, rel, contents)
			}
			l := &Loader{Dir: dir, RouteBasePath: "docs", Log: logger.Nop()}
			_, err := l.Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewSetKeepsFirstDuplicate(t *testing.T) {
	t.Parallel()

	a := &Doc{ID: "same", RelPath: "a.md", Route: "/docs/same"}
	b := &Doc{ID: "same", RelPath: "b.md", Route: "/docs/same"}
	set := NewSet([]*Doc{b, a})

	got, ok := set.ByID("same")
	require.True(t, ok)
	require.Same(t, a, got)
	got, ok = set.ByRoute("/docs/same")
	require.True(t, ok)
	require.Same(t, a, got)
}

func TestLoadMissingDirYieldsNothing(t *testing.T) {
	t.Parallel()

	l := &Loader{Dir: filepath.Join(t.TempDir(), "nope"), Log: logger.Nop()}
	loaded, err := l.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	a := &Doc{ID: "Introduction/intro", RelPath: "01-Introduction/01-intro.md"}
	b := &Doc{ID: "Installation/setup", RelPath: "02-Installation/01-setup.md"}
	set := NewSet([]*Doc{a, b})

	got, frag, ok := set.ResolveLink(a, "../02-Installation/01-setup.md#helm")
	require.True(t, ok)
	require.Same(t, b, got)
	require.Equal(t, "helm", frag)

	_, _, ok = set.ResolveLink(a, "./missing.md")
	require.False(t, ok)
}

func TestIsDocLink(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"./other.md":               true,
		"../x/y.mdx#frag":          true,
		"other.md":                 true,
		"/docs/intro":              false,
		"https://example.com/a.md": false,
		"#section":                 false,
		"mailto:someone@x.dev":     false,
		"image.png":                false,
		"":                         false,
	}
	for dest, want := range cases {
		require.Equal(t, want, IsDocLink(dest), dest)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	md := NewMarkdown()
	src := []byte("# Title\n\nSee [next](./next.md) and [site](https://retina.sh).\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	require.Equal(t, []string{"./next.md", "https://retina.sh"}, md.Links(src))

	html, err := md.ToHTML(src, func(dest string) (string, bool) {
		if IsDocLink(dest) {
			return "/docs/next", true
		}
		return "", false
	})
	require.NoError(t, err)
	require.Contains(t, html, `<h1 id="title">Title</h1>`)
	require.Contains(t, html, `href="/docs/next"`)
	require.Contains(t, html, `href="https://retina.sh"`)
	require.Contains(t, html, "<table>")

	require.Equal(t, "Title See next and site. a b 1 2", md.PlainText(src))
}

func TestMarkdownCodeBlock(t *testing.T) {
	t.Parallel()

	md := NewMarkdown()
	html, err := md.ToHTML([]byte("```go\nif a < b {\n}\n```\n"), nil)
	require.NoError(t, err)
	require.Equal(t,
		"<pre class=\"code-block\"><code class=\"language-go\"><span class=\"token plain\">if a &lt; b {\n}\n</span></code></pre>\n",
		html)
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Getting Started", Humanize("getting-started"))
	require.Equal(t, "Deep Dive", Humanize("deep_dive"))
	require.Equal(t, "Contributing", StripPrefix("07-Contributing"))
	pos, ok := PrefixPosition("07-Contributing")
	require.True(t, ok)
	require.Equal(t, 7.0, pos)
	_, ok = PrefixPosition("2024")
	require.False(t, ok)
	require.True(t, strings.HasPrefix(Humanize("a-b"), "A"))
}
