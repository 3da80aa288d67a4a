package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

func fixtureResolver(baseURL string) *Resolver {
	set := docs.NewSet([]*docs.Doc{
		{ID: "Introduction/intro", RelPath: "01-Introduction/01-intro.md", Dir: "Introduction", Route: "/docs/Introduction/intro", Title: "Overview", Position: 1, HasPosition: true},
		{ID: "Installation/setup", RelPath: "02-Installation/01-setup.md", Dir: "Installation", Route: "/docs/Installation/setup", Title: "Setup"},
	})
	return &Resolver{
		BaseURL:  baseURL,
		DocsBase: "/docs",
		Docs:     set,
		Sidebars: sidebar.Resolve(sidebar.Default(), set),
	}
}

var retinaNavbar = config.Navbar{Items: []config.NavItem{
	{Type: config.NavDefault, Label: "Home", Position: Left, To: "/", ActiveBaseRegex: `^\/$`},
	{Type: config.NavDocSidebar, Label: "Docs", Position: Left, SidebarID: "mainSidebar"},
	{Type: config.NavDefault, Label: "GitHub", Position: Right, Href: "https://github.com/microsoft/retina"},
}}

func labels(items []ResolvedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestBucketsPreserveDeclarationOrder(t *testing.T) {
	t.Parallel()

	nb := config.Navbar{Items: []config.NavItem{
		{Label: "GitHub", Position: Right, Href: "https://github.com/microsoft/retina"},
		{Label: "Home", Position: Left, To: "/"},
		{Label: "Blog", Position: Right, To: "/blog"},
		{Label: "Docs", Position: Left, To: "/docs"},
	}}

	got := fixtureResolver("/").Resolve(nb, "/")
	require.Equal(t, []string{"Home", "Docs"}, labels(got.Left))
	require.Equal(t, []string{"GitHub", "Blog"}, labels(got.Right))
	require.Equal(t, []string{"Home", "Docs", "GitHub", "Blog"}, labels(got.All()))
}

func TestRetinaNavbar(t *testing.T) {
	t.Parallel()

	r := fixtureResolver("/")

	home := r.Resolve(retinaNavbar, "/")
	require.Equal(t, []string{"Home", "Docs"}, labels(home.Left))
	require.Equal(t, []string{"GitHub"}, labels(home.Right))
	require.True(t, home.Left[0].IsActive)
	require.False(t, home.Left[1].IsActive)
	require.Equal(t, "/", home.Left[0].Href)
	require.Equal(t, "/docs/Introduction/intro", home.Left[1].Href)
	require.Equal(t, ResolvedItem{Label: "GitHub", Href: "https://github.com/microsoft/retina", External: true, Position: Right}, home.Right[0])

	doc := r.Resolve(retinaNavbar, "/docs/intro")
	require.False(t, doc.Left[0].IsActive)
	require.False(t, doc.Left[1].IsActive)

	inSidebar := r.Resolve(retinaNavbar, "/docs/Installation/setup/")
	require.False(t, inSidebar.Left[0].IsActive)
	require.True(t, inSidebar.Left[1].IsActive)
	require.False(t, inSidebar.Right[0].IsActive)
}

func TestActiveRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		item  config.NavItem
		route string
		want  bool
	}{
		{name: "regex matches", item: config.NavItem{To: "/", ActiveBaseRegex: `^/docs/`}, route: "/docs/x", want: true},
		{name: "regex wins over to", item: config.NavItem{To: "/", ActiveBaseRegex: `^/blog`}, route: "/", want: false},
		{name: "base path prefix", item: config.NavItem{To: "/docs", ActiveBasePath: "/docs"}, route: "/docs/Introduction/intro", want: true},
		{name: "base path exact", item: config.NavItem{To: "/docs", ActiveBasePath: "docs/"}, route: "/docs", want: true},
		{name: "base path is not a string prefix", item: config.NavItem{To: "/docs", ActiveBasePath: "/doc"}, route: "/docs", want: false},
		{name: "to exact match", item: config.NavItem{To: "/blog/"}, route: "/blog", want: true},
		{name: "to ignores fragment", item: config.NavItem{To: "/blog"}, route: "/blog#top", want: true},
		{name: "to is not a prefix match", item: config.NavItem{To: "/blog"}, route: "/blog/post", want: false},
		{name: "href never active", item: config.NavItem{Href: "https://x.dev"}, route: "/", want: false},
		{name: "doc item", item: config.NavItem{Type: config.NavDoc, DocID: "Installation/setup"}, route: "/docs/Installation/setup", want: true},
		{name: "doc item other route", item: config.NavItem{Type: config.NavDoc, DocID: "Installation/setup"}, route: "/docs/Introduction/intro", want: false},
		{name: "sidebar outside docs", item: config.NavItem{Type: config.NavDocSidebar, SidebarID: "mainSidebar"}, route: "/", want: false},
		{name: "unknown sidebar", item: config.NavItem{Type: config.NavDocSidebar, SidebarID: "other"}, route: "/docs/Introduction/intro", want: false},
	}

	r := fixtureResolver("/")
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := r.Resolve(config.Navbar{Items: []config.NavItem{tc.item}}, tc.route)
			require.Equal(t, tc.want, got.All()[0].IsActive)
		})
	}
}

func TestHrefsUseBaseURL(t *testing.T) {
	t.Parallel()

	r := fixtureResolver("/retina/")
	nb := config.Navbar{Items: []config.NavItem{
		{Type: config.NavDefault, Label: "Home", To: "/"},
		{Type: config.NavDoc, Label: "Setup", DocID: "Installation/setup"},
		{Type: config.NavDocSidebar, Label: "Other", SidebarID: "missing"},
	}}

	got := r.Resolve(nb, "/")
	require.Equal(t, "/retina/", got.Left[0].Href)
	require.Equal(t, "/retina/docs/Installation/setup", got.Left[1].Href)
	require.Equal(t, "/retina/docs", got.Left[2].Href)
	for _, it := range got.Left {
		require.Equal(t, Left, it.Position)
	}
}

func TestNilCollaborators(t *testing.T) {
	t.Parallel()

	r := &Resolver{BaseURL: "/", DocsBase: "/docs"}
	got := r.Resolve(retinaNavbar, "/docs/anything")
	require.Equal(t, "/docs", got.Left[1].Href)
	require.False(t, got.Left[1].IsActive)
}
