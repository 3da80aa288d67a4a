package links

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/logger"
	"github.com/microsoft/retina-site/internal/docsite/sidebar"
)

func newChecker(t *testing.T, log *logger.Logger) *Checker {
	t.Helper()

	l := &docs.Loader{Dir: "../../../examples/docs", RouteBasePath: "docs", Log: logger.Nop()}
	loaded, err := l.Load()
	require.NoError(t, err)
	set := docs.NewSet(loaded)

	return &Checker{
		Docs:     set,
		Sidebars: sidebar.Resolve(sidebar.Default(), set),
		Markdown: docs.NewMarkdown(),
		Routes:   []string{"/img/retina-logo.svg"},
		Log:      log,
	}
}

func parse(t *testing.T, extra string) *config.SiteDescriptor {
	t.Helper()
	d, err := config.Parse([]byte("title: Retina\nurl: https://retina.sh\nbaseUrl: /\n"+extra), config.FormatYAML, nil)
	require.NoError(t, err)
	return d
}

func TestExampleSiteWarnsOnBrokenMarkdownLink(t *testing.T) {
	t.Parallel()

	d, err := config.Load("../../../examples/site/retina.yaml", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	report, err := newChecker(t, log).Check(d)
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)

	w := report.Warnings[0]
	require.Equal(t, siteerrors.RefMarkdownLink, w.Kind)
	require.Equal(t, "./conduct.md", w.Ref)
	require.Equal(t, "07-Contributing/readme.md", w.Source)
	require.Equal(t, config.PolicyWarn, w.Policy)
	require.False(t, w.Fatal())
	require.Greater(t, report.Checked, 3)

	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), `"ref":"./conduct.md"`)
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	nav := `themeConfig:
  navbar:
    items:
      - {label: Home, to: /}
      - {type: doc, docId: Introduction/nope, label: Missing}
      - {type: docSidebar, sidebarId: apiSidebar, label: API}
  footer:
    links:
      - items:
          - {label: Logo, to: /img/retina-logo.svg}
          - {label: Blog, to: /blog}
`

	cases := []struct {
		name         string
		policy       string
		wantErr      bool
		wantWarnings int
	}{
		{name: "throw aborts", policy: "throw", wantErr: true},
		{name: "warn completes with records", policy: "warn", wantWarnings: 3},
		{name: "log completes with records", policy: "log", wantWarnings: 3},
		{name: "ignore skips the class", policy: "ignore"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := parse(t, "onBrokenLinks: "+tc.policy+"\nonBrokenMarkdownLinks: ignore\n"+nav)
			report, err := newChecker(t, logger.Nop()).Check(d)
			if tc.wantErr {
				require.Error(t, err)
				var ref *siteerrors.UnresolvedReferenceError
				require.ErrorAs(t, err, &ref)
				require.True(t, ref.Fatal())
				require.Equal(t, siteerrors.RefDoc, ref.Kind)
				require.Equal(t, "Introduction/nope", ref.Ref)
				require.Contains(t, err.Error(), "3 broken link(s)")
				require.Contains(t, err.Error(), `"apiSidebar"`)
				require.Contains(t, err.Error(), `"/blog"`)
				return
			}
			require.NoError(t, err)
			require.Len(t, report.Warnings, tc.wantWarnings)
			for _, w := range report.Warnings {
				require.Equal(t, tc.policy, w.Policy)
			}
		})
	}
}

func TestMarkdownThrow(t *testing.T) {
	t.Parallel()

	d := parse(t, "onBrokenMarkdownLinks: throw\n")
	_, err := newChecker(t, logger.Nop()).Check(d)
	var ref *siteerrors.UnresolvedReferenceError
	require.ErrorAs(t, err, &ref)
	require.Equal(t, siteerrors.RefMarkdownLink, ref.Kind)
	require.Equal(t, "./conduct.md", ref.Ref)
}

func TestMissingSidebarDocIsReported(t *testing.T) {
	t.Parallel()

	def, err := sidebar.Parse("sidebars.yaml", []byte("mainSidebar: [Introduction/intro, Introduction/gone]\n"))
	require.NoError(t, err)

	c := newChecker(t, logger.Nop())
	c.Sidebars = sidebar.Resolve(def, c.Docs)

	report, err := c.Check(parse(t, "onBrokenLinks: warn\nonBrokenMarkdownLinks: ignore\n"))
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	require.Equal(t, "Introduction/gone", report.Warnings[0].Ref)
	require.Equal(t, "sidebar mainSidebar", report.Warnings[0].Source)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/", normalize(""))
	require.Equal(t, "/", normalize("/"))
	require.Equal(t, "/docs/intro", normalize("/docs/intro/"))
	require.Equal(t, "/docs/intro", normalize("docs/intro?x=1"))
}
