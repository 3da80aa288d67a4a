package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderElementTree(t *testing.T) {
	t.Parallel()

	tree := El("header", Props{"id": "hero", "class": "hero"},
		El("h1", nil, Text("Retina & friends")),
		nil,
		El("img", Props{"src": "img/logo.svg", "alt": "logo"}),
	)

	require.Equal(t,
		`<header class="hero" id="hero"><h1>Retina &amp; friends</h1><img alt="logo" src="img/logo.svg"/></header>`,
		String(tree))
}

func TestRenderFragmentAndRaw(t *testing.T) {
	t.Parallel()

	tree := Fragment(
		El("p", nil, Text("<b>escaped</b>")),
		Raw(`<svg viewBox="0 0 1 1"></svg>`),
	)

	require.Equal(t, `<p>&lt;b&gt;escaped&lt;/b&gt;</p><svg viewBox="0 0 1 1"></svg>`, String(tree))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *Node {
		return El("a", Props{"href": "/docs", "class": "button", "data-x": "1", "title": "Docs"}, Text("Docs"))
	}
	first := String(build())
	for i := 0; i < 20; i++ {
		require.Equal(t, first, String(build()))
	}
}

func TestVoidElementWithChildrenFails(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", String(El("img", nil, Text("nope"))))
}

func TestQueries(t *testing.T) {
	t.Parallel()

	tree := El("div", nil,
		El("h3", Props{"class": "card title"}, Text("One")),
		El("h3", Props{"class": "card"}, Text("Two")),
	)

	require.Len(t, FindAll(tree, ByType("h3")), 2)
	titles := FindAll(tree, ByClass("title"))
	require.Len(t, titles, 1)
	require.Equal(t, "One", TextContent(titles[0]))
	require.Equal(t, "OneTwo", TextContent(tree))
	require.Equal(t, "", (*Node)(nil).Prop("x"))
}
