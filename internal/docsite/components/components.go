// Package components holds the landing page components. Every component is a
// pure function from a Context to a node tree; none of them keep state or
// return errors, and missing context fields render as empty text.
package components

import (
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/node"
)

// Context is the read-only site data a component may use.
type Context struct {
	Title   string
	Tagline string
	BaseURL string
	// DocsURL is the call-to-action target, usually the first doc of the main sidebar.
	DocsURL string
}

// PageComponent renders a whole page body.
type PageComponent func(Context) *node.Node

// NewContext borrows the descriptor fields a component needs. A nil
// descriptor yields an empty context.
func NewContext(d *config.SiteDescriptor, docsURL string) Context {
	if d == nil {
		return Context{DocsURL: docsURL}
	}
	return Context{Title: d.Title, Tagline: d.Tagline, BaseURL: d.BaseURL, DocsURL: docsURL}
}

// Asset joins a static asset path with the base URL.
func (c Context) Asset(p string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(p, "/")
}

func (c Context) docsHref() string {
	if c.DocsURL != "" {
		return c.DocsURL
	}
	return c.Asset("docs/")
}

// Header is the hero banner with the site title and tagline. Extra nodes,
// such as call-to-action buttons, follow the tagline.
func Header(ctx Context, extra ...*node.Node) *node.Node {
	children := append([]*node.Node{
		node.El("h1", node.Props{"class": "hero__title"}, node.Text(ctx.Title)),
		node.El("p", node.Props{"class": "hero__subtitle"}, node.Text(ctx.Tagline)),
	}, extra...)
	return node.El("header", node.Props{"class": "hero hero--primary"},
		node.El("div", node.Props{"class": "container"}, children...),
	)
}

// LandingPage composes the header with the feature cards.
func LandingPage(ctx Context) *node.Node {
	return node.Fragment(
		Header(ctx),
		node.El("main", nil, Features(ctx)),
	)
}

// Home is the full home page: hero with call to action, the marketing
// copy, the highlight rows and the feature cards.
func Home(ctx Context) *node.Node {
	cta := node.El("div", node.Props{"class": "buttons"},
		node.El("a", node.Props{"class": "button button--secondary button--lg", "href": ctx.docsHref()},
			node.Text("Get Started"),
		),
	)

	var copyNodes []*node.Node
	if ctx.Title != "" {
		copyNodes = append(copyNodes, node.El("h2", nil, node.Text("What is "+ctx.Title+"?")))
	}
	copyNodes = append(copyNodes, paragraphs(marketingCopy)...)
	intro := node.El("section", node.Props{"class": "intro"},
		node.El("div", node.Props{"class": "container"}, copyNodes...),
	)

	return node.Fragment(
		Header(ctx, cta),
		node.El("main", nil, intro, FeatureHighlight(ctx), Features(ctx)),
	)
}

var marketingCopy = []string{
	"Retina is a cloud-agnostic, open-source Kubernetes network observability platform. " +
		"It provides a centralized hub for monitoring application health, network health and security.",
	"Retina collects customizable telemetry that can be exported to multiple storage options " +
		"such as Prometheus, Azure Monitor and other vendors, and visualized in a variety of ways " +
		"like Grafana, Azure Log Analytics and other tools.",
	"It helps DevOps, SecOps and compliance teams understand how traffic moves through their " +
		"clusters, debug connectivity issues and capture packets on demand.",
}

func paragraphs(texts []string) []*node.Node {
	out := make([]*node.Node, len(texts))
	for i, t := range texts {
		out[i] = node.El("p", nil, node.Text(t))
	}
	return out
}
