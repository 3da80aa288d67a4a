package components

import "github.com/microsoft/retina-site/internal/docsite/node"

// Feature is one card of the Features block.
type Feature struct {
	Title       string
	Icon        string
	Description string
}

// FeatureList is the fixed content of the Features block.
var FeatureList = []Feature{
	{
		Title:       "Cloud Agnostic",
		Icon:        iconCloud,
		Description: "Works on any Kubernetes cluster, in any cloud or on-premises, on both Linux and Windows nodes.",
	},
	{
		Title:       "Actionable Metrics",
		Icon:        iconMetrics,
		Description: "Industry-standard Prometheus metrics for drops, DNS, TCP and forwarded traffic, at node or pod granularity.",
	},
	{
		Title:       "Distributed Packet Captures",
		Icon:        iconCapture,
		Description: "On-demand packet captures across nodes and namespaces, uploaded to the storage of your choice.",
	},
	{
		Title:       "eBPF Powered",
		Icon:        iconBee,
		Description: "Low-overhead collection built on eBPF plugins, with Hubble flows for deep network visibility.",
	},
}

// Features renders the feature cards.
func Features(_ Context) *node.Node {
	cards := make([]*node.Node, 0, len(FeatureList))
	for _, f := range FeatureList {
		cards = append(cards, featureCard(f))
	}
	return node.El("section", node.Props{"class": "features"},
		node.El("div", node.Props{"class": "container"},
			node.El("div", node.Props{"class": "row"}, cards...),
		),
	)
}

func featureCard(f Feature) *node.Node {
	return node.El("div", node.Props{"class": "col col--3 feature"},
		node.El("div", node.Props{"class": "feature__icon", "role": "img", "aria-label": f.Title}, node.Raw(f.Icon)),
		node.El("div", node.Props{"class": "feature__body"},
			node.El("h3", nil, node.Text(f.Title)),
			node.El("p", nil, node.Text(f.Description)),
		),
	)
}

// Highlight is one image-and-text row of the FeatureHighlight block.
type Highlight struct {
	Title       string
	Description string
	Image       string
	Alt         string
}

// HighlightList is the fixed content of the FeatureHighlight block. Image
// paths are static asset paths.
var HighlightList = []Highlight{
	{
		Title:       "Network health at a glance",
		Description: "Pre-built Grafana dashboards turn Retina metrics into cluster-wide views of drops, latency and DNS errors.",
		Image:       "img/highlight-dashboards.svg",
		Alt:         "Grafana dashboard built on Retina metrics",
	},
	{
		Title:       "Captures without SSH",
		Description: "Start a capture from the kubectl plugin or a Capture resource and collect pcap files from every selected node.",
		Image:       "img/highlight-capture.svg",
		Alt:         "Packet capture workflow",
	},
	{
		Title:       "Flows with Hubble",
		Description: "Run Retina with the Hubble control plane to get flow logs, service maps and the Hubble UI on any CNI.",
		Image:       "img/highlight-hubble.svg",
		Alt:         "Hubble service map",
	},
}

// FeatureHighlight renders the highlight rows, alternating the image side.
func FeatureHighlight(ctx Context) *node.Node {
	rows := make([]*node.Node, 0, len(HighlightList))
	for i, h := range HighlightList {
		img := node.El("div", node.Props{"class": "col col--6 highlight__image"},
			node.El("img", node.Props{"src": ctx.Asset(h.Image), "alt": h.Alt, "loading": "lazy"}),
		)
		body := node.El("div", node.Props{"class": "col col--6 highlight__text"},
			node.El("h2", nil, node.Text(h.Title)),
			node.El("p", nil, node.Text(h.Description)),
		)

		class := "row highlight"
		first, second := img, body
		if i%2 == 1 {
			class += " highlight--reverse"
			first, second = body, img
		}
		rows = append(rows, node.El("div", node.Props{"class": class}, first, second))
	}
	return node.El("section", node.Props{"class": "feature-highlights"},
		node.El("div", node.Props{"class": "container"}, rows...),
	)
}
