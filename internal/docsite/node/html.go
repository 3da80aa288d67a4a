package node

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
)

// Render serializes the tree as HTML.
func Render(w io.Writer, n *Node) error {
	for _, hn := range toHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("rendering <%s>: %w", n.Type, err)
		}
	}
	return nil
}

// String renders the tree to a string. Render errors only arise from
// malformed trees (children under void elements) and yield "".
func String(n *Node) string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

func toHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case TypeText:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case TypeRaw:
		return []*html.Node{{Type: html.RawNode, Data: n.Text}}
	case TypeFragment:
		var out []*html.Node
		for _, c := range n.Children {
			out = append(out, toHTML(c)...)
		}
		return out
	}

	el := &html.Node{Type: html.ElementNode, Data: n.Type, Attr: attrs(n.Props)}
	for _, c := range n.Children {
		for _, hc := range toHTML(c) {
			el.AppendChild(hc)
		}
	}
	return []*html.Node{el}
}

func attrs(props Props) []html.Attribute {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, html.Attribute{Key: k, Val: props[k]})
	}
	return out
}
