// Package node models rendered pages as trees of records (type tag, props,
// children) that can be serialized by any backend. The HTML backend lives in
// html.go.
package node

import (
	"strings"
)

// Reserved node types for non-element nodes.
const (
	TypeText     = "#text"
	TypeRaw      = "#raw"
	TypeFragment = "#fragment"
)

// Props are element attributes. Rendering sorts keys, so map order never
// affects output.
type Props map[string]string

// Node is a single renderable record.
type Node struct {
	Type     string
	Props    Props
	Children []*Node
	// Text holds the content of text and raw nodes.
	Text string
}

// El builds an element node. Nil children are dropped so callers can compose
// optional parts inline.
func El(tag string, props Props, children ...*Node) *Node {
	return &Node{Type: tag, Props: props, Children: compact(children)}
}

// Text builds an escaped text node.
func Text(s string) *Node {
	return &Node{Type: TypeText, Text: s}
}

// Raw builds a node whose content is emitted verbatim. Only for trusted
// markup such as bundled SVG icons or rendered markdown.
func Raw(s string) *Node {
	return &Node{Type: TypeRaw, Text: s}
}

// Fragment groups children without a wrapping element.
func Fragment(children ...*Node) *Node {
	return &Node{Type: TypeFragment, Children: compact(children)}
}

func compact(children []*Node) []*Node {
	out := children[:0:0]
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Prop returns the named prop, or "".
func (n *Node) Prop(key string) string {
	if n == nil || n.Props == nil {
		return ""
	}
	return n.Props[key]
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// FindAll returns every node in document order for which match returns true.
func FindAll(n *Node, match func(*Node) bool) []*Node {
	var found []*Node
	Walk(n, func(x *Node) bool {
		if match(x) {
			found = append(found, x)
		}
		return true
	})
	return found
}

// ByType matches nodes with the given type tag.
func ByType(tag string) func(*Node) bool {
	return func(n *Node) bool { return n.Type == tag }
}

// ByClass matches element nodes whose class list contains class.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		for _, c := range strings.Fields(n.Prop("class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// TextContent concatenates the text of all text descendants.
func TextContent(n *Node) string {
	var sb strings.Builder
	Walk(n, func(x *Node) bool {
		if x.Type == TypeText {
			sb.WriteString(x.Text)
		}
		return true
	})
	return sb.String()
}
