package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/microsoft/retina-site/internal/docsite/highlight"
	"github.com/microsoft/retina-site/internal/docsite/node"
)

// Markdown converts doc bodies to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a GFM converter with automatic heading IDs. Fenced
// code is emitted as highlight blocks so the themed code CSS applies.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 100)),
			),
		),
	}
}

// RewriteFunc maps a link destination to a new one. Returning false keeps
// the original destination.
type RewriteFunc func(dest string) (string, bool)

// ToHTML renders src, passing every link destination through rewrite.
func (m *Markdown) ToHTML(src []byte, rewrite RewriteFunc) (string, error) {
	doc := m.md.Parser().Parse(text.NewReader(src))
	if rewrite != nil {
		walkLinks(doc, func(link *ast.Link) {
			if dest, ok := rewrite(string(link.Destination)); ok {
				link.Destination = []byte(dest)
			}
		})
	}

	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// Links returns every link destination in src in document order.
func (m *Markdown) Links(src []byte) []string {
	doc := m.md.Parser().Parse(text.NewReader(src))
	var dests []string
	walkLinks(doc, func(link *ast.Link) {
		dests = append(dests, string(link.Destination))
	})
	return dests
}

func walkLinks(doc ast.Node, fn func(*ast.Link)) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			fn(link)
		}
		return ast.WalkContinue, nil
	})
}

// PlainText returns the prose of src with markup removed and whitespace
// collapsed. Code blocks are skipped.
func (m *Markdown) PlainText(src []byte) string {
	doc := m.md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		if !entering {
			if n.Type() == ast.TypeBlock {
				sb.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}

type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

// renderFencedCodeBlock writes the block as a single plain token; colors
// come from the scoped stylesheet of the active display mode.
func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block := n.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	tokens := []highlight.Token{{Text: code.String()}}
	if err := node.Render(w, highlight.Block(highlight.ColorStyleSheet{}, tokens, string(block.Language(source)))); err != nil {
		return ast.WalkStop, err
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}
