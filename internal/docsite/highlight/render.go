package highlight

import (
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/node"
)

// Mode selects between the light and dark stylesheet.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode maps a display-mode signal to a Mode. Anything other than "dark"
// selects Light.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Token is one lexed span of source text with its token-type tags.
type Token struct {
	Text  string
	Types []string
}

// StyledToken is a token with its effective style.
type StyledToken struct {
	Token
	Style Style
	// Matched is false when no rule applied and Style is the plain style.
	Matched bool
}

// Themes pairs the light and dark stylesheets.
type Themes struct {
	Light ColorStyleSheet
	Dark  ColorStyleSheet
}

// For returns the stylesheet for the display mode.
func (t Themes) For(mode Mode) ColorStyleSheet {
	if mode == Dark {
		return t.Dark
	}
	return t.Light
}

// Apply styles every token with the sheet.
func Apply(sheet ColorStyleSheet, tokens []Token) []StyledToken {
	out := make([]StyledToken, len(tokens))
	for i, tok := range tokens {
		style, matched := sheet.StyleFor(tok.Types)
		out[i] = StyledToken{Token: tok, Style: style, Matched: matched}
	}
	return out
}

// Render styles the token stream with the stylesheet for mode.
func (t Themes) Render(tokens []Token, mode Mode) []StyledToken {
	return Apply(t.For(mode), tokens)
}

// Block builds a <pre><code> tree for the styled token stream. Plain tokens
// inherit the block's plain colors; matched tokens carry inline styles.
func Block(sheet ColorStyleSheet, tokens []Token, language string) *node.Node {
	preProps := node.Props{"class": "code-block"}
	if css := sheet.Plain.CSS(); css != "" {
		preProps["style"] = css
	}
	codeProps := node.Props{}
	if language != "" {
		codeProps["class"] = "language-" + language
	}

	spans := make([]*node.Node, 0, len(tokens))
	for _, st := range Apply(sheet, tokens) {
		props := node.Props{"class": tokenClass(st.Types)}
		if st.Matched {
			if css := st.Style.CSS(); css != "" {
				props["style"] = css
			}
		}
		spans = append(spans, node.El("span", props, node.Text(st.Text)))
	}
	return node.El("pre", preProps, node.El("code", codeProps, spans...))
}

// RenderHTML renders the token stream as a highlighted HTML block in the given mode.
func (t Themes) RenderHTML(tokens []Token, mode Mode, language string) string {
	return node.String(Block(t.For(mode), tokens, language))
}

func tokenClass(types []string) string {
	if len(types) == 0 {
		return "token plain"
	}
	return "token " + strings.Join(types, " ")
}

// CSS renders the sheet as a stylesheet scoped under scope (for example
// `[data-theme="dark"]`). Rules keep declaration order, so the CSS cascade
// gives the same last-rule-wins result as StyleFor.
func CSS(sheet ColorStyleSheet, scope string) string {
	prefix := ""
	if scope != "" {
		prefix = scope + " "
	}

	var sb strings.Builder
	if css := sheet.Plain.CSS(); css != "" {
		fmt.Fprintf(&sb, "%spre.code-block{%s}\n", prefix, css)
	}
	for _, rule := range sheet.Styles {
		css := rule.Style.CSS()
		if css == "" || len(rule.Types) == 0 {
			continue
		}
		selectors := make([]string, len(rule.Types))
		for i, typ := range rule.Types {
			selectors[i] = prefix + ".token." + typ
		}
		fmt.Fprintf(&sb, "%s{%s}\n", strings.Join(selectors, ","), css)
	}
	return sb.String()
}
