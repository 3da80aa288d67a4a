// Package highlight applies ColorStyleSheets to lexed code tokens.
//
// A ColorStyleSheet is a plain text/background pair plus an ordered list of
// StyleRules. The effective style of a token is computed by scanning the
// rules in declaration order and merging every rule that names one of the
// token's types; later rules override earlier ones attribute by attribute.
// Tokens that match no rule take the plain style.
package highlight

import (
	"strconv"
	"strings"
)

// Style is a set of display attributes. Empty fields are unset.
type Style struct {
	Color              string   `yaml:"color,omitempty" json:"color,omitempty"`
	BackgroundColor    string   `yaml:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	Opacity            *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	FontStyle          string   `yaml:"fontStyle,omitempty" json:"fontStyle,omitempty"`
	FontWeight         string   `yaml:"fontWeight,omitempty" json:"fontWeight,omitempty"`
	TextDecorationLine string   `yaml:"textDecorationLine,omitempty" json:"textDecorationLine,omitempty"`
}

// StyleRule maps a set of token types to style attributes.
type StyleRule struct {
	Types []string `yaml:"types" json:"types"`
	Style Style    `yaml:"style" json:"style"`
}

// ColorStyleSheet is a named code-highlight theme.
type ColorStyleSheet struct {
	Plain  Style       `yaml:"plain" json:"plain"`
	Styles []StyleRule `yaml:"styles,omitempty" json:"styles,omitempty"`
}

// Merge returns s with every attribute set in o overriding the same attribute in s.
func (s Style) Merge(o Style) Style {
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.BackgroundColor != "" {
		s.BackgroundColor = o.BackgroundColor
	}
	if o.Opacity != nil {
		v := *o.Opacity
		s.Opacity = &v
	}
	if o.FontStyle != "" {
		s.FontStyle = o.FontStyle
	}
	if o.FontWeight != "" {
		s.FontWeight = o.FontWeight
	}
	if o.TextDecorationLine != "" {
		s.TextDecorationLine = o.TextDecorationLine
	}
	return s
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.Color == "" && s.BackgroundColor == "" && s.Opacity == nil &&
		s.FontStyle == "" && s.FontWeight == "" && s.TextDecorationLine == ""
}

// CSS renders the style as inline CSS declarations in a fixed attribute order.
func (s Style) CSS() string {
	var decls []string
	add := func(prop, val string) {
		if val != "" {
			decls = append(decls, prop+":"+val)
		}
	}
	add("color", s.Color)
	add("background-color", s.BackgroundColor)
	if s.Opacity != nil {
		add("opacity", strconv.FormatFloat(*s.Opacity, 'g', -1, 64))
	}
	add("font-style", s.FontStyle)
	add("font-weight", s.FontWeight)
	add("text-decoration-line", s.TextDecorationLine)
	return strings.Join(decls, ";")
}

// StyleFor computes the effective style for a token carrying the given types.
// The second result is false when no rule matched and the plain style was used.
func (c ColorStyleSheet) StyleFor(types []string) (Style, bool) {
	var merged Style
	matched := false
	for _, rule := range c.Styles {
		if !rule.matches(types) {
			continue
		}
		merged = merged.Merge(rule.Style)
		matched = true
	}
	if !matched {
		return c.Plain, false
	}
	return merged, true
}

func (r StyleRule) matches(types []string) bool {
	for _, want := range r.Types {
		for _, have := range types {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Opacity returns a pointer to v, for building stylesheets in code.
func Opacity(v float64) *float64 {
	return &v
}
