package highlight

import "sort"

// Built-in stylesheet names accepted by prism theme references.
const (
	GitHubA11yLight = "githubA11yLight"
	OceanicNext     = "oceanicNext"
	GitHub          = "github"
	Dracula         = "dracula"
)

var builtins = map[string]func() ColorStyleSheet{
	GitHubA11yLight: githubA11yLight,
	OceanicNext:     oceanicNext,
	GitHub:          github,
	Dracula:         dracula,
}

// Builtin returns a fresh copy of the named built-in stylesheet.
func Builtin(name string) (ColorStyleSheet, bool) {
	fn, ok := builtins[name]
	if !ok {
		return ColorStyleSheet{}, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in stylesheet names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// githubA11yLight is the site's light theme, tuned for WCAG AA contrast on a near-white background.
func githubA11yLight() ColorStyleSheet {
	return ColorStyleSheet{
		Plain: Style{Color: "#545454", BackgroundColor: "#fefefe"},
		Styles: []StyleRule{
			{Types: []string{"comment", "prolog", "doctype", "cdata"}, Style: Style{Color: "#696969", FontStyle: "italic"}},
			{Types: []string{"namespace"}, Style: Style{Opacity: Opacity(0.7)}},
			{Types: []string{"string", "attr-value"}, Style: Style{Color: "#008000"}},
			{Types: []string{"punctuation", "operator"}, Style: Style{Color: "#545454"}},
			{Types: []string{"entity", "url", "symbol", "number", "boolean", "variable", "constant", "property", "regex", "inserted"}, Style: Style{Color: "#007faa"}},
			{Types: []string{"atrule", "keyword", "attr-name", "selector"}, Style: Style{Color: "#7928a1"}},
			{Types: []string{"function", "deleted", "tag"}, Style: Style{Color: "#d91e18"}},
			{Types: []string{"function-variable"}, Style: Style{Color: "#aa5d00"}},
			{Types: []string{"tag", "selector", "keyword"}, Style: Style{Color: "#00009f"}},
			{Types: []string{"important", "bold"}, Style: Style{FontWeight: "bold"}},
		},
	}
}

func oceanicNext() ColorStyleSheet {
	const (
		char      = "#D8DEE9"
		comment   = "#999999"
		keyword   = "#c5a5c5"
		primitive = "#5a9bcf"
		str       = "#8dc891"
		variable  = "#d7deea"
		boolean   = "#ff8b50"
		tag       = "#fc929e"
		function  = "#79b6f2"
		className = "#FAC863"
	)
	return ColorStyleSheet{
		Plain: Style{Color: "#ffffff", BackgroundColor: "#282c34"},
		Styles: []StyleRule{
			{Types: []string{"attr-name"}, Style: Style{Color: keyword}},
			{Types: []string{"attr-value"}, Style: Style{Color: str}},
			{Types: []string{"comment", "block-comment", "prolog", "doctype", "cdata", "shebang"}, Style: Style{Color: comment}},
			{Types: []string{"property", "number", "function-name", "constant", "symbol", "deleted"}, Style: Style{Color: primitive}},
			{Types: []string{"boolean"}, Style: Style{Color: boolean}},
			{Types: []string{"tag"}, Style: Style{Color: tag}},
			{Types: []string{"string"}, Style: Style{Color: str}},
			{Types: []string{"punctuation"}, Style: Style{Color: str}},
			{Types: []string{"selector", "char", "builtin", "inserted"}, Style: Style{Color: char}},
			{Types: []string{"function"}, Style: Style{Color: function}},
			{Types: []string{"operator", "entity", "url", "variable"}, Style: Style{Color: variable}},
			{Types: []string{"keyword"}, Style: Style{Color: keyword}},
			{Types: []string{"atrule", "class-name"}, Style: Style{Color: className}},
			{Types: []string{"important"}, Style: Style{FontWeight: "400"}},
			{Types: []string{"bold"}, Style: Style{FontWeight: "bold"}},
			{Types: []string{"italic"}, Style: Style{FontStyle: "italic"}},
			{Types: []string{"namespace"}, Style: Style{Opacity: Opacity(0.7)}},
		},
	}
}

func github() ColorStyleSheet {
	return ColorStyleSheet{
		Plain: Style{Color: "#393A34", BackgroundColor: "#f6f8fa"},
		Styles: []StyleRule{
			{Types: []string{"comment", "prolog", "doctype", "cdata"}, Style: Style{Color: "#999988", FontStyle: "italic"}},
			{Types: []string{"namespace"}, Style: Style{Opacity: Opacity(0.7)}},
			{Types: []string{"string", "attr-value"}, Style: Style{Color: "#e3116c"}},
			{Types: []string{"punctuation", "operator"}, Style: Style{Color: "#393A34"}},
			{Types: []string{"entity", "url", "symbol", "number", "boolean", "variable", "constant", "property", "regex", "inserted"}, Style: Style{Color: "#36acaa"}},
			{Types: []string{"atrule", "keyword", "attr-name", "selector"}, Style: Style{Color: "#00a4db"}},
			{Types: []string{"function", "deleted", "tag"}, Style: Style{Color: "#d73a49"}},
			{Types: []string{"function-variable"}, Style: Style{Color: "#6f42c1"}},
			{Types: []string{"tag", "selector", "keyword"}, Style: Style{Color: "#00009f"}},
		},
	}
}

func dracula() ColorStyleSheet {
	return ColorStyleSheet{
		Plain: Style{Color: "#F8F8F2", BackgroundColor: "#282A36"},
		Styles: []StyleRule{
			{Types: []string{"prolog", "constant", "builtin"}, Style: Style{Color: "rgb(189, 147, 249)"}},
			{Types: []string{"inserted", "function"}, Style: Style{Color: "rgb(80, 250, 123)"}},
			{Types: []string{"deleted"}, Style: Style{Color: "rgb(255, 85, 85)"}},
			{Types: []string{"changed"}, Style: Style{Color: "rgb(255, 184, 108)"}},
			{Types: []string{"punctuation", "symbol"}, Style: Style{Color: "rgb(248, 248, 242)"}},
			{Types: []string{"string", "char", "tag", "selector"}, Style: Style{Color: "rgb(255, 121, 198)"}},
			{Types: []string{"keyword", "variable"}, Style: Style{Color: "rgb(189, 147, 249)", FontStyle: "italic"}},
			{Types: []string{"comment"}, Style: Style{Color: "rgb(98, 114, 164)"}},
			{Types: []string{"attr-name"}, Style: Style{Color: "rgb(241, 250, 140)"}},
		},
	}
}
