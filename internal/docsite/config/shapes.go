package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/microsoft/retina-site/internal/docsite/highlight"
)

// pluginMapping is the {name, options} serialized shape of a PluginDescriptor.
type pluginMapping PluginDescriptor

// UnmarshalYAML accepts "name", [name], [name, options] and {name, options}.
func (p *PluginDescriptor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.Name = value.Value
		p.Options = nil
		return nil
	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 {
			return fmt.Errorf("line %d: plugin entry must be [name] or [name, options]", value.Line)
		}
		if value.Content[0].Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: plugin name must be a string", value.Line)
		}
		p.Name = value.Content[0].Value
		p.Options = nil
		if len(value.Content) == 2 {
			var opts map[string]any
			if err := value.Content[1].Decode(&opts); err != nil {
				return err
			}
			p.Options = normalizeOptions(opts)
		}
		return nil
	case yaml.MappingNode:
		var m pluginMapping
		if err := value.Decode(&m); err != nil {
			return err
		}
		p.Name = m.Name
		p.Options = normalizeOptions(m.Options)
		return nil
	}
	return fmt.Errorf("line %d: unsupported plugin entry", value.Line)
}

// MarshalYAML emits the bare name when there are no options, [name, options] otherwise.
func (p PluginDescriptor) MarshalYAML() (any, error) {
	if len(p.Options) == 0 {
		return p.Name, nil
	}
	opts, err := optionNode(p.Options)
	if err != nil {
		return nil, fmt.Errorf("plugin %s options: %w", p.Name, err)
	}
	return &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: []*yaml.Node{{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Name}, opts},
	}, nil
}

// optionNode encodes a decoded option value. Floats keep a float form so a
// whole number such as 70.0 decodes back as float64 rather than int.
func optionNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			val, err := optionNode(t[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, val)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t {
			val, err := optionNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, val)
		}
		return n, nil
	case float64:
		return floatNode(t), nil
	case float32:
		return floatNode(float64(t)), nil
	}
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func floatNode(f float64) *yaml.Node {
	var value string
	switch {
	case math.IsNaN(f):
		value = ".nan"
	case math.IsInf(f, 1):
		value = ".inf"
	case math.IsInf(f, -1):
		value = "-.inf"
	default:
		value = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(value, ".e") {
			value += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value}
}

func normalizeOptions(opts map[string]any) map[string]any {
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// UnmarshalYAML accepts a built-in theme name or an inline stylesheet mapping.
func (r *ThemeRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		r.Name = value.Value
		r.Inline = nil
		return nil
	case yaml.MappingNode:
		var sheet highlight.ColorStyleSheet
		if err := value.Decode(&sheet); err != nil {
			return err
		}
		r.Name = ""
		r.Inline = &sheet
		return nil
	}
	return fmt.Errorf("line %d: prism theme must be a name or a stylesheet", value.Line)
}

// MarshalYAML emits the inline stylesheet when present, the name otherwise.
func (r ThemeRef) MarshalYAML() (any, error) {
	if r.Inline != nil {
		return r.Inline, nil
	}
	return r.Name, nil
}

// Sheet resolves the reference to a stylesheet.
func (r ThemeRef) Sheet() (highlight.ColorStyleSheet, bool) {
	if r.Inline != nil {
		return *r.Inline, true
	}
	return highlight.Builtin(r.Name)
}

// IsZero reports whether neither a name nor an inline sheet is set.
func (r ThemeRef) IsZero() bool {
	return r.Name == "" && r.Inline == nil
}
