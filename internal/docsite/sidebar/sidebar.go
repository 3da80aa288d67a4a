// Package sidebar reads sidebar definitions and resolves them against the
// loaded docs.
package sidebar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
)

// Item kinds in a sidebar definition.
const (
	TypeDoc           = "doc"
	TypeCategory      = "category"
	TypeLink          = "link"
	TypeAutogenerated = "autogenerated"
)

// DefaultSidebar is the sidebar created when no definition file exists.
const DefaultSidebar = "mainSidebar"

// Item is one entry of a sidebar definition. A bare string in the YAML is a
// doc item whose ID is the string.
type Item struct {
	Type    string `yaml:"type,omitempty"`
	ID      string `yaml:"id,omitempty"`
	Label   string `yaml:"label,omitempty"`
	Href    string `yaml:"href,omitempty"`
	DirName string `yaml:"dirName,omitempty"`
	Items   []Item `yaml:"items,omitempty"`
}

type itemMapping Item

// UnmarshalYAML accepts a doc ID string or an item mapping.
func (it *Item) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*it = Item{Type: TypeDoc, ID: value.Value}
		return nil
	}
	var m itemMapping
	if err := value.Decode(&m); err != nil {
		return err
	}
	*it = Item(m)
	if it.Type == "" {
		it.Type = TypeDoc
	}
	return nil
}

// Definition maps sidebar IDs to their items.
type Definition map[string][]Item

// Default returns the definition used when no file exists: one sidebar
// autogenerated from the whole docs tree.
func Default() Definition {
	return Definition{DefaultSidebar: {{Type: TypeAutogenerated, DirName: "."}}}
}

// Load reads a sidebar definition file. An empty path or a missing file
// yields Default.
func Load(path string) (Definition, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, siteerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes and checks a sidebar definition.
func Parse(path string, data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, siteerrors.NewParseError(path, 0, err)
	}
	if len(def) == 0 {
		return Default(), nil
	}
	for _, id := range def.IDs() {
		if err := checkItems(id, def[id]); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// IDs returns the sidebar IDs in sorted order.
func (d Definition) IDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func checkItems(field string, items []Item) error {
	for i, it := range items {
		at := fmt.Sprintf("%s[%d]", field, i)
		switch it.Type {
		case TypeDoc:
			if it.ID == "" {
				return siteerrors.NewConfigError(at+".id", "is required for doc items", nil)
			}
		case TypeCategory:
			if it.Label == "" {
				return siteerrors.NewConfigError(at+".label", "is required for category items", nil)
			}
			if err := checkItems(at+".items", it.Items); err != nil {
				return err
			}
		case TypeLink:
			if it.Href == "" || it.Label == "" {
				return siteerrors.NewConfigError(at, "link items need label and href", nil)
			}
		case TypeAutogenerated:
			if it.DirName == "" {
				return siteerrors.NewConfigError(at+".dirName", "is required for autogenerated items", nil)
			}
		default:
			return siteerrors.NewConfigError(at+".type", fmt.Sprintf("unknown sidebar item type %q", it.Type), nil)
		}
	}
	return nil
}
