package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/highlight"
)

// Format is a descriptor serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the decoder for a descriptor file. JSON is decoded as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// PluginResolver checks that a plugin or preset name can be resolved by the
// build pipeline and that its options are acceptable.
type PluginResolver interface {
	ResolvePlugin(name string, options map[string]any) error
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads and parses a descriptor file, applies defaults, and validates.
// A nil resolver skips plugin resolution.
func Load(path string, plugins PluginResolver) (*SiteDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, siteerrors.NewParseError(path, 0, err)
	}

	d, err := parse(path, data, FormatFromPath(path), plugins)
	if err != nil {
		return nil, err
	}
	d.Dir = filepath.Dir(path)
	return d, nil
}

// Parse decodes an in-memory descriptor, applies defaults, and validates.
func Parse(data []byte, format Format, plugins PluginResolver) (*SiteDescriptor, error) {
	return parse("<input>", data, format, plugins)
}

func parse(path string, data []byte, format Format, plugins PluginResolver) (*SiteDescriptor, error) {
	if format == FormatTOML {
		var err error
		if data, err = tomlToYAML(data); err != nil {
			return nil, siteerrors.NewParseError(path, 0, err)
		}
	}

	var d SiteDescriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, siteerrors.NewParseError(path, extractLine(err), err)
	}

	applyDefaults(&d)

	if err := Validate(&d, plugins); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &d, nil
}

// tomlToYAML re-encodes a TOML document as YAML so every shape rule of the
// YAML decoder applies to TOML input too.
func tomlToYAML(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

// Marshal re-serializes the descriptor as YAML.
func Marshal(d *SiteDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

func applyDefaults(d *SiteDescriptor) {
	if d.OnBrokenLinks == "" {
		d.OnBrokenLinks = PolicyThrow
	}
	if d.OnBrokenMarkdownLinks == "" {
		d.OnBrokenMarkdownLinks = PolicyWarn
	}
	if d.I18n.DefaultLocale == "" {
		d.I18n.DefaultLocale = "en"
	}
	if len(d.I18n.Locales) == 0 {
		d.I18n.Locales = []string{d.I18n.DefaultLocale}
	}
	if d.Markdown.Format == "" {
		d.Markdown.Format = "mdx"
	}

	for i := range d.ThemeConfig.Navbar.Items {
		item := &d.ThemeConfig.Navbar.Items[i]
		if item.Type == "" {
			item.Type = NavDefault
		}
		if item.Position == "" {
			item.Position = "left"
		}
	}

	if d.ThemeConfig.Footer.Style == "" {
		d.ThemeConfig.Footer.Style = "light"
	}
	if d.ThemeConfig.Prism.Theme.IsZero() {
		d.ThemeConfig.Prism.Theme = ThemeRef{Name: highlight.GitHub}
	}
	if d.ThemeConfig.Prism.DarkTheme.IsZero() {
		d.ThemeConfig.Prism.DarkTheme = ThemeRef{Name: highlight.Dracula}
	}
}

// Path resolves p against the descriptor directory.
func (d *SiteDescriptor) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.Dir, p)
}

// Classic decodes the options of the classic preset, with defaults for the
// docs path and route. A descriptor without the preset gets the defaults.
func (d *SiteDescriptor) Classic() (ClassicPreset, error) {
	var preset ClassicPreset
	for _, p := range d.Presets {
		if p.Name != "classic" && p.Name != "@docusaurus/preset-classic" {
			continue
		}
		if err := mapstructure.Decode(p.Options, &preset); err != nil {
			return ClassicPreset{}, fmt.Errorf("decoding classic preset options: %w", err)
		}
		break
	}
	if preset.Docs.Path == "" {
		preset.Docs.Path = "docs"
	}
	if preset.Docs.RouteBasePath == "" {
		preset.Docs.RouteBasePath = "docs"
	}
	preset.Docs.RouteBasePath = strings.Trim(preset.Docs.RouteBasePath, "/")
	return preset, nil
}

// Themes resolves the prism theme pair. Validate guarantees both resolve.
func (d *SiteDescriptor) Themes() highlight.Themes {
	light, _ := d.ThemeConfig.Prism.Theme.Sheet()
	dark, _ := d.ThemeConfig.Prism.DarkTheme.Sheet()
	return highlight.Themes{Light: light, Dark: dark}
}

// Href joins an internal path with the site base URL.
func (d *SiteDescriptor) Href(path string) string {
	return strings.TrimSuffix(d.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// AbsoluteURL joins an internal path with the site URL and base URL.
func (d *SiteDescriptor) AbsoluteURL(path string) string {
	return strings.TrimSuffix(d.URL, "/") + d.Href(path)
}
