package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

// Built-in plugin and preset names.
const (
	LunrSearch    = "docusaurus-lunr-search"
	IdealImage    = "@docusaurus/plugin-ideal-image"
	WebpackConfig = "webpack-configuration-plugin"
	PresetClassic = "classic"
	PresetFull    = "@docusaurus/preset-classic"
)

var builtins = map[string]Factory{
	LunrSearch:    newSearch,
	IdealImage:    newIdealImage,
	WebpackConfig: newRecorded(WebpackConfig),
	PresetClassic: newClassic(PresetClassic),
	PresetFull:    newClassic(PresetFull),
}

// Recorded is a plugin whose behavior belongs to an external pipeline; the
// build only keeps its name and options.
type Recorded struct {
	name    string
	Options map[string]any
}

func (r *Recorded) Name() string { return r.name }

func newRecorded(name string) Factory {
	return func(options map[string]any) (Plugin, error) {
		return &Recorded{name: name, Options: options}, nil
	}
}

// Classic is the classic preset with its decoded options.
type Classic struct {
	name   string
	Preset config.ClassicPreset
}

func (c *Classic) Name() string { return c.name }

func newClassic(name string) Factory {
	return func(options map[string]any) (Plugin, error) {
		c := &Classic{name: name}
		// The preset takes many sections (blog, pages, sitemap); only docs
		// and theme are typed, the rest pass through.
		if err := mapstructure.Decode(options, &c.Preset); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// IdealImageOptions mirrors the responsive image plugin options.
type IdealImageOptions struct {
	Quality      int  `mapstructure:"quality"`
	Max          int  `mapstructure:"max"`
	Min          int  `mapstructure:"min"`
	Steps        int  `mapstructure:"steps"`
	DisableInDev bool `mapstructure:"disableInDev"`
}

// IdealImageConfig is a validated ideal-image plugin record.
type IdealImageConfig struct {
	Options IdealImageOptions
}

func (*IdealImageConfig) Name() string { return IdealImage }

func newIdealImage(options map[string]any) (Plugin, error) {
	opts := IdealImageOptions{Quality: 85, Max: 1000, Min: 640, Steps: 4, DisableInDev: true}
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}
	switch {
	case opts.Quality < 1 || opts.Quality > 100:
		return nil, fmt.Errorf("quality must be between 1 and 100, got %d", opts.Quality)
	case opts.Min < 1 || opts.Min > opts.Max:
		return nil, fmt.Errorf("min (%d) must be positive and not exceed max (%d)", opts.Min, opts.Max)
	case opts.Steps < 1:
		return nil, fmt.Errorf("steps must be at least 1, got %d", opts.Steps)
	}
	return &IdealImageConfig{Options: opts}, nil
}

// SearchOptions configures the search index.
type SearchOptions struct {
	ExcludeRoutes []string `mapstructure:"excludeRoutes"`
	MaxTextLength int      `mapstructure:"maxTextLength"`
}

// Search writes search-index.json for the client-side search box.
type Search struct {
	Options SearchOptions
}

func (*Search) Name() string { return LunrSearch }

func newSearch(options map[string]any) (Plugin, error) {
	opts := SearchOptions{MaxTextLength: 120}
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}
	if opts.MaxTextLength < 0 {
		return nil, fmt.Errorf("maxTextLength must not be negative")
	}
	return &Search{Options: opts}, nil
}

type searchEntry struct {
	T string `json:"t"`           // title
	S string `json:"s"`           // href
	D string `json:"d,omitempty"` // text (truncated)
}

// Emit builds one entry per doc, in doc order.
func (s *Search) Emit(ctx context.Context, bc *BuildContext) ([]File, error) {
	entries := make([]searchEntry, 0, len(bc.Docs.All()))
	for _, d := range bc.Docs.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.excluded(d.Route) {
			continue
		}
		text := ""
		if bc.Markdown != nil {
			text = truncate(bc.Markdown.PlainText(d.Body), s.Options.MaxTextLength)
		}
		entries = append(entries, searchEntry{T: d.Title, S: bc.Site.Href(d.Route), D: text})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding search index: %w", err)
	}
	bc.Log.Infof("Generated search index (%d entries, %dKB)", len(entries), len(data)/1024)
	return []File{{Path: "search-index.json", Data: data}}, nil
}

func (s *Search) excluded(route string) bool {
	for _, prefix := range s.Options.ExcludeRoutes {
		if strings.HasPrefix(route, prefix) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if max == 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
