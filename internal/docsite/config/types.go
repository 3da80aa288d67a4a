package config

import "github.com/microsoft/retina-site/internal/docsite/highlight"

// Link policies for onBrokenLinks and onBrokenMarkdownLinks.
const (
	PolicyThrow  = "throw"
	PolicyWarn   = "warn"
	PolicyLog    = "log"
	PolicyIgnore = "ignore"
)

// Navbar item kinds.
const (
	NavDefault    = "default"
	NavDocSidebar = "docSidebar"
	NavDoc        = "doc"
)

// SiteDescriptor is the root site configuration. Field names and nesting
// mirror the serialized form and must round-trip through Marshal.
type SiteDescriptor struct {
	Title                 string             `yaml:"title" validate:"required"`
	Tagline               string             `yaml:"tagline,omitempty"`
	Favicon               string             `yaml:"favicon,omitempty"`
	URL                   string             `yaml:"url" validate:"required,url"`
	BaseURL               string             `yaml:"baseUrl" validate:"required,startswith=/,endswith=/"`
	OrganizationName      string             `yaml:"organizationName,omitempty"`
	ProjectName           string             `yaml:"projectName,omitempty"`
	OnBrokenLinks         string             `yaml:"onBrokenLinks" validate:"oneof=throw warn log ignore"`
	OnBrokenMarkdownLinks string             `yaml:"onBrokenMarkdownLinks" validate:"oneof=throw warn log ignore"`
	I18n                  I18nConfig         `yaml:"i18n"`
	Markdown              MarkdownConfig     `yaml:"markdown"`
	Plugins               []PluginDescriptor `yaml:"plugins,omitempty" validate:"dive"`
	Presets               []PluginDescriptor `yaml:"presets,omitempty" validate:"dive"`
	HeadTags              []HeadTag          `yaml:"headTags,omitempty" validate:"dive"`
	ThemeConfig           ThemeConfig        `yaml:"themeConfig"`

	// Dir is the directory containing the descriptor file (set at load time).
	Dir string `yaml:"-"`
}

type I18nConfig struct {
	DefaultLocale string   `yaml:"defaultLocale" validate:"required"`
	Locales       []string `yaml:"locales" validate:"required,min=1,dive,required"`
}

type MarkdownConfig struct {
	Format  string `yaml:"format" validate:"oneof=mdx md detect"`
	Mermaid bool   `yaml:"mermaid,omitempty"`
}

// HeadTag is an extra element injected into every page <head>.
type HeadTag struct {
	TagName    string            `yaml:"tagName" validate:"required,oneof=link meta script"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

type ThemeConfig struct {
	Image    string        `yaml:"image,omitempty"`
	Metadata []MetadataTag `yaml:"metadata,omitempty" validate:"dive"`
	Navbar   Navbar        `yaml:"navbar"`
	Footer   Footer        `yaml:"footer"`
	Prism    PrismConfig   `yaml:"prism"`
}

type MetadataTag struct {
	Name    string `yaml:"name" validate:"required"`
	Content string `yaml:"content"`
}

type Logo struct {
	Alt     string `yaml:"alt,omitempty"`
	Src     string `yaml:"src" validate:"required"`
	SrcDark string `yaml:"srcDark,omitempty"`
	Href    string `yaml:"href,omitempty"`
	Width   string `yaml:"width,omitempty"`
	Height  string `yaml:"height,omitempty"`
}

type Navbar struct {
	Title string    `yaml:"title,omitempty"`
	Logo  *Logo     `yaml:"logo,omitempty"`
	Items []NavItem `yaml:"items,omitempty" validate:"dive"`
}

// NavItem is one navigation bar entry. Type selects which target fields apply:
// default items use To or Href, docSidebar items use SidebarID, doc items use DocID.
type NavItem struct {
	Type            string `yaml:"type,omitempty" validate:"oneof=default docSidebar doc"`
	Label           string `yaml:"label" validate:"required"`
	Position        string `yaml:"position,omitempty" validate:"oneof=left right"`
	To              string `yaml:"to,omitempty"`
	Href            string `yaml:"href,omitempty" validate:"omitempty,url"`
	SidebarID       string `yaml:"sidebarId,omitempty"`
	DocID           string `yaml:"docId,omitempty"`
	ActiveBaseRegex string `yaml:"activeBaseRegex,omitempty"`
	ActiveBasePath  string `yaml:"activeBasePath,omitempty"`
}

type Footer struct {
	Style     string       `yaml:"style" validate:"oneof=light dark"`
	Logo      *Logo        `yaml:"logo,omitempty"`
	Links     []FooterLink `yaml:"links,omitempty" validate:"dive"`
	Copyright string       `yaml:"copyright,omitempty"`
}

// FooterLink is a titled group of footer entries.
type FooterLink struct {
	Title string       `yaml:"title,omitempty"`
	Items []FooterItem `yaml:"items" validate:"dive"`
}

type FooterItem struct {
	Label string `yaml:"label" validate:"required"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty" validate:"omitempty,url"`
}

type PrismConfig struct {
	AdditionalLanguages []string `yaml:"additionalLanguages,omitempty"`
	Theme               ThemeRef `yaml:"theme"`
	DarkTheme           ThemeRef `yaml:"darkTheme"`
}

// ThemeRef names a built-in ColorStyleSheet or carries one inline.
type ThemeRef struct {
	Name   string
	Inline *highlight.ColorStyleSheet
}

// PluginDescriptor records a build-time plugin invocation.
type PluginDescriptor struct {
	Name    string         `yaml:"name" validate:"required"`
	Options map[string]any `yaml:"options,omitempty"`
}

// ClassicPreset is the decoded options block of the "classic" preset.
type ClassicPreset struct {
	Docs  DocsOptions  `mapstructure:"docs"`
	Theme ThemeOptions `mapstructure:"theme"`
}

type DocsOptions struct {
	Path          string `mapstructure:"path"`
	SidebarPath   string `mapstructure:"sidebarPath"`
	EditURL       string `mapstructure:"editUrl"`
	RouteBasePath string `mapstructure:"routeBasePath"`
}

type ThemeOptions struct {
	CustomCSS string `mapstructure:"customCss"`
}
