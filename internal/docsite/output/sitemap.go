// Package output generates the site-level files written next to the pages:
// sitemaps, robots.txt, the web manifest and llms.txt.
package output

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

const (
	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNS   = "http://www.w3.org/1999/xhtml"

	// DefaultMaxURLs is the sitemap protocol limit per file.
	DefaultMaxURLs = 50000
)

// SitemapEntry represents a single URL in the sitemap.
type SitemapEntry struct {
	Loc        string
	Lastmod    string
	Priority   string
	ChangeFreq string
	Alternates []Alternate
}

// Alternate is a localized variant of a sitemap URL.
type Alternate struct {
	Hreflang string
	Href     string
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	XHTML   string     `xml:"xmlns:xhtml,attr,omitempty"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string      `xml:"loc"`
	Lastmod    string      `xml:"lastmod,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Links      []xhtmlLink `xml:"xhtml:link"`
}

type xhtmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	XMLNS    string         `xml:"xmlns,attr"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc     string `xml:"loc"`
	Lastmod string `xml:"lastmod,omitempty"`
}

// SitemapFile is a filename + content pair.
type SitemapFile struct {
	Filename string
	Content  string
}

// NewSitemapEntry creates the entry for a site route. When the site has more
// than one locale, every locale is listed as an alternate; non-default
// locales live under a /<locale> prefix.
func NewSitemapEntry(site *config.SiteDescriptor, route, lastmod string) SitemapEntry {
	e := SitemapEntry{
		Loc:        site.AbsoluteURL(route),
		Lastmod:    lastmod,
		Priority:   "0.5",
		ChangeFreq: "weekly",
	}
	if route == "/" {
		e.Priority = "1.0"
	}

	if len(site.I18n.Locales) > 1 {
		for _, locale := range site.I18n.Locales {
			href := e.Loc
			if locale != site.I18n.DefaultLocale {
				href = site.AbsoluteURL("/" + locale + "/" + strings.TrimPrefix(route, "/"))
			}
			e.Alternates = append(e.Alternates, Alternate{Hreflang: locale, Href: href})
		}
	}
	return e
}

// GenerateSitemapFiles generates sitemap XML files, splitting at maxPerFile
// URLs. A split sitemap is written as sitemap-N.xml files referenced from a
// sitemap.xml index.
func GenerateSitemapFiles(site *config.SiteDescriptor, entries []SitemapEntry, maxPerFile int) []SitemapFile {
	if maxPerFile <= 0 {
		maxPerFile = DefaultMaxURLs
	}

	if len(entries) <= maxPerFile {
		return []SitemapFile{
			{Filename: "sitemap.xml", Content: generateSitemap(entries)},
		}
	}

	var files []SitemapFile
	var indexEntries []sitemapEntry
	lastmod := entries[0].Lastmod

	for i, chunk := range chunkEntries(entries, maxPerFile) {
		filename := fmt.Sprintf("sitemap-%d.xml", i+1)
		files = append(files, SitemapFile{
			Filename: filename,
			Content:  generateSitemap(chunk),
		})
		indexEntries = append(indexEntries, sitemapEntry{
			Loc:     site.AbsoluteURL(filename),
			Lastmod: lastmod,
		})
	}

	index := SitemapFile{Filename: "sitemap.xml", Content: generateSitemapIndex(indexEntries)}
	return append([]SitemapFile{index}, files...)
}

func generateSitemap(entries []SitemapEntry) string {
	us := urlSet{XMLNS: sitemapNS}
	for _, e := range entries {
		u := urlEntry{
			Loc:        e.Loc,
			Lastmod:    e.Lastmod,
			Priority:   e.Priority,
			ChangeFreq: e.ChangeFreq,
		}
		for _, alt := range e.Alternates {
			u.Links = append(u.Links, xhtmlLink{Rel: "alternate", Hreflang: alt.Hreflang, Href: alt.Href})
		}
		if len(u.Links) > 0 {
			us.XHTML = xhtmlNS
		}
		us.URLs = append(us.URLs, u)
	}

	data, err := xml.MarshalIndent(us, "", "  ")
	if err != nil {
		return ""
	}
	return xml.Header + string(data)
}

func generateSitemapIndex(entries []sitemapEntry) string {
	si := sitemapIndex{
		XMLNS:    sitemapNS,
		Sitemaps: entries,
	}

	data, err := xml.MarshalIndent(si, "", "  ")
	if err != nil {
		return ""
	}
	return xml.Header + string(data)
}

func chunkEntries(entries []SitemapEntry, size int) [][]SitemapEntry {
	var chunks [][]SitemapEntry
	for i := 0; i < len(entries); i += size {
		end := i + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[i:end])
	}
	return chunks
}
