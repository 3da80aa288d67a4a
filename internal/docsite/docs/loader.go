// Package docs loads markdown documentation with YAML frontmatter and renders
// it to HTML.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/microsoft/retina-site/internal/docsite/logger"
)

// numberPrefix matches ordering prefixes such as "01-" or "2_".
var numberPrefix = regexp.MustCompile(`^(\d+)[-_.]`)

var titleCaser = cases.Title(language.English)

type frontMatter struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	SidebarLabel    string   `yaml:"sidebar_label"`
	SidebarPosition *float64 `yaml:"sidebar_position"`
	Slug            string   `yaml:"slug"`
}

// Loader reads every .md and .mdx file below Dir.
type Loader struct {
	Dir           string
	RouteBasePath string
	Log           *logger.Logger
}

// Load walks the docs directory. Files that fail to parse are skipped with a
// warning; a missing directory yields no docs.
func (l *Loader) Load() ([]*Doc, error) {
	if _, err := os.Stat(l.Dir); os.IsNotExist(err) {
		return nil, nil
	}

	var loaded []*Doc
	err := filepath.WalkDir(l.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != l.Dir && strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(p)
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		doc, err := l.parseFile(p)
		if err != nil {
			l.Log.WithFields(map[string]any{"file": p}).Error(err, "skipping doc")
			return nil
		}
		loaded = append(loaded, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading docs dir %s: %w", l.Dir, err)
	}
	if err := checkDuplicates(loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}

// checkDuplicates rejects docs sharing an ID or a route; both would render
// to the same output file.
func checkDuplicates(loaded []*Doc) error {
	byID := make(map[string]string, len(loaded))
	byRoute := make(map[string]string, len(loaded))
	var errs []error
	for _, d := range loaded {
		if other, ok := byID[d.ID]; ok {
			errs = append(errs, fmt.Errorf("duplicate doc id %q in %s and %s", d.ID, other, d.RelPath))
		} else {
			byID[d.ID] = d.RelPath
		}
		if other, ok := byRoute[d.Route]; ok {
			errs = append(errs, fmt.Errorf("duplicate doc route %q in %s and %s", d.Route, other, d.RelPath))
		} else {
			byRoute[d.Route] = d.RelPath
		}
	}
	return errors.Join(errs...)
}

func (l *Loader) parseFile(p string) (*Doc, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	rel, err := filepath.Rel(l.Dir, p)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	dir := cleanDir(path.Dir(rel))
	base := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	name, prefixPos, hasPrefix := stripNumberPrefix(base)

	local := name
	if fm.ID != "" {
		if strings.Contains(fm.ID, "/") || fm.ID == "." || fm.ID == ".." {
			return nil, fmt.Errorf("invalid doc id %q", fm.ID)
		}
		local = fm.ID
	}
	id := local
	if dir != "" {
		id = dir + "/" + local
	}

	doc := &Doc{
		ID:           id,
		Title:        fm.Title,
		SidebarLabel: fm.SidebarLabel,
		Dir:          dir,
		RelPath:      rel,
		SourceFile:   p,
		Body:         body,
	}
	switch {
	case fm.SidebarPosition != nil:
		doc.Position, doc.HasPosition = *fm.SidebarPosition, true
	case hasPrefix:
		doc.Position, doc.HasPosition = prefixPos, true
	}
	if doc.Title == "" {
		doc.Title = firstHeading(body)
	}
	if doc.Title == "" {
		doc.Title = Humanize(name)
	}

	if doc.Route, err = l.route(id, fm.Slug); err != nil {
		return nil, err
	}
	return doc, nil
}

// route joins the doc ID (or slug) under the route base. An absolute slug is
// relative to the route base; a relative slug may not climb out of it.
func (l *Loader) route(id, slug string) (string, error) {
	base := "/" + strings.Trim(l.RouteBasePath, "/")
	if base == "/" {
		base = ""
	}
	if slug != "" {
		if strings.HasPrefix(slug, "/") {
			return base + path.Clean(slug), nil
		}
		id = path.Join(path.Dir(id), slug)
		if id == ".." || strings.HasPrefix(id, "../") {
			return "", fmt.Errorf("slug %q leaves the docs route %q", slug, base+"/")
		}
	}
	return base + "/" + id, nil
}

// cleanDir strips ordering prefixes from every directory segment.
func cleanDir(dir string) string {
	if dir == "." || dir == "" {
		return ""
	}
	parts := strings.Split(dir, "/")
	for i, part := range parts {
		parts[i], _, _ = stripNumberPrefix(part)
	}
	return strings.Join(parts, "/")
}

func stripNumberPrefix(name string) (string, float64, bool) {
	m := numberPrefix.FindStringSubmatch(name)
	if m == nil || len(m[0]) == len(name) {
		return name, 0, false
	}
	pos, _ := strconv.ParseFloat(m[1], 64)
	return name[len(m[0]):], pos, true
}

// PrefixPosition returns the ordering position encoded in a file or
// directory name prefix.
func PrefixPosition(name string) (float64, bool) {
	_, pos, ok := stripNumberPrefix(name)
	return pos, ok
}

// StripPrefix removes an ordering prefix from a file or directory name.
func StripPrefix(name string) string {
	stripped, _, _ := stripNumberPrefix(name)
	return stripped
}

func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// Humanize turns a file or directory name into a display label.
func Humanize(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(name)
}
