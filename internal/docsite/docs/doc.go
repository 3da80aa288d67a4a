package docs

import (
	"path"
	"sort"
	"strings"
)

// Doc is one documentation page loaded from a markdown file.
type Doc struct {
	// ID is the slash-separated doc identifier ("Introduction/intro").
	ID           string
	Title        string
	SidebarLabel string
	// Position orders the doc within its directory. Explicit sidebar_position
	// wins over a numeric filename prefix; HasPosition is false when neither exists.
	Position    float64
	HasPosition bool
	// Dir is the cleaned directory part of ID ("" for top-level docs).
	Dir string
	// RelPath is the source path relative to the docs root, always with forward slashes.
	RelPath    string
	SourceFile string
	Route      string
	Body       []byte
}

// Label returns the sidebar label, falling back to the title.
func (d *Doc) Label() string {
	if d.SidebarLabel != "" {
		return d.SidebarLabel
	}
	return d.Title
}

// Set indexes loaded docs by ID, route and source path.
type Set struct {
	docs    []*Doc
	byID    map[string]*Doc
	byRel   map[string]*Doc
	byRoute map[string]*Doc
}

// NewSet indexes docs. The order of All is sorted by RelPath; on a duplicate
// ID or route the first doc in that order wins.
func NewSet(docs []*Doc) *Set {
	sorted := make([]*Doc, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	s := &Set{
		docs:    sorted,
		byID:    make(map[string]*Doc, len(docs)),
		byRel:   make(map[string]*Doc, len(docs)),
		byRoute: make(map[string]*Doc, len(docs)),
	}
	for _, d := range sorted {
		s.byRel[d.RelPath] = d
		if _, ok := s.byID[d.ID]; !ok {
			s.byID[d.ID] = d
		}
		if _, ok := s.byRoute[d.Route]; !ok {
			s.byRoute[d.Route] = d
		}
	}
	return s
}

// All returns every doc in RelPath order.
func (s *Set) All() []*Doc {
	if s == nil {
		return nil
	}
	return s.docs
}

// ByID looks a doc up by ID.
func (s *Set) ByID(id string) (*Doc, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.byID[id]
	return d, ok
}

// ByRoute looks a doc up by route. A trailing slash is ignored.
func (s *Set) ByRoute(route string) (*Doc, bool) {
	if s == nil {
		return nil, false
	}
	if d, ok := s.byRoute[route]; ok {
		return d, true
	}
	d, ok := s.byRoute[strings.TrimSuffix(route, "/")]
	return d, ok
}

// ResolveLink resolves a relative markdown link found in from. The fragment,
// if any, is returned separately.
func (s *Set) ResolveLink(from *Doc, dest string) (*Doc, string, bool) {
	target, fragment, _ := strings.Cut(dest, "#")
	rel := path.Clean(path.Join(path.Dir(from.RelPath), target))
	d, ok := s.byRel[rel]
	return d, fragment, ok
}

// IsDocLink reports whether a link destination is a relative link to a
// markdown source file.
func IsDocLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") || strings.Contains(dest, "://") ||
		strings.HasPrefix(dest, "mailto:") {
		return false
	}
	target, _, _ := strings.Cut(dest, "#")
	ext := path.Ext(target)
	return ext == ".md" || ext == ".mdx"
}
