package sidebar

import (
	"path"
	"sort"
	"strings"

	"github.com/microsoft/retina-site/internal/docsite/docs"
)

// Entry is a resolved sidebar entry.
type Entry struct {
	Type  string
	DocID string
	Label string
	Href  string
	Items []Entry
}

// MissingDoc records a doc item whose ID matched no loaded doc.
type MissingDoc struct {
	Sidebar string
	DocID   string
}

// Sidebars is the resolved, read-only sidebar structure.
type Sidebars struct {
	ids     []string
	entries map[string][]Entry
	docIDs  map[string][]string
	owner   map[string]string
	missing []MissingDoc
}

// Resolve expands autogenerated items and binds doc items to loaded docs.
// Doc items that reference unknown docs are dropped and reported by Missing.
func Resolve(def Definition, set *docs.Set) *Sidebars {
	s := &Sidebars{
		ids:     def.IDs(),
		entries: make(map[string][]Entry, len(def)),
		docIDs:  make(map[string][]string, len(def)),
		owner:   make(map[string]string),
	}
	for _, id := range s.ids {
		entries := s.resolveItems(id, def[id], set)
		s.entries[id] = entries

		var ids []string
		collectDocIDs(entries, &ids)
		s.docIDs[id] = ids
		for _, docID := range ids {
			if _, taken := s.owner[docID]; !taken {
				s.owner[docID] = id
			}
		}
	}
	return s
}

func (s *Sidebars) resolveItems(sidebarID string, items []Item, set *docs.Set) []Entry {
	var out []Entry
	for _, it := range items {
		switch it.Type {
		case TypeDoc:
			d, ok := set.ByID(it.ID)
			if !ok {
				s.missing = append(s.missing, MissingDoc{Sidebar: sidebarID, DocID: it.ID})
				continue
			}
			label := it.Label
			if label == "" {
				label = d.Label()
			}
			out = append(out, Entry{Type: TypeDoc, DocID: d.ID, Label: label})
		case TypeCategory:
			out = append(out, Entry{Type: TypeCategory, Label: it.Label, Items: s.resolveItems(sidebarID, it.Items, set)})
		case TypeLink:
			out = append(out, Entry{Type: TypeLink, Label: it.Label, Href: it.Href})
		case TypeAutogenerated:
			out = append(out, Autogenerate(it.DirName, set)...)
		}
	}
	return out
}

func collectDocIDs(entries []Entry, ids *[]string) {
	for _, e := range entries {
		if e.Type == TypeDoc {
			*ids = append(*ids, e.DocID)
		}
		collectDocIDs(e.Items, ids)
	}
}

type autoNode struct {
	name     string
	pos      float64
	hasPos   bool
	doc      *docs.Doc
	children map[string]*autoNode
}

func (n *autoNode) child(raw string) *autoNode {
	if c, ok := n.children[raw]; ok {
		return c
	}
	c := &autoNode{name: raw, children: map[string]*autoNode{}}
	c.pos, c.hasPos = docs.PrefixPosition(raw)
	n.children[raw] = c
	return c
}

// Autogenerate builds entries from the docs below dirName ("." for the whole
// tree). Subdirectories become categories. Siblings are ordered by position
// (explicit or from a numeric name prefix), then by name; unpositioned
// siblings come last.
func Autogenerate(dirName string, set *docs.Set) []Entry {
	dir := cleanDirName(dirName)
	depth := 0
	if dir != "" {
		depth = len(strings.Split(dir, "/"))
	}

	root := &autoNode{children: map[string]*autoNode{}}
	for _, d := range set.All() {
		if dir != "" && d.Dir != dir && !strings.HasPrefix(d.Dir, dir+"/") {
			continue
		}
		rawDir := path.Dir(d.RelPath)
		var segments []string
		if rawDir != "." {
			segments = strings.Split(rawDir, "/")[depth:]
		}

		parent := root
		for _, seg := range segments {
			parent = parent.child(seg)
		}
		leaf := &autoNode{name: path.Base(d.RelPath), doc: d, pos: d.Position, hasPos: d.HasPosition}
		parent.children["\x00"+d.RelPath] = leaf
	}
	return root.entries()
}

func (n *autoNode) entries() []Entry {
	kids := make([]*autoNode, 0, len(n.children))
	for _, c := range n.children {
		kids = append(kids, c)
	}
	sort.Slice(kids, func(i, j int) bool {
		a, b := kids[i], kids[j]
		if a.hasPos != b.hasPos {
			return a.hasPos
		}
		if a.hasPos && a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.name < b.name
	})

	out := make([]Entry, 0, len(kids))
	for _, c := range kids {
		if c.doc != nil {
			out = append(out, Entry{Type: TypeDoc, DocID: c.doc.ID, Label: c.doc.Label()})
			continue
		}
		out = append(out, Entry{
			Type:  TypeCategory,
			Label: docs.Humanize(docs.StripPrefix(c.name)),
			Items: c.entries(),
		})
	}
	return out
}

func cleanDirName(dirName string) string {
	dirName = strings.Trim(path.Clean(dirName), "/")
	if dirName == "." || dirName == "" {
		return ""
	}
	parts := strings.Split(dirName, "/")
	for i, p := range parts {
		parts[i] = docs.StripPrefix(p)
	}
	return strings.Join(parts, "/")
}

// IDs returns the sidebar IDs in sorted order.
func (s *Sidebars) IDs() []string {
	if s == nil {
		return nil
	}
	return s.ids
}

// Has reports whether a sidebar with the ID exists.
func (s *Sidebars) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[id]
	return ok
}

// Entries returns the resolved entries of a sidebar.
func (s *Sidebars) Entries(id string) []Entry {
	if s == nil {
		return nil
	}
	return s.entries[id]
}

// DocIDs returns the doc IDs of a sidebar in display order.
func (s *Sidebars) DocIDs(id string) []string {
	if s == nil {
		return nil
	}
	return s.docIDs[id]
}

// First returns the first doc of a sidebar.
func (s *Sidebars) First(id string) (string, bool) {
	ids := s.DocIDs(id)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// SidebarOf returns the sidebar a doc belongs to. A doc listed in several
// sidebars belongs to the first one by ID.
func (s *Sidebars) SidebarOf(docID string) (string, bool) {
	if s == nil {
		return "", false
	}
	id, ok := s.owner[docID]
	return id, ok
}

// Neighbors returns the previous and next doc IDs around docID in its sidebar.
func (s *Sidebars) Neighbors(docID string) (prev, next string) {
	sidebarID, ok := s.SidebarOf(docID)
	if !ok {
		return "", ""
	}
	ids := s.DocIDs(sidebarID)
	for i, id := range ids {
		if id != docID {
			continue
		}
		if i > 0 {
			prev = ids[i-1]
		}
		if i+1 < len(ids) {
			next = ids[i+1]
		}
		break
	}
	return prev, next
}

// Missing lists doc items that referenced unknown docs.
func (s *Sidebars) Missing() []MissingDoc {
	if s == nil {
		return nil
	}
	return s.missing
}
