// Package sidebar scans a documentation tree and produces the navigation
// groups a documentation-site generator renders as its sidebar.
//
// Generation is a pure function of the directory contents and Options: the
// same tree always yields the same Sidebar.
package sidebar

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/frontmatter"
	"git.home.luguber.info/inful/docpress/internal/logfields"
)

const indexFile = "index.md"

// Item is one sidebar entry: a page link, or a group with nested Items.
type Item struct {
	Text      string `json:"text" yaml:"text"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Items     []Item `json:"items,omitempty" yaml:"items,omitempty"`
	Collapsed *bool  `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`

	// Source is the page file relative to the document root. Empty for groups
	// without an index page.
	Source string `json:"-" yaml:"-"`
}

// Sidebar is the ordered list of top-level entries.
type Sidebar []Item

// Clone returns a deep copy.
func (s Sidebar) Clone() Sidebar {
	if s == nil {
		return nil
	}
	out := make(Sidebar, len(s))
	for i, it := range s {
		out[i] = it.clone()
	}
	return out
}

func (it Item) clone() Item {
	if it.Collapsed != nil {
		c := *it.Collapsed
		it.Collapsed = &c
	}
	if it.Items != nil {
		children := make([]Item, len(it.Items))
		for i, c := range it.Items {
			children[i] = c.clone()
		}
		it.Items = children
	}
	return it
}

// Pages returns every entry backed by a page file, in display order.
func (s Sidebar) Pages() []Item {
	var pages []Item
	var visit func(items []Item)
	visit = func(items []Item) {
		for _, it := range items {
			if it.Source != "" {
				page := it
				page.Items = nil
				pages = append(pages, page)
			}
			visit(it.Items)
		}
	}
	visit(s)
	return pages
}

// GenerateDir generates the sidebar for a project rooted at projectRoot on disk.
func GenerateDir(projectRoot string, opts Options) (Sidebar, error) {
	return Generate(os.DirFS(projectRoot), opts)
}

// Generate walks the document root inside fsys and builds the sidebar.
func Generate(fsys fs.FS, opts Options) (Sidebar, error) {
	docRoot := cleanRel(opts.DocumentRootPath)
	scanRel := cleanRel(opts.ScanStartPath)
	scanDir := path.Join(docRoot, scanRel)

	info, err := fs.Stat(fsys, scanDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "document root not found").
				WithPath(displayPath(scanDir)).
				Build()
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategorySidebar, "stat document root").
			WithPath(displayPath(scanDir)).
			Build()
	}
	if !info.IsDir() {
		return nil, foundationerrors.ValidationError("document root is not a directory").
			WithPath(displayPath(scanDir)).
			Build()
	}

	g := &generator{fsys: fsys, opts: opts, docRoot: docRoot, sorter: newSorter(opts)}
	items, err := g.walk(scanRel, 1)
	if err != nil {
		return nil, err
	}
	slog.Debug("Sidebar generated", logfields.Path(displayPath(scanDir)), logfields.Count(len(items)))

	if opts.RootGroupText != "" {
		root := Item{
			Text:      opts.RootGroupText,
			Link:      opts.RootGroupLink,
			Items:     items,
			Collapsed: opts.RootGroupCollapsed,
		}
		return Sidebar{root}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return Sidebar(items), nil
}

type generator struct {
	fsys    fs.FS
	opts    Options
	docRoot string
	sorter  *sorter
}

// entry is a candidate sidebar item together with the keys it sorts by.
type entry struct {
	item  Item
	name  string
	order int
}

// walk builds the items for rel, a directory relative to the document root.
func (g *generator) walk(rel string, depth int) ([]Item, error) {
	dir := path.Join(g.docRoot, rel)
	dirEntries, err := fs.ReadDir(g.fsys, dir)
	if err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategorySidebar, "read directory").
			WithPath(displayPath(dir)).
			Build()
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") && !g.opts.IncludeDotFiles {
			continue
		}
		childRel := joinRel(rel, name)

		var (
			e  entry
			ok bool
		)
		if de.IsDir() {
			e, ok, err = g.group(childRel, name, depth)
		} else {
			e, ok, err = g.page(childRel, name, depth == 1)
		}
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}

	g.sorter.sort(entries)

	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items, nil
}

func (g *generator) group(rel, name string, depth int) (entry, bool, error) {
	if matches(g.opts.ExcludeFolders, name, rel) {
		return entry{}, false, nil
	}
	children, err := g.walk(rel, depth+1)
	if err != nil {
		return entry{}, false, err
	}

	indexRel := joinRel(rel, indexFile)
	var indexFields map[string]any
	hasIndex := false
	if _, err := fs.Stat(g.fsys, path.Join(g.docRoot, indexRel)); err == nil {
		hasIndex = true
		if g.opts.UseFolderTitleFromIndexFile || g.opts.SortMenusByFrontmatterOrder {
			indexFields, _, err = g.readPage(indexRel)
			if err != nil {
				return entry{}, false, err
			}
		}
	}

	linked := g.opts.UseFolderLinkFromIndexFile && hasIndex
	if len(children) == 0 && !linked && !g.opts.IncludeEmptyFolder {
		return entry{}, false, nil
	}

	item := Item{
		Text:      titleFromName(name, g.opts),
		Items:     children,
		Collapsed: g.collapsed(depth),
	}
	if g.opts.UseFolderTitleFromIndexFile {
		if t, ok := frontmatter.Title(indexFields); ok {
			item.Text = t
		}
	}
	if linked {
		item.Link = g.link(rel) + "/"
		item.Source = indexRel
	}
	return entry{item: item, name: name, order: g.order(indexFields)}, true, nil
}

func (g *generator) page(rel, name string, atRoot bool) (entry, bool, error) {
	ext := path.Ext(name)
	if !strings.EqualFold(ext, ".md") {
		return entry{}, false, nil
	}
	if strings.EqualFold(name, indexFile) {
		if atRoot && !g.opts.IncludeRootIndexFile {
			return entry{}, false, nil
		}
		if !atRoot && !g.opts.IncludeFolderIndexFile {
			return entry{}, false, nil
		}
	}
	if matches(g.opts.ExcludeFiles, name, rel) {
		return entry{}, false, nil
	}

	var (
		fields map[string]any
		body   []byte
	)
	if g.opts.needsContent() {
		var err error
		fields, body, err = g.readPage(rel)
		if err != nil {
			return entry{}, false, err
		}
		if key := g.opts.ExcludeFilesByFrontmatterFieldName; key != "" && frontmatter.Bool(fields, key) {
			return entry{}, false, nil
		}
	}

	base := strings.TrimSuffix(name, ext)
	item := Item{Text: g.pageTitle(base, fields, body), Source: rel}
	if strings.EqualFold(name, indexFile) {
		item.Link = g.link(path.Dir(rel))
		if !strings.HasSuffix(item.Link, "/") {
			item.Link += "/"
		}
	} else {
		item.Link = g.link(strings.TrimSuffix(rel, ext))
	}
	return entry{item: item, name: name, order: g.order(fields)}, true, nil
}

func (g *generator) readPage(rel string) (map[string]any, []byte, error) {
	p := path.Join(g.docRoot, rel)
	raw, err := fs.ReadFile(g.fsys, p)
	if err != nil {
		return nil, nil, foundationerrors.WrapError(err, foundationerrors.CategorySidebar, "read page").
			WithPath(displayPath(p)).
			Build()
	}
	doc, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, nil, foundationerrors.WrapError(err, foundationerrors.CategorySidebar, "invalid frontmatter").
			WithPath(displayPath(p)).
			Build()
	}
	return doc.Fields, doc.Body, nil
}

func (g *generator) pageTitle(base string, fields map[string]any, body []byte) string {
	if g.opts.UseTitleFromFrontmatter {
		if t, ok := frontmatter.Title(fields); ok {
			return t
		}
	}
	if g.opts.UseTitleFromFileHeading {
		if t, ok := firstHeading(body); ok {
			return t
		}
	}
	return titleFromName(base, g.opts)
}

func (g *generator) order(fields map[string]any) int {
	if n, ok := frontmatter.Int(fields, "order"); ok {
		return n
	}
	return g.opts.FrontmatterOrderDefaultValue
}

func (g *generator) collapsed(depth int) *bool {
	if g.opts.Collapsed == nil {
		return nil
	}
	v := *g.opts.Collapsed
	if g.opts.CollapseDepth > 0 {
		v = depth >= g.opts.CollapseDepth
	}
	return &v
}

func (g *generator) link(rel string) string {
	if rel == "." {
		rel = ""
	}
	return path.Join("/", g.opts.BasePath, rel)
}

func matches(patterns []string, name, rel string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		p = strings.Trim(p, "/")
		return p == name || p == rel
	})
}

// cleanRel normalizes an option path into an fs.FS-relative path.
func cleanRel(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}

func joinRel(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}

func displayPath(p string) string {
	if p == "." {
		return "/"
	}
	return "/" + p
}
