package sidebar

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sorter orders sibling entries: manual priority first, then frontmatter
// order (when enabled), then a numeric-aware, case-insensitive name order.
type sorter struct {
	opts     Options
	priority map[string]int
	coll     *collate.Collator
}

func newSorter(opts Options) *sorter {
	priority := make(map[string]int, len(opts.ManualSortFileNameByPriority))
	for i, name := range opts.ManualSortFileNameByPriority {
		if _, seen := priority[name]; !seen {
			priority[name] = i
		}
	}
	return &sorter{
		opts:     opts,
		priority: priority,
		coll:     collate.New(language.Und, collate.Numeric, collate.IgnoreCase),
	}
}

func (s *sorter) sort(entries []entry) {
	slices.SortStableFunc(entries, s.compare)
}

func (s *sorter) compare(a, b entry) int {
	pa, aManual := s.priority[a.name]
	pb, bManual := s.priority[b.name]
	switch {
	case aManual && bManual:
		return pa - pb
	case aManual:
		return -1
	case bManual:
		return 1
	}

	c := 0
	if s.opts.SortMenusByFrontmatterOrder {
		c = a.order - b.order
	}
	if c == 0 {
		ka, kb := a.name, b.name
		if s.opts.SortMenusByName {
			ka, kb = a.item.Text, b.item.Text
		}
		c = s.coll.CompareString(ka, kb)
		if c == 0 {
			c = strings.Compare(ka, kb)
		}
	}
	if s.opts.SortMenusOrderByDescending {
		c = -c
	}
	return c
}
