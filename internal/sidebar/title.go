package sidebar

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var headingParser = goldmark.New().Parser()

// firstHeading returns the text of the first level-1 ATX or setext heading in body.
func firstHeading(body []byte) (string, bool) {
	root := headingParser.Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level != 1 {
			return gmast.WalkSkipChildren, nil
		}
		var buf bytes.Buffer
		collectText(&buf, h, body)
		title = strings.TrimSpace(buf.String())
		return gmast.WalkStop, nil
	})
	return title, title != ""
}

func collectText(buf *bytes.Buffer, n gmast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		default:
			collectText(buf, c, source)
		}
	}
}

// titleFromName turns a file or folder name into display text according to opts.
func titleFromName(name string, opts Options) string {
	if opts.HyphenToSpace {
		name = strings.ReplaceAll(name, "-", " ")
	}
	if opts.UnderscoreToSpace {
		name = strings.ReplaceAll(name, "_", " ")
	}
	switch {
	case opts.CapitalizeEachWords:
		name = cases.Title(language.Und, cases.NoLower).String(name)
	case opts.CapitalizeFirst:
		r, size := utf8.DecodeRuneInString(name)
		if r != utf8.RuneError {
			name = cases.Upper(language.Und).String(string(r)) + name[size:]
		}
	}
	return name
}
