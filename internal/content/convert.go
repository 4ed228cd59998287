package content

import (
	"bytes"
	"errors"
	"maps"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docpress/internal/frontmatter"
)

// ErrNoTitle marks an article whose frontmatter has no title. Such articles
// are not imported.
var ErrNoTitle = errors.New("article has no title")

// Article is a converted document ready to be written.
type Article struct {
	Title       string
	Fields      map[string]any
	Body        []byte
	Fingerprint string

	newline string
}

// ConvertOptions control ConvertArticle.
type ConvertOptions struct {
	// Overrides are merged over the article frontmatter; nested maps merge recursively.
	Overrides map[string]any
	// Fingerprint stamps an mdfp content fingerprint into the frontmatter.
	Fingerprint bool
}

// ConvertArticle turns a Zenn article into a documentation page: the
// frontmatter gets the overrides merged in and the body is prefixed with the
// title as a level-1 heading.
func ConvertArticle(src []byte, opts ConvertOptions) (*Article, error) {
	doc, err := frontmatter.Parse(src)
	if err != nil {
		return nil, err
	}
	title, ok := frontmatter.Title(doc.Fields)
	if !ok {
		return nil, ErrNoTitle
	}

	fields := frontmatter.Merge(doc.Fields, opts.Overrides)
	delete(fields, mdfp.FingerprintField)

	nl := doc.Newline
	if nl == "" {
		nl = "\n"
	}
	var body bytes.Buffer
	body.WriteString("# " + title + nl + nl)
	if trimmed := bytes.TrimSpace(doc.Body); len(trimmed) > 0 {
		body.Write(trimmed)
		body.WriteString(nl)
	}

	a := &Article{Title: title, Fields: fields, Body: body.Bytes(), newline: nl}
	if opts.Fingerprint {
		fp, err := Fingerprint(fields, a.Body)
		if err != nil {
			return nil, err
		}
		a.Fields[mdfp.FingerprintField] = fp
		a.Fingerprint = fp
	}
	return a, nil
}

// Bytes renders the article with its frontmatter header.
func (a *Article) Bytes() ([]byte, error) {
	doc := frontmatter.Document{Fields: a.Fields, Body: a.Body, HasHeader: true, Newline: a.newline}
	return doc.Bytes()
}

// Fingerprint computes the mdfp fingerprint of a document, ignoring any
// fingerprint field already present.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := maps.Clone(fields)
	delete(hashed, mdfp.FingerprintField)

	fm := ""
	if len(hashed) > 0 {
		serialized, err := frontmatter.Encode(hashed, "\n")
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}
