// Package frontmatter reads and writes the YAML header of Markdown documents.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnterminated is returned for documents that open a header with "---"
// but never close it.
var ErrUnterminated = errors.New("frontmatter opened with --- but never closed")

const delimiter = "---"

// Document is a Markdown file split into its decoded header and body.
type Document struct {
	Fields map[string]any
	Body   []byte
	// HasHeader is set when the source carried a header, even an empty one.
	HasHeader bool
	// Newline is the line ending of the source, "\n" or "\r\n".
	Newline string
}

// Parse splits content into header and body and decodes the header.
func Parse(content []byte) (*Document, error) {
	header, body, ok, nl, err := split(content)
	if err != nil {
		return nil, err
	}
	fields, err := Decode(header)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return &Document{Fields: fields, Body: body, HasHeader: ok, Newline: nl}, nil
}

// Bytes renders the document. A header is written when the source had one
// or Fields is non-empty.
func (d *Document) Bytes() ([]byte, error) {
	header, err := Encode(d.Fields, d.Newline)
	if err != nil {
		return nil, err
	}
	if !d.HasHeader && len(d.Fields) == 0 {
		return d.Body, nil
	}
	nl := d.Newline
	if nl == "" {
		nl = "\n"
	}
	var out bytes.Buffer
	out.Grow(2*(len(delimiter)+len(nl)) + len(header) + len(d.Body))
	out.WriteString(delimiter + nl)
	out.Write(header)
	out.WriteString(delimiter + nl)
	out.Write(d.Body)
	return out.Bytes(), nil
}

// split cuts the header off content. The header spans from the opening
// delimiter line to the next line that is exactly "---".
func split(content []byte) (header, body []byte, ok bool, nl string, err error) {
	nl = newlineOf(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nl, nil
	}
	rest := content[len(open):]
	for off := 0; off < len(rest); {
		line, _, found := bytes.Cut(rest[off:], []byte(nl))
		next := off + len(line)
		if found {
			next += len(nl)
		}
		if string(line) == delimiter {
			return rest[:off], rest[next:], true, nl, nil
		}
		off = next
	}
	return nil, nil, false, nl, ErrUnterminated
}

func newlineOf(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// Decode parses a raw YAML header. Blank input yields an empty map.
func Decode(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Encode renders fields as a YAML header body without delimiters, keys
// sorted at every level and lines ending in newline ("\n" when empty).
// Empty fields encode to nothing.
func Encode(fields map[string]any, newline string) ([]byte, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(stringKeys(fields)); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}
	out := buf.Bytes()
	if newline != "" && newline != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(newline))
	}
	return out, nil
}

// stringKeys rewrites map[any]any values, at any depth, to map[string]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = stringKeys(val)
		}
		return out
	case map[any]any:
		m, _ := asStringMap(t)
		return stringKeys(m)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = stringKeys(val)
		}
		return out
	default:
		return v
	}
}

// Title returns the trimmed title field when it is a non-blank string.
func Title(fields map[string]any) (string, bool) {
	s, ok := fields["title"].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
