package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		fields    map[string]any
		body      string
		hasHeader bool
		newline   string
	}{
		{
			name:   "no header",
			in:     "# Title\n\nHello\n",
			fields: map[string]any{},
			body:   "# Title\n\nHello\n",
		},
		{
			name:      "article header",
			in:        "---\ntitle: Hello\ntopics:\n  - go\n---\n# Title\n",
			fields:    map[string]any{"title": "Hello", "topics": []any{"go"}},
			body:      "# Title\n",
			hasHeader: true,
		},
		{
			name:      "empty header",
			in:        "---\n---\n# Title\n",
			fields:    map[string]any{},
			body:      "# Title\n",
			hasHeader: true,
		},
		{
			name:      "closing delimiter on last line",
			in:        "---\ntitle: x\n---",
			fields:    map[string]any{"title": "x"},
			body:      "",
			hasHeader: true,
		},
		{
			name:      "crlf",
			in:        "---\r\nlayout: home\r\n---\r\nbody\r\n",
			fields:    map[string]any{"layout": "home"},
			body:      "body\r\n",
			hasHeader: true,
			newline:   "\r\n",
		},
		{
			name:      "dashes inside the header are not a delimiter",
			in:        "---\nnote: \"---x\"\n---\nbody\n",
			fields:    map[string]any{"note": "---x"},
			body:      "body\n",
			hasHeader: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.fields, doc.Fields)
			require.Equal(t, tt.body, string(doc.Body))
			require.Equal(t, tt.hasHeader, doc.HasHeader)
			want := tt.newline
			if want == "" {
				want = "\n"
			}
			require.Equal(t, want, doc.Newline)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: Hello\n# Title\n"))
	require.ErrorIs(t, err, ErrUnterminated)

	_, err = Parse([]byte("---\ntitle: [open\n---\nbody\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse frontmatter")
}

func TestDocumentBytes(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Hello\ntype: tech\n---\nbody text\n"))
	require.NoError(t, err)
	doc.Fields["published"] = true
	out, err := doc.Bytes()
	require.NoError(t, err)
	require.Equal(t, "---\npublished: true\ntitle: Hello\ntype: tech\n---\nbody text\n", string(out))

	doc, err = Parse([]byte("---\r\n---\r\nline\r\n"))
	require.NoError(t, err)
	out, err = doc.Bytes()
	require.NoError(t, err)
	require.Equal(t, "---\r\n---\r\nline\r\n", string(out), "an empty header is kept")

	doc, err = Parse([]byte("# Title\n"))
	require.NoError(t, err)
	out, err = doc.Bytes()
	require.NoError(t, err)
	require.Equal(t, "# Title\n", string(out))

	doc.Fields["title"] = "T"
	out, err = doc.Bytes()
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: T\n---\n# Title\n", string(out))
}

func TestDecode(t *testing.T) {
	fields, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	fields, err = Decode([]byte("  \n"))
	require.NoError(t, err)
	require.NotNil(t, fields)

	_, err = Decode([]byte(": not yaml"))
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		newline string
		want    string
	}{
		{
			name:   "empty",
			fields: map[string]any{},
			want:   "",
		},
		{
			name: "article fields sorted by key",
			fields: map[string]any{
				"title":     "Getting started",
				"published": true,
				"topics":    []string{"go", "docs"},
				"order":     2,
			},
			want: "order: 2\npublished: true\ntitle: Getting started\ntopics:\n  - go\n  - docs\n",
		},
		{
			name: "nested maps sorted too",
			fields: map[string]any{
				"sidebar": map[string]any{"depth": 1, "collapsed": false},
				"layout":  "doc",
			},
			want: "layout: doc\nsidebar:\n  collapsed: false\n  depth: 1\n",
		},
		{
			name:   "untyped map keys become strings",
			fields: map[string]any{"meta": map[any]any{"b": "two", 1: "one"}},
			want:   "meta:\n  \"1\": one\n  b: two\n",
		},
		{
			name:   "null and float values",
			fields: map[string]any{"draft": nil, "weight": 1.5},
			want:   "draft: null\nweight: 1.5\n",
		},
		{
			name:   "strings that read as other types stay strings",
			fields: map[string]any{"version": "true"},
			want:   "version: \"true\"\n",
		},
		{
			name:    "crlf",
			fields:  map[string]any{"title": "Setup", "tags": []any{"a"}},
			newline: "\r\n",
			want:    "tags:\r\n  - a\r\ntitle: Setup\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encode(tt.fields, tt.newline)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestMerge(t *testing.T) {
	base := map[string]any{
		"title": "Intro",
		"head":  map[string]any{"lang": "en", "robots": "index"},
		"tags":  []any{"x"},
	}
	overrides := map[string]any{
		"head":     map[any]any{"robots": "noindex"},
		"tags":     []any{"y"},
		"editLink": false,
	}

	merged := Merge(base, overrides)
	require.Equal(t, map[string]any{
		"title":    "Intro",
		"head":     map[string]any{"lang": "en", "robots": "noindex"},
		"tags":     []any{"y"},
		"editLink": false,
	}, merged)
	require.Equal(t, map[string]any{"lang": "en", "robots": "index"}, base["head"], "base is not modified")

	require.Equal(t, map[string]any{"a": 1}, Merge(nil, map[string]any{"a": 1}))
}

func TestFieldAccessors(t *testing.T) {
	fields, err := Decode([]byte("order: 3\nweight: 2.0\nexclude: true\ntitle: \"  \"\n"))
	require.NoError(t, err)

	n, ok := Int(fields, "order")
	require.True(t, ok)
	require.Equal(t, 3, n)
	n, ok = Int(fields, "weight")
	require.True(t, ok)
	require.Equal(t, 2, n)
	_, ok = Int(fields, "missing")
	require.False(t, ok)

	require.True(t, Bool(fields, "exclude"))
	require.False(t, Bool(fields, "missing"))

	_, ok = Title(fields)
	require.False(t, ok, "blank title does not count")
}
