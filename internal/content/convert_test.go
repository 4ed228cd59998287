package content

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"
)

const helloArticle = "---\ntitle: Hello\ntype: tech\npublished: true\n---\n\nbody text\n"

func TestConvertArticle(t *testing.T) {
	a, err := ConvertArticle([]byte(helloArticle), ConvertOptions{Overrides: map[string]any{"layout": "doc"}})
	require.NoError(t, err)
	require.Equal(t, "Hello", a.Title)
	require.Empty(t, a.Fingerprint)

	out, err := a.Bytes()
	require.NoError(t, err)
	require.Equal(t, "---\nlayout: doc\npublished: true\ntitle: Hello\ntype: tech\n---\n# Hello\n\nbody text\n", string(out))
}

func TestConvertArticle_OverridesWin(t *testing.T) {
	src := "---\ntitle: Hello\nhead:\n  lang: ja\n  robots: index\npublished: false\n---\nbody\n"
	a, err := ConvertArticle([]byte(src), ConvertOptions{Overrides: map[string]any{
		"published": true,
		"head":      map[string]any{"lang": "en"},
	}})
	require.NoError(t, err)
	require.Equal(t, true, a.Fields["published"])
	require.Equal(t, map[string]any{"lang": "en", "robots": "index"}, a.Fields["head"])
}

func TestConvertArticle_NoTitle(t *testing.T) {
	for name, src := range map[string]string{
		"missing":        "---\ntype: idea\n---\nbody\n",
		"blank":          "---\ntitle: \"  \"\n---\nbody\n",
		"no frontmatter": "# Heading only\n",
		"non-string":     "---\ntitle: 42\n---\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ConvertArticle([]byte(src), ConvertOptions{})
			require.ErrorIs(t, err, ErrNoTitle)
		})
	}
}

func TestConvertArticle_InvalidFrontmatter(t *testing.T) {
	_, err := ConvertArticle([]byte("---\ntitle: [oops\n---\nbody\n"), ConvertOptions{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoTitle)

	_, err = ConvertArticle([]byte("---\ntitle: open\nbody\n"), ConvertOptions{})
	require.Error(t, err)
}

func TestConvertArticle_Fingerprint(t *testing.T) {
	a, err := ConvertArticle([]byte(helloArticle), ConvertOptions{Fingerprint: true})
	require.NoError(t, err)
	require.NotEmpty(t, a.Fingerprint)
	require.Equal(t, a.Fingerprint, a.Fields[mdfp.FingerprintField])

	again, err := Fingerprint(a.Fields, a.Body)
	require.NoError(t, err)
	require.Equal(t, a.Fingerprint, again, "existing fingerprint field is ignored")

	b, err := ConvertArticle([]byte(helloArticle), ConvertOptions{Fingerprint: true})
	require.NoError(t, err)
	outA, err := a.Bytes()
	require.NoError(t, err)
	outB, err := b.Bytes()
	require.NoError(t, err)
	require.Equal(t, outA, outB)

	changed, err := ConvertArticle([]byte(helloArticle+"more\n"), ConvertOptions{Fingerprint: true})
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint, changed.Fingerprint)
}

func TestConvertArticle_KeepsCRLF(t *testing.T) {
	a, err := ConvertArticle([]byte("---\r\ntitle: Win\r\n---\r\nline\r\n"), ConvertOptions{})
	require.NoError(t, err)
	out, err := a.Bytes()
	require.NoError(t, err)
	require.Equal(t, "---\r\ntitle: Win\r\n---\r\n# Win\r\n\r\nline\r\n", string(out))
}
