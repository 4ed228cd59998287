package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	err := WrapError(fs.ErrNotExist, CategoryNotFound, "document root not found").
		WithPath("docs").
		Build()

	require.Equal(t, CategoryNotFound, err.Category())
	require.Equal(t, SeverityError, err.Severity())
	require.Equal(t, "document root not found", err.Message())
	require.ErrorIs(t, err, fs.ErrNotExist)
	p, ok := err.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, "docs", p)
	require.Equal(t, "not_found: document root not found (path=docs): file does not exist", err.Error())
}

func TestBuilder_Severity(t *testing.T) {
	require.Equal(t, SeverityFatal, ValidationError("bad format").Build().Severity())
	require.Equal(t, SeverityWarning, NewError(CategoryContent, "image skipped").Warning().Build().Severity())
}

func TestBuilder_ReplacesContextKey(t *testing.T) {
	err := NewError(CategoryContent, "convert article").
		WithPath("a.md").
		WithContext("line", 3).
		WithPath("b.md").
		Build()

	require.Len(t, err.Context(), 2)
	p, _ := err.Context().GetString("path")
	require.Equal(t, "b.md", p)
	_, ok := err.Context().GetString("line")
	require.False(t, ok, "non-string values are not returned by GetString")
	require.Equal(t, "content: convert article (path=b.md line=3)", err.Error())
}

func TestBuilder_Reuse(t *testing.T) {
	b := NewError(CategorySidebar, "read directory")
	first := b.WithPath("docs/a").Build()
	second := b.WithPath("docs/b").Build()

	p, _ := first.Context().GetString("path")
	require.Equal(t, "docs/a", p)
	p, _ = second.Context().GetString("path")
	require.Equal(t, "docs/b", p)
}

func TestClassifiedError_WithContext(t *testing.T) {
	base := NewError(CategorySidebar, "read page").Build()
	derived := base.WithContext("path", "guide/intro.md")

	require.Empty(t, base.Context())
	p, _ := derived.Context().GetString("path")
	require.Equal(t, "guide/intro.md", p)
}

func TestClassifiedError_Is(t *testing.T) {
	sentinel := NewError(CategoryContent, "article has no title").Build()
	got := fmt.Errorf("import: %w", NewError(CategoryContent, "article has no title").WithPath("a.md").Build())

	require.ErrorIs(t, got, sentinel)
	require.NotErrorIs(t, got, NewError(CategorySidebar, "article has no title").Build())
}

func TestHasCategory(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewError(CategoryConfig, "parse configuration").Build())

	require.True(t, HasCategory(wrapped, CategoryConfig))
	require.False(t, HasCategory(wrapped, CategoryValidation))
	require.False(t, HasCategory(errors.New("plain"), CategoryConfig))
	require.False(t, HasCategory(nil, CategoryConfig))

	_, ok := AsClassified(errors.New("plain"))
	require.False(t, ok)
}

func TestExitCode(t *testing.T) {
	for c, want := range map[ErrorCategory]int{
		CategoryValidation: 2,
		CategoryNotFound:   3,
		CategoryConfig:     7,
		CategoryGit:        8,
		CategoryInternal:   10,
		CategorySidebar:    11,
		CategoryContent:    11,
		CategoryFileSystem: 11,
		CategoryRuntime:    12,
		"unknown":          ExitUnclassified,
	} {
		require.Equal(t, want, c.ExitCode(), c)
	}
}
