package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(io.Discard, false, discardLogger())

	require.Equal(t, 0, a.ExitCodeFor(nil))
	require.Equal(t, 2, a.ExitCodeFor(ValidationError("invalid --format").Build()))
	require.Equal(t, 7, a.ExitCodeFor(fmt.Errorf("outer: %w", NewError(CategoryConfig, "bad").Build())))
	require.Equal(t, 11, a.ExitCodeFor(NewError(CategorySidebar, "read directory").Build()))
	require.Equal(t, ExitUnclassified, a.ExitCodeFor(errors.New("boom")))
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(io.Discard, false, discardLogger())
	loud := NewCLIErrorAdapter(io.Discard, true, discardLogger())

	notFound := WrapError(errors.New("no such file"), CategoryNotFound, "document root not found").
		WithPath("docs").
		WithContext("config", "docpress.yaml").
		Build()
	require.Equal(t, "Error: document root not found: no such file\n  path: docs\n  config: docpress.yaml",
		quiet.FormatError(notFound))
	require.Equal(t, "Error: "+notFound.Error(), loud.FormatError(notFound))

	internal := WrapError(errors.New("nil map"), CategoryInternal, "encode sidebar").Build()
	require.Contains(t, quiet.FormatError(internal), "run with -v")
	require.Contains(t, loud.FormatError(internal), "nil map")

	require.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	require.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_Handle(t *testing.T) {
	var out, logs bytes.Buffer
	a := NewCLIErrorAdapter(&out, false, slog.New(slog.NewTextHandler(&logs, nil)))

	require.Equal(t, 0, a.Handle(nil))
	require.Empty(t, out.String())

	code := a.Handle(NewError(CategoryConfig, "parse configuration").WithPath("docpress.yaml").Fatal().Build())
	require.Equal(t, 7, code)
	require.Contains(t, out.String(), "Error: parse configuration")
	require.Contains(t, logs.String(), "category=config")
	require.Contains(t, logs.String(), "path=docpress.yaml")

	out.Reset()
	logs.Reset()
	require.Equal(t, 11, a.Handle(NewError(CategorySidebar, "read directory").Build()))
	require.Contains(t, out.String(), "read directory")
	require.Empty(t, logs.String(), "non-fatal errors are only printed")
}
