package logfields

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStringHelpers(t *testing.T) {
	for _, tc := range []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{RunID("7f3c"), KeyRunID, "7f3c"},
		{Stage("articles"), KeyStage, "articles"},
		{Path("docs/guide"), KeyPath, "docs/guide"},
		{File("intro.md"), KeyFile, "intro.md"},
		{Name("resync"), KeyName, "resync"},
		{Format("yaml"), KeyFormat, "yaml"},
		{Op("CREATE"), KeyOp, "CREATE"},
		{Trigger("change"), KeyTrigger, "change"},
	} {
		require.Equal(t, tc.key, tc.attr.Key)
		require.Equal(t, tc.val, tc.attr.Value.String())
	}
}

func TestElapsed(t *testing.T) {
	a := Elapsed(1500 * time.Microsecond)
	require.Equal(t, KeyElapsedMS, a.Key)
	require.InDelta(t, 1.5, a.Value.Float64(), 1e-9)

	c := Count(3)
	require.Equal(t, int64(3), c.Value.Int64())
}

func TestError(t *testing.T) {
	require.Empty(t, Error(nil).Value.String())
	require.Equal(t, "disk full", Error(errors.New("disk full")).Value.String())
}

func TestAttrsInTextOutput(t *testing.T) {
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("Site config written", Path("docs/.vitepress/config.json"), Format("json"))
	require.Contains(t, buf.String(), "path=docs/.vitepress/config.json format=json")
}
