package termui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestProgress_NonInteractive(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := New(&buf, 3, WithClock(clock.now))

	p.Stage("Importing articles")
	p.Start("import_articles", 2)
	p.Advance("a.md")
	p.Advance("b.md")
	p.Finish("import_articles")
	p.Stage("Importing images")
	p.Stage("Writing site config")

	clock.t = clock.t.Add(1500 * time.Millisecond)
	p.Done(2, 2048)

	want := strings.Join([]string{
		"[1/3] Importing articles",
		"      2/2 files",
		"[2/3] Importing images",
		"[3/3] Writing site config",
		"Done in 1.5s (2 files, 2.0 kB written)",
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestProgress_InteractiveDrawsBar(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 1, WithInteractive(true))

	p.Stage("Importing images")
	p.Start("import_images", 4)
	p.Advance("logo.png")
	p.Finish("import_images")

	out := buf.String()
	require.Contains(t, out, "Importing images")
	require.Contains(t, out, "1/4")
	require.Contains(t, out, "logo.png")
	require.Contains(t, out, "\r")
	require.Contains(t, out, "1/4 files")
}

func TestProgress_EmptyStage(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 1, WithInteractive(true))
	p.Start("import_images", 0)
	p.Finish("import_images")
	require.NotContains(t, buf.String(), "\r")
	require.Contains(t, buf.String(), "0/0 files")
}
