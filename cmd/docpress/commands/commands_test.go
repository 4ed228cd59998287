package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/site"
)

// syncBuffer is a bytes.Buffer safe for the concurrent writes of watch mode.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out, errOut syncBuffer
	code := Execute(context.Background(), args, &out, &errOut)
	if code != 0 {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return code, out.String()
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

const testConfig = `sidebar:
  documentRootPath: /docs
  useTitleFromFileHeading: true
  useTitleFromFrontmatter: true
site:
  title: Test Docs
`

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docpress.yaml":       testConfig,
		"docs/index.md":       "---\nlayout: home\n---\n",
		"docs/guide/intro.md": "# Introduction\n",
		"docs/guide/setup.md": "---\ntitle: Setup\n---\nbody\n",
	})
	return dir
}

func readSite(t *testing.T, path string) site.Config {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg site.Config
	require.NoError(t, json.Unmarshal(raw, &cfg))
	return cfg
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	code, out := run(t, "-p", dir, "init")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "docpress.yaml")
	require.FileExists(t, filepath.Join(dir, "docpress.yaml"))

	code, _ = run(t, "-p", dir, "init")
	require.Equal(t, 7, code, "existing file is a config error")

	code, _ = run(t, "-p", dir, "init", "--force")
	require.Equal(t, 0, code)
}

func TestConfig_WritesSiteConfig(t *testing.T) {
	dir := newProject(t)

	code, _ := run(t, "-p", dir, "config")
	require.Equal(t, 0, code)

	out := filepath.Join(dir, "docs", ".vitepress", "config.json")
	cfg := readSite(t, out)
	assert.Equal(t, "Test Docs", cfg.Title)
	require.Len(t, cfg.ThemeConfig.Sidebar, 1)
	guide := cfg.ThemeConfig.Sidebar[0]
	assert.Equal(t, "guide", guide.Text)
	require.Len(t, guide.Items, 2)
	assert.Equal(t, "Introduction", guide.Items[0].Text)
	assert.Equal(t, "/guide/intro", guide.Items[0].Link)
	assert.Equal(t, "Setup", guide.Items[1].Text)

	before, err := os.Stat(out)
	require.NoError(t, err)
	code, _ = run(t, "-p", dir, "config")
	require.Equal(t, 0, code)
	after, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "identical output is not rewritten")
}

func TestConfig_Stdout(t *testing.T) {
	dir := newProject(t)

	code, out := run(t, "-p", dir, "config", "--out", "-", "--format", "yaml")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "title: Test Docs")
	assert.Contains(t, out, "text: Introduction")
	assert.NoFileExists(t, filepath.Join(dir, "docs", ".vitepress", "config.json"))
}

func TestConfig_InvalidFormat(t *testing.T) {
	code, _ := run(t, "-p", newProject(t), "config", "--format", "toml")
	require.Equal(t, 2, code)
}

func TestConfig_MetricsFile(t *testing.T) {
	dir := newProject(t)

	code, _ := run(t, "-p", dir, "config", "--metrics-file", "out/metrics.prom")
	require.Equal(t, 0, code)

	raw, err := os.ReadFile(filepath.Join(dir, "out", "metrics.prom"))
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, `docpress_build_outcomes_total{outcome="success"} 1`)
	assert.Contains(t, text, `docpress_files_total{kind="config",result="written"} 1`)
	assert.Contains(t, text, `docpress_stage_results_total{result="success",stage="site_config"} 1`)
}

func TestMissingConfig(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.md": "# A\n"})

	code, out := run(t, "-p", dir, "sidebar")
	require.Equal(t, 0, code, "the default config file is optional")
	assert.Contains(t, out, `"link": "/a"`)

	code, _ = run(t, "-p", dir, "-c", "other.yaml", "sidebar")
	require.Equal(t, 3, code, "an explicit config file must exist")
}

func TestSidebar(t *testing.T) {
	code, out := run(t, "-p", newProject(t), "sidebar", "-f", "yaml")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "- text: guide"), out)
	assert.Contains(t, out, "link: /guide/setup")
}

func TestCheck(t *testing.T) {
	dir := newProject(t)
	code, out := run(t, "-p", dir, "check")
	require.Equal(t, 0, code)
	assert.Equal(t, "OK: 2 pages, 2 nav links\n", out)

	writeTree(t, dir, map[string]string{
		"docpress.yaml": testConfig + "  editLink:\n    pattern: https://example.com/edit\n",
	})
	code, _ = run(t, "-p", dir, "check")
	require.Equal(t, 2, code, "validation failure")
}

func TestCheck_MissingDocRoot(t *testing.T) {
	var out, errOut syncBuffer
	code := Execute(context.Background(), []string{"-p", t.TempDir(), "check"}, &out, &errOut)
	require.Equal(t, 3, code)
	assert.Contains(t, errOut.String(), "Error: document root not found")
	assert.Contains(t, errOut.String(), "path: /docs")
	assert.Empty(t, out.String())
}

func TestPages(t *testing.T) {
	dir := newProject(t)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("docs")
	require.NoError(t, err)
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sig := &object.Signature{Name: "Docs", Email: "docs@example.com", When: when}
	_, err = wt.Commit("docs", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)

	code, out := run(t, "-p", dir, "pages")
	require.Equal(t, 0, code)

	var pages []Page
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 2)
	assert.Equal(t, "guide/intro.md", pages[0].Path)
	assert.Equal(t, "Introduction", pages[0].Title)
	assert.Equal(t, "https://github.com/vuejs/vitepress/edit/main/docs/guide/intro.md", pages[0].EditURL)
	require.NotNil(t, pages[0].LastUpdated)
	assert.True(t, when.Equal(*pages[0].LastUpdated))
}

func TestPages_OutsideRepository(t *testing.T) {
	code, out := run(t, "-p", newProject(t), "pages")
	require.Equal(t, 0, code)

	var pages []Page
	require.NoError(t, json.Unmarshal([]byte(out), &pages))
	require.Len(t, pages, 2)
	for _, p := range pages {
		assert.Nil(t, p.LastUpdated)
	}
}

func zennProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"articles/hello.md":    "---\ntitle: Hello\nemoji: 👋\n---\nHi there.\n",
		"articles/untitled.md": "---\nemoji: 🙈\n---\nNo title.\n",
		"articles/notes.txt":   "ignored",
		"images/hello/pic.png": "png",
		"frontmatter.yaml":     "outline: deep\n",
		"docs/index.md":        "# Home\n",
	})
	return dir
}

func TestImport(t *testing.T) {
	dir := zennProject(t)

	code, out := run(t, "-p", dir, "import", "--frontmatter", "frontmatter.yaml")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "[1/3] Loading configuration")
	assert.Contains(t, out, "[2/3] Importing articles")
	assert.Contains(t, out, "[3/3] Importing images")
	assert.Contains(t, out, "Done in")

	article, err := os.ReadFile(filepath.Join(dir, "docs", "entries", "hello.md"))
	require.NoError(t, err)
	assert.Contains(t, string(article), "outline: deep")
	assert.Contains(t, string(article), "# Hello\n\nHi there.\n")
	assert.NoFileExists(t, filepath.Join(dir, "docs", "entries", "untitled.md"))
	assert.FileExists(t, filepath.Join(dir, "docs", "public", "images", "hello", "pic.png"))
}

func TestImport_FrontmatterFile(t *testing.T) {
	dir := zennProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "frontmatter.yaml")))

	code, _ := run(t, "-p", dir, "import", "--frontmatter", "frontmatter.yaml")
	require.Equal(t, 3, code, "an explicit frontmatter file must exist")

	writeTree(t, dir, map[string]string{
		"docpress.yaml": "import:\n  frontmatter_file: frontmatter.yaml\n",
	})
	code, _ = run(t, "-p", dir, "import")
	require.Equal(t, 0, code, "a configured frontmatter file is optional")
}

func TestImport_Filters(t *testing.T) {
	dir := zennProject(t)
	writeTree(t, dir, map[string]string{"articles/other.md": "---\ntitle: Other\n---\n"})

	code, _ := run(t, "-p", dir, "import", "--include", "other")
	require.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dir, "docs", "entries", "other.md"))
	assert.NoFileExists(t, filepath.Join(dir, "docs", "entries", "hello.md"))
}

func TestWatch(t *testing.T) {
	dir := newProject(t)
	out := filepath.Join(dir, "docs", ".vitepress", "config.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- Execute(ctx, []string{"-p", dir, "watch", "--debounce", "20ms"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "initial build")

	// Let the watcher register the tree before changing it.
	time.Sleep(100 * time.Millisecond)
	writeTree(t, dir, map[string]string{"docs/guide/deploy.md": "# Deploying\n"})

	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(raw), "Deploying")
	}, 5*time.Second, 20*time.Millisecond, "rebuild after change")

	cancel()
	select {
	case code := <-done:
		require.Equal(t, 0, code, stderr.String())
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
