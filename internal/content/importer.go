// Package content imports a Zenn content tree (articles/ and images/) into a
// documentation root.
package content

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/renameio/v2"
	"golang.org/x/sync/errgroup"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/metrics"
)

const (
	StageArticles = "import_articles"
	StageImages   = "import_images"

	kindArticle = "article"
	kindImage   = "image"

	defaultConcurrency = 4
)

// Reporter receives progress while an import stage runs. Calls are serialized.
type Reporter interface {
	Start(stage string, total int)
	Advance(name string)
	Finish(stage string)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Start(string, int) {}
func (NopReporter) Advance(string)    {}
func (NopReporter) Finish(string)     {}

// Options describe one import run. Directories are filesystem paths.
type Options struct {
	ArticlesDir string
	Dest        string
	ImagesDir   string
	ImagesDest  string
	Include     []string
	Exclude     []string
	Overrides   map[string]any
	Fingerprint bool
	Concurrency int
}

// Report summarizes one import stage.
type Report struct {
	Written   int
	Unchanged int
	Skipped   int
	Bytes     int64
	// SkippedFiles lists the articles left out for lacking a title.
	SkippedFiles []string
}

// Total is the number of files the stage looked at.
func (r Report) Total() int { return r.Written + r.Unchanged + r.Skipped }

// Importer copies a Zenn content tree into a documentation root.
type Importer struct {
	opts     Options
	reporter Reporter
	recorder metrics.Recorder

	mu sync.Mutex
}

// Option configures an Importer.
type Option func(*Importer)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(im *Importer) {
		if r != nil {
			im.reporter = r
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(im *Importer) {
		if r != nil {
			im.recorder = r
		}
	}
}

// NewImporter returns an importer for opts.
func NewImporter(opts Options, options ...Option) *Importer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	im := &Importer{opts: opts, reporter: NopReporter{}, recorder: metrics.NoopRecorder{}}
	for _, o := range options {
		o(im)
	}
	return im
}

// ImportArticles converts every selected Markdown file directly inside the
// articles directory and writes it to Dest under the same name. Outputs whose
// bytes would not change are left untouched.
func (im *Importer) ImportArticles(ctx context.Context) (rep Report, err error) {
	timer := metrics.StartStage(im.recorder, StageArticles)
	defer func() { timer.Done(err) }()

	entries, err := os.ReadDir(im.opts.ArticlesDir)
	if err != nil {
		return rep, dirError(err, "read articles directory", im.opts.ArticlesDir)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(im.opts.ArticlesDir, e.Name()))
		}
	}
	articles := FilterMarkdown(paths, im.opts.Include, im.opts.Exclude)

	if err := os.MkdirAll(im.opts.Dest, 0o750); err != nil {
		return rep, dirError(err, "create destination directory", im.opts.Dest)
	}

	im.reporter.Start(StageArticles, len(articles))
	defer im.reporter.Finish(StageArticles)

	convert := ConvertOptions{Overrides: im.opts.Overrides, Fingerprint: im.opts.Fingerprint}
	for _, src := range articles {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := filepath.Base(src)
		if err := im.importArticle(src, filepath.Join(im.opts.Dest, name), convert, &rep); err != nil {
			im.recorder.IncFileResult(kindArticle, metrics.FileFailed)
			return rep, err
		}
		im.reporter.Advance(name)
	}

	slog.Info("Articles imported",
		logfields.Stage(StageArticles),
		slog.Int("written", rep.Written),
		slog.Int("unchanged", rep.Unchanged),
		slog.Int("skipped", rep.Skipped))
	return rep, nil
}

func (im *Importer) importArticle(src, dst string, opts ConvertOptions, rep *Report) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read article").
			WithPath(src).
			Build()
	}

	article, err := ConvertArticle(raw, opts)
	if errors.Is(err, ErrNoTitle) {
		slog.Info("Skipping article without title", logfields.File(src))
		rep.Skipped++
		rep.SkippedFiles = append(rep.SkippedFiles, src)
		im.recorder.IncFileResult(kindArticle, metrics.FileSkipped)
		return nil
	}
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryContent, "convert article").
			WithPath(src).
			Build()
	}
	out, err := article.Bytes()
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryContent, "render article").
			WithPath(src).
			Build()
	}

	written, err := writeIfChanged(dst, out)
	if err != nil {
		return err
	}
	if !written {
		slog.Debug("Article unchanged", logfields.File(dst))
		rep.Unchanged++
		im.recorder.IncFileResult(kindArticle, metrics.FileUnchanged)
		return nil
	}
	slog.Debug("Article written", logfields.File(dst))
	rep.Written++
	rep.Bytes += int64(len(out))
	im.recorder.IncFileResult(kindArticle, metrics.FileWritten)
	im.recorder.AddBytesWritten(kindArticle, int64(len(out)))
	return nil
}

// ImportImages copies every selected file below the images directory to
// ImagesDest, keeping the relative layout. Copies run concurrently up to
// Concurrency. A missing images directory imports nothing.
func (im *Importer) ImportImages(ctx context.Context) (rep Report, err error) {
	timer := metrics.StartStage(im.recorder, StageImages)
	defer func() { timer.Done(err) }()

	files, err := ListFiles(im.opts.ImagesDir, im.opts.Include, im.opts.Exclude)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Images directory not found, skipping", logfields.Path(im.opts.ImagesDir))
			return rep, nil
		}
		return rep, dirError(err, "list images", im.opts.ImagesDir)
	}

	im.reporter.Start(StageImages, len(files))
	defer im.reporter.Finish(StageImages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Concurrency)
	for _, src := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return im.copyImage(src, &rep)
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}

	slog.Info("Images imported",
		logfields.Stage(StageImages),
		slog.Int("written", rep.Written),
		slog.Int("unchanged", rep.Unchanged),
		slog.String("bytes", humanize.Bytes(uint64(max(rep.Bytes, 0)))))
	return rep, nil
}

func (im *Importer) copyImage(src string, rep *Report) error {
	rel, err := filepath.Rel(im.opts.ImagesDir, src)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "relative image path").
			WithPath(src).
			Build()
	}
	dst := filepath.Join(im.opts.ImagesDest, rel)

	data, err := os.ReadFile(src)
	if err != nil {
		im.recorder.IncFileResult(kindImage, metrics.FileFailed)
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read image").
			WithPath(src).
			Build()
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		im.recorder.IncFileResult(kindImage, metrics.FileFailed)
		return dirError(err, "create image directory", filepath.Dir(dst))
	}
	written, err := writeIfChanged(dst, data)
	if err != nil {
		im.recorder.IncFileResult(kindImage, metrics.FileFailed)
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	if written {
		rep.Written++
		rep.Bytes += int64(len(data))
		im.recorder.IncFileResult(kindImage, metrics.FileWritten)
		im.recorder.AddBytesWritten(kindImage, int64(len(data)))
	} else {
		rep.Unchanged++
		im.recorder.IncFileResult(kindImage, metrics.FileUnchanged)
	}
	im.reporter.Advance(rel)
	return nil
}

// writeIfChanged atomically replaces dst with data unless dst already holds
// exactly data. It reports whether a write happened.
func writeIfChanged(dst string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(dst); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := renameio.WriteFile(dst, data, 0o644); err != nil {
		return false, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write file").
			WithPath(dst).
			Build()
	}
	return true, nil
}

func dirError(err error, msg, path string) error {
	category := foundationerrors.CategoryFileSystem
	if errors.Is(err, fs.ErrNotExist) {
		category = foundationerrors.CategoryNotFound
	}
	return foundationerrors.WrapError(err, category, msg).WithPath(path).Build()
}
