package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docpress/internal/config"
	"git.home.luguber.info/inful/docpress/internal/content"
	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/termui"
)

// ImportCmd implements the 'import' command. Paths are relative to the project root.
type ImportCmd struct {
	Src         string   `help:"Zenn content root holding articles/ and images/ (default import.source)"`
	Dest        string   `help:"Directory receiving converted articles (default import.dest)"`
	ImagesDest  string   `name:"images-dest" help:"Directory receiving images (default import.images_dest)"`
	Include     []string `help:"Only import these files (comma separated)" sep:","`
	Exclude     []string `help:"Skip these files (comma separated)" sep:","`
	Frontmatter string   `help:"YAML or JSONC file whose fields are merged into every article"`
	Fingerprint bool     `help:"Stamp a content fingerprint into imported articles"`
	Concurrency int      `help:"Parallel image copies (default import.concurrency)"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics to this file"`
}

const importStages = 3

func (c *ImportCmd) Run(ctx context.Context, g *Global, root *CLI) (err error) {
	ui := termui.New(g.Out, importStages)
	ui.Stage("Loading configuration")

	s, err := root.open(g, c.MetricsFile)
	if err != nil {
		return err
	}
	defer func() { err = s.finish(err) }()

	c.apply(&s.cfg.Import)
	opts, err := c.options(s)
	if err != nil {
		return err
	}

	im := content.NewImporter(opts, content.WithReporter(ui), content.WithRecorder(s.recorder))

	ui.Stage("Importing articles")
	articles, err := im.ImportArticles(ctx)
	if err != nil {
		return err
	}
	for _, f := range articles.SkippedFiles {
		slog.Warn("Article has no title and was skipped", logfields.File(f))
	}

	ui.Stage("Importing images")
	images, err := im.ImportImages(ctx)
	if err != nil {
		return err
	}

	ui.Done(articles.Written+images.Written, articles.Bytes+images.Bytes)
	return nil
}

// apply lets flags override the import section of the config.
func (c *ImportCmd) apply(cfg *config.ImportConfig) {
	if c.Src != "" {
		cfg.Source = c.Src
	}
	if c.Dest != "" {
		cfg.Dest = c.Dest
	}
	if c.ImagesDest != "" {
		cfg.ImagesDest = c.ImagesDest
	}
	if len(c.Include) > 0 {
		cfg.Include = c.Include
	}
	if len(c.Exclude) > 0 {
		cfg.Exclude = c.Exclude
	}
	if c.Frontmatter != "" {
		cfg.FrontmatterFile = c.Frontmatter
	}
	if c.Fingerprint {
		cfg.Fingerprint = true
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
}

func (c *ImportCmd) options(s *session) (content.Options, error) {
	cfg := s.cfg.Import
	src := s.path(cfg.Source)
	opts := content.Options{
		ArticlesDir: filepath.Join(src, cfg.ArticlesDir),
		ImagesDir:   filepath.Join(src, cfg.ImagesDir),
		Dest:        s.path(cfg.Dest),
		ImagesDest:  s.path(cfg.ImagesDest),
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Fingerprint: cfg.Fingerprint,
		Concurrency: cfg.Concurrency,
	}
	if cfg.FrontmatterFile == "" {
		return opts, nil
	}

	path := s.path(cfg.FrontmatterFile)
	overrides, err := content.LoadOverrides(path)
	switch {
	case err == nil:
		opts.Overrides = overrides
		slog.Debug("Frontmatter overrides loaded", logfields.Path(path), logfields.Count(len(overrides)))
	case c.Frontmatter == "" && foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound):
		// A configured but absent file is optional; an explicit flag is not.
		slog.Warn("Frontmatter file not found, importing without overrides", logfields.Path(path))
	default:
		return opts, err
	}
	return opts, nil
}
