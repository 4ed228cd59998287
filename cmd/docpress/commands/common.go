// Package commands implements the docpress command line.
package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpress/internal/config"
	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/metrics"
	"git.home.luguber.info/inful/docpress/internal/site"
	"git.home.luguber.info/inful/docpress/internal/version"
)

const (
	defaultConfigFile = "docpress.yaml"

	stageSite  = "site_config"
	kindConfig = "config"
	stdoutPath = "-"
)

// Global carries per-process state shared by every command.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Out    io.Writer
	Err    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path, relative to the project root" default:"docpress.yaml"`
	Project string           `short:"p" help:"Project root" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Site    SiteCmd    `cmd:"" name:"config" help:"Generate the site configuration file"`
	Sidebar SidebarCmd `cmd:"" help:"Print the generated sidebar"`
	Check   CheckCmd   `cmd:"" help:"Generate and validate the site configuration without writing it"`
	Pages   PagesCmd   `cmd:"" help:"Print the page manifest with edit links and last-updated times"`
	Import  ImportCmd  `cmd:"" help:"Import a Zenn content tree into the documentation root"`
	Watch   WatchCmd   `cmd:"" help:"Regenerate the site configuration whenever the documentation changes"`
}

// AfterApply runs after flag parsing; installs the bootstrap logger.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Err, &slog.HandlerOptions{Level: level})).
		With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	return nil
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	g := &Global{Logger: slog.Default(), RunID: uuid.NewString(), Out: stdout, Err: stderr}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("docpress"),
		kong.Description("Generate documentation site configuration from a docs tree."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Bind(g),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) {
			_ = perr.Context.PrintUsage(true)
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	err = kctx.Run(&cli)
	return foundationerrors.NewCLIErrorAdapter(stderr, cli.Verbose, g.Logger).Handle(err)
}

// loadConfig reads the app config and replaces the bootstrap logger with
// the one the config describes. Only the default config file may be missing.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	path := resolve(c.Project, c.Config)
	cfg, err := config.Load(path, c.Config == defaultConfigFile)
	if err != nil {
		return nil, err
	}
	g.Logger = cfg.Logging.NewLogger(g.Err, c.Verbose).With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	slog.Debug("Configuration loaded", logfields.Path(path), slog.String("config", cfg.String()))
	return cfg, nil
}

// session holds what one command run needs: the loaded config, the metrics
// recorder and the project root used to resolve relative paths.
type session struct {
	g        *Global
	root     string
	cfg      *config.Config
	recorder metrics.Recorder
	registry *prometheus.Registry
	metrics  string
	started  time.Time
}

func (c *CLI) open(g *Global, metricsFile string) (*session, error) {
	cfg, err := c.loadConfig(g)
	if err != nil {
		return nil, err
	}
	s := &session{g: g, root: c.Project, cfg: cfg, recorder: metrics.NoopRecorder{}, started: time.Now()}
	if metricsFile == "" {
		metricsFile = cfg.Output.MetricsFile
	}
	if metricsFile != "" {
		s.registry = prometheus.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
		s.metrics = s.path(metricsFile)
	}
	return s, nil
}

// finish records the run outcome and writes the metrics file, if any.
func (s *session) finish(err error) error {
	s.recorder.ObserveBuildDuration(time.Since(s.started))
	switch metrics.ResultFor(err) {
	case metrics.ResultSuccess:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	case metrics.ResultCanceled:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
	default:
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	s.flushMetrics()
	return err
}

func (s *session) flushMetrics() {
	if s.registry == nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.metrics), 0o750); err != nil {
		slog.Warn("Failed to create metrics directory", logfields.Path(s.metrics), logfields.Error(err))
		return
	}
	if err := metrics.WriteTextfile(s.metrics, s.registry); err != nil {
		slog.Warn("Failed to write metrics", logfields.Path(s.metrics), logfields.Error(err))
	}
}

// path resolves p against the project root unless it is absolute.
func (s *session) path(p string) string {
	return resolve(s.root, p)
}

func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// format picks the output format: the flag when given, else the configured one.
func (s *session) format(flag string) (site.Format, error) {
	if flag == "" {
		return s.cfg.Output.Format, nil
	}
	f, err := site.ParseFormat(flag)
	if err != nil {
		return "", foundationerrors.WrapError(err, foundationerrors.CategoryValidation, "invalid --format").Build()
	}
	return f, nil
}

// buildSite generates the site config from the documentation tree.
func (s *session) buildSite() (cfg site.Config, err error) {
	timer := metrics.StartStage(s.recorder, stageSite)
	defer func() {
		d := timer.Done(err)
		if err == nil {
			slog.Debug("Site config generated", logfields.Stage(stageSite),
				logfields.Elapsed(d))
		}
	}()
	return site.Build(os.DirFS(s.root), s.cfg.Site, s.cfg.Sidebar)
}

// writeSite writes cfg to out ("-" for stdout; empty for output.config_file).
// An existing file with identical content is left alone.
func (s *session) writeSite(cfg site.Config, out string, format site.Format) error {
	if out == stdoutPath {
		return cfg.Encode(s.g.Out, format)
	}
	if out == "" {
		out = s.path(s.cfg.Output.ConfigFile)
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf, format); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "encode site config").Build()
	}
	existing, err := os.ReadFile(out)
	if err == nil && bytes.Equal(existing, buf.Bytes()) {
		s.recorder.IncFileResult(kindConfig, metrics.FileUnchanged)
		slog.Info("Site config unchanged", logfields.Path(out))
		return nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Reading existing site config failed", logfields.Path(out), logfields.Error(err))
	}

	if err := cfg.WriteFile(out, format); err != nil {
		s.recorder.IncFileResult(kindConfig, metrics.FileFailed)
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write site config").
			WithPath(out).
			Build()
	}
	s.recorder.IncFileResult(kindConfig, metrics.FileWritten)
	s.recorder.AddBytesWritten(kindConfig, int64(buf.Len()))
	slog.Info("Site config written", logfields.Path(out), logfields.Format(string(format)))
	return nil
}
