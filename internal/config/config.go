// Package config loads the docpress application config (docpress.yaml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/sidebar"
	"git.home.luguber.info/inful/docpress/internal/site"
)

// CurrentVersion is the config schema version written by Init.
const CurrentVersion = "1"

// Config is the docpress application configuration.
type Config struct {
	Version string          `yaml:"version"`
	Site    site.Overrides  `yaml:"site,omitempty"`
	Sidebar sidebar.Options `yaml:"sidebar"`
	Import  ImportConfig    `yaml:"import"`
	Output  OutputConfig    `yaml:"output"`
	Watch   WatchConfig     `yaml:"watch"`
	Logging LoggingConfig   `yaml:"logging"`
}

// ImportConfig configures importing a Zenn content tree into the docs root.
type ImportConfig struct {
	// Source is the root of the Zenn content (holding articles/ and images/).
	Source      string `yaml:"source"`
	ArticlesDir string `yaml:"articles_dir"`
	ImagesDir   string `yaml:"images_dir"`
	// Dest receives the converted articles; ImagesDest the copied images.
	Dest       string `yaml:"dest"`
	ImagesDest string `yaml:"images_dest"`
	// Include and Exclude filter both articles (by file name) and images (by path substring).
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
	// FrontmatterFile holds fields merged into every article (YAML or JSONC).
	FrontmatterFile string `yaml:"frontmatter_file,omitempty"`
	Concurrency     int    `yaml:"concurrency"`
	Fingerprint     bool   `yaml:"fingerprint"`
}

// OutputConfig controls where generated documents go.
type OutputConfig struct {
	// ConfigFile is the site config path, relative to the project root.
	ConfigFile  string      `yaml:"config_file"`
	Format      site.Format `yaml:"format"`
	MetricsFile string      `yaml:"metrics_file,omitempty"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
	Resync   string `yaml:"resync"`
}

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(w.Debounce)
	return d
}

// ResyncInterval returns the parsed resync interval; zero disables resync.
func (w WatchConfig) ResyncInterval() time.Duration {
	d, _ := time.ParseDuration(w.Resync)
	return d
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion, Sidebar: sidebar.DefaultOptions()}
	applyDefaults(cfg)
	return cfg
}

// Load reads the config at path. A missing file yields Default when
// allowMissing is set. Environment variables from .env files are loaded
// first and ${VAR} references in the file are expanded.
func Load(path string, allowMissing bool) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if allowMissing {
				slog.Debug("Config file not found, using defaults", logfields.Path(path))
				return Default(), nil
			}
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "configuration file not found").
				WithPath(path).
				Build()
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "read configuration file").
			WithPath(path).
			Fatal().
			Build()
	}
	return Parse(data, path)
}

// Parse decodes, normalizes, defaults and validates raw config bytes. source
// names the origin in error messages.
func Parse(data []byte, source string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{Sidebar: sidebar.DefaultOptions()}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryConfig, "parse configuration").
			WithPath(source).
			Fatal().
			Build()
	}

	res := normalize(cfg)
	for _, w := range res.Warnings {
		slog.Warn("Config normalization", logfields.Path(source), slog.String("warning", w))
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return foundationerrors.NewError(foundationerrors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithPath(path).
			Build()
	}

	lastUpdated := true
	collapsed := false
	example := Config{
		Version: CurrentVersion,
		Site: site.Overrides{
			Title:       "My Awesome Project",
			Description: "A VitePress Site",
			LastUpdated: &lastUpdated,
			Nav: []site.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Examples", Link: "/markdown-examples"},
			},
			EditLink: &site.EditLink{Pattern: "https://github.com/your-org/your-repo/edit/main/docs/:path"},
		},
		Sidebar: sidebar.Options{
			DocumentRootPath:        "/docs",
			Collapsed:               &collapsed,
			UseTitleFromFrontmatter: true,
			UseTitleFromFileHeading: true,
			HyphenToSpace:           true,
			CapitalizeFirst:         true,
		},
		Import: ImportConfig{
			Source:          ".",
			ArticlesDir:     "articles",
			ImagesDir:       "images",
			Dest:            "docs/entries",
			ImagesDest:      "docs/public/images",
			FrontmatterFile: "frontmatter.yaml",
			Concurrency:     4,
		},
		Output: OutputConfig{
			ConfigFile: "docs/.vitepress/config.json",
			Format:     site.FormatJSON,
		},
		Watch:   WatchConfig{Debounce: "300ms", Resync: "10m"},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "marshal example config").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "write config file").
			WithPath(path).
			Build()
	}
	return nil
}

// String renders a one-line summary for debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("config(version=%s docs=%s output=%s/%s)", c.Version, c.Sidebar.DocumentRootPath, c.Output.ConfigFile, c.Output.Format)
}
