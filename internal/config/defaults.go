package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/docpress/internal/site"
)

const (
	defaultArticlesDir = "articles"
	defaultImagesDir   = "images"
	defaultConcurrency = 4
	defaultDebounce    = "300ms"
	defaultResync      = "10m"
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type importDefaults struct{}

func (importDefaults) Domain() string { return "import" }

func (importDefaults) ApplyDefaults(cfg *Config) {
	im := &cfg.Import
	if im.Source == "" {
		im.Source = "."
	}
	if im.ArticlesDir == "" {
		im.ArticlesDir = defaultArticlesDir
	}
	if im.ImagesDir == "" {
		im.ImagesDir = defaultImagesDir
	}
	if im.Dest == "" {
		im.Dest = filepath.Join(docRoot(cfg), "entries")
	}
	if im.ImagesDest == "" {
		im.ImagesDest = filepath.Join(docRoot(cfg), "public", "images")
	}
	if im.Concurrency <= 0 {
		im.Concurrency = defaultConcurrency
	}
}

type outputDefaults struct{}

func (outputDefaults) Domain() string { return "output" }

func (outputDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Output.ConfigFile == "" {
		cfg.Output.ConfigFile = filepath.Join(docRoot(cfg), ".vitepress", "config.json")
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = site.FormatForPath(cfg.Output.ConfigFile)
	}
}

type watchDefaults struct{}

func (watchDefaults) Domain() string { return "watch" }

func (watchDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce
	}
	if cfg.Watch.Resync == "" {
		cfg.Watch.Resync = defaultResync
	}
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

var defaultAppliers = []DefaultApplier{importDefaults{}, outputDefaults{}, watchDefaults{}, loggingDefaults{}}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	for _, a := range defaultAppliers {
		a.ApplyDefaults(cfg)
	}
}

// docRoot is the document root as a relative filesystem path.
func docRoot(cfg *Config) string {
	p := filepath.FromSlash(cfg.Sidebar.DocumentRootPath)
	p = filepath.Clean(string(filepath.Separator) + p)
	rel, err := filepath.Rel(string(filepath.Separator), p)
	if err != nil {
		return "."
	}
	return rel
}

// DocRoot returns the document root as a filesystem path relative to the
// project root.
func (c *Config) DocRoot() string {
	return docRoot(c)
}
