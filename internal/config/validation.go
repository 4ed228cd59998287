package config

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docpress/internal/foundation"
	"git.home.luguber.info/inful/docpress/internal/foundation/normalization"
	"git.home.luguber.info/inful/docpress/internal/site"
)

var outputFormatNormalizer = normalization.NewNormalizer("output format", map[string]site.Format{
	"json": site.FormatJSON,
	"yaml": site.FormatYAML,
	"yml":  site.FormatYAML,
}, "")

func outputFormat(raw string) site.Format {
	if f := outputFormatNormalizer.Normalize(raw); f != "" {
		return f
	}
	return site.Format(raw)
}

// validate checks the normalized, defaulted configuration.
func validate(cfg *Config) error {
	var r foundation.Result

	if cfg.Version != CurrentVersion {
		r.Add("version", "unsupported", fmt.Sprintf("unsupported version %q (expected %q)", cfg.Version, CurrentVersion))
	}
	if !outputFormatNormalizer.Valid(cfg.Output.Format) {
		r.Add("output.format", "one_of", fmt.Sprintf("must be one of: %v", outputFormatNormalizer.Keys()))
	}
	if cfg.Sidebar.CollapseDepth < 0 {
		r.Add("sidebar.collapseDepth", "range", "must not be negative")
	}
	if cfg.Import.Concurrency > 64 {
		r.Add("import.concurrency", "range", "must be at most 64")
	}
	foundation.Check(&r, "watch.debounce", cfg.Watch.Debounce, duration(false))
	foundation.Check(&r, "watch.resync", cfg.Watch.Resync, duration(true))

	return r.Err("invalid configuration")
}

// duration accepts positive Go durations, and zero when allowZero is set.
func duration(allowZero bool) foundation.Rule[string] {
	return func(raw string) (string, string, bool) {
		d, err := time.ParseDuration(raw)
		switch {
		case err != nil:
			return "duration", fmt.Sprintf("invalid duration %q", raw), false
		case d < 0, d == 0 && !allowZero:
			return "range", "must be positive", false
		}
		return "", "", true
	}
}
