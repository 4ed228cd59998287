package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizationResult captures non-fatal adjustments made while normalizing.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// normalize canonicalizes enum spellings and trims list entries in place.
func normalize(cfg *Config) *NormalizationResult {
	res := &NormalizationResult{}

	if raw := string(cfg.Logging.Level); raw != "" {
		lvl, err := logLevelNormalizer.Parse(raw)
		if err != nil {
			lvl = LogLevelInfo
			res.warn("%v, using %q", err, lvl)
		}
		cfg.Logging.Level = lvl
	}
	if raw := string(cfg.Logging.Format); raw != "" {
		f, err := logFormatNormalizer.Parse(raw)
		if err != nil {
			f = LogFormatText
			res.warn("%v, using %q", err, f)
		}
		cfg.Logging.Format = f
	}
	if raw := string(cfg.Output.Format); raw != "" {
		cfg.Output.Format = outputFormat(raw)
	}

	cfg.Import.Include = cleanList(cfg.Import.Include)
	cfg.Import.Exclude = cleanList(cfg.Import.Exclude)
	cfg.Sidebar.ExcludeFiles = cleanList(cfg.Sidebar.ExcludeFiles)
	cfg.Sidebar.ExcludeFolders = cleanList(cfg.Sidebar.ExcludeFolders)

	for _, p := range []*string{&cfg.Import.Source, &cfg.Import.Dest, &cfg.Import.ImagesDest, &cfg.Output.ConfigFile} {
		if *p != "" {
			*p = filepath.Clean(strings.TrimSpace(*p))
		}
	}
	return res
}

// cleanList trims entries, drops blanks and splits comma-joined values.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, item := range in {
		for part := range strings.SplitSeq(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
