package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect the generated
// site config. List fields whose order does not matter are sorted first, so
// reordering them does not change the hash. Logging, watch and import
// settings are deliberately left out.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "=")))
		h.Write([]byte{0})
	}

	site, _ := json.Marshal(c.Site)
	w("site", string(site))

	opts := c.Sidebar
	opts.ExcludeFiles = sorted(opts.ExcludeFiles)
	opts.ExcludeFolders = sorted(opts.ExcludeFolders)
	sb, _ := json.Marshal(opts)
	w("sidebar", string(sb))

	w("output.config_file", c.Output.ConfigFile)
	w("output.format", string(c.Output.Format))
	return hex.EncodeToString(h.Sum(nil))
}

func sorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
