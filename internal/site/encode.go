package site

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docpress/internal/foundation/normalization"
)

// Format selects the encoding of generated documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var formatNormalizer = normalization.NewNormalizer("format", map[string]Format{
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
}, FormatJSON)

// ParseFormat accepts json, yaml or yml in any case. Blank means JSON.
func ParseFormat(raw string) (Format, error) {
	return formatNormalizer.Parse(raw)
}

// FormatForPath picks the format from a file extension, falling back to JSON.
func FormatForPath(path string) Format {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatJSON
	}
	return formatNormalizer.Normalize(ext[1:])
}

// Encode writes c to w.
func (c Config) Encode(w io.Writer, format Format) error {
	return Encode(w, c, format)
}

// WriteFile atomically replaces path with the encoded configuration.
func (c Config) WriteFile(path string, format Format) error {
	return WriteFile(path, c, format)
}

// Encode writes v to w as indented JSON or as YAML.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile encodes v and atomically replaces path with the result. Parent
// directories are created as needed.
func WriteFile(path string, v any, format Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		if cerr := pending.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file %s: %w", path, cerr)
		}
	}()

	if err := Encode(pending, v, format); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
