package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	foundationerrors "git.home.luguber.info/inful/docpress/internal/foundation/errors"
	"git.home.luguber.info/inful/docpress/internal/frontmatter"
)

// LoadOverrides reads the frontmatter fields merged into every imported
// article. Files ending in .json or .jsonc may carry comments; anything else
// is read as YAML.
func LoadOverrides(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundationerrors.WrapError(err, foundationerrors.CategoryNotFound, "frontmatter file not found").
				WithPath(path).
				Build()
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "read frontmatter file").
			WithPath(path).
			Build()
	}

	var fields map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(raw), &fields)
	default:
		fields, err = frontmatter.Decode(raw)
	}
	if err != nil {
		return nil, foundationerrors.WrapError(fmt.Errorf("decode %s: %w", filepath.Base(path), err),
			foundationerrors.CategoryConfig, "invalid frontmatter file").
			WithPath(path).
			Build()
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
