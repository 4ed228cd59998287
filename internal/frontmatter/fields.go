package frontmatter

import (
	"fmt"
	"maps"
)

// Int reads a numeric field as an int. yaml.v3 decodes numbers to int,
// int64, uint64 or float64 depending on their size and shape.
func Int(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Bool reports whether key holds true.
func Bool(fields map[string]any, key string) bool {
	b, _ := fields[key].(bool)
	return b
}

// Merge overlays overrides on base and returns the result as a new map.
// Maps present on both sides merge key by key; other values are replaced.
func Merge(base, overrides map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any, len(overrides))
	}
	for k, ov := range overrides {
		om, overrideIsMap := asStringMap(ov)
		bm, baseIsMap := asStringMap(out[k])
		if overrideIsMap && baseIsMap {
			out[k] = Merge(bm, om)
			continue
		}
		out[k] = ov
	}
	return out
}

func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
