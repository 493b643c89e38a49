package table

import (
	"strings"

	"gamedata-wiki/core/utils"
)

// DefaultSeparator joins array values in cells.
const DefaultSeparator = ", "

const joinSuffix = "[]"

// Resolve extracts the value at a dotted path. A trailing "[]" on the last
// segment joins the array found there with DefaultSeparator. Missing fields
// resolve to the empty string.
func Resolve(rec Record, path string) any {
	return ResolveSep(rec, path, DefaultSeparator)
}

// ResolveSep is Resolve with an explicit join separator.
func ResolveSep(rec Record, path string, sep string) any {
	if rec == nil || path == "" {
		return ""
	}

	segments := strings.Split(path, ".")
	var current any = rec
	for i, seg := range segments {
		join := i == len(segments)-1 && strings.HasSuffix(seg, joinSuffix)
		if join {
			seg = strings.TrimSuffix(seg, joinSuffix)
		}

		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		v, ok := m[seg]
		if !ok || v == nil {
			return ""
		}

		if join {
			if arr, ok := v.([]any); ok {
				return joinValues(arr, sep)
			}
		}
		current = v
	}
	return current
}

// lookup is Resolve without the empty-string substitution.
func lookup(rec Record, path string) (any, bool) {
	v := Resolve(rec, strings.TrimSuffix(path, joinSuffix))
	if s, ok := v.(string); ok && s == "" {
		return nil, false
	}
	return v, true
}

func joinValues(arr []any, sep string) string {
	parts := make([]string, len(arr))
	for i, e := range arr {
		parts[i] = utils.ToString(e)
	}
	return strings.Join(parts, sep)
}
