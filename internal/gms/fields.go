package gms

import "fmt"

// FirstField resolves a display value from a loosely-shaped DTO by
// trying candidate keys in order. The profile endpoint's field names
// have drifted across backend versions; this keeps the fallback order in
// one place instead of duplicating it per page. Missing, nil and empty
// values are skipped; when nothing matches the fallback is "N/A".
func FirstField(dto map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := dto[k]
		if !ok || v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if s != "" {
			return s
		}
	}
	return "N/A"
}
