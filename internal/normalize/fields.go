package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// asObject returns v as a JSON object, or nil when it is anything else.
func asObject(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}

// asList returns v as a JSON array, or nil when it is anything else.
func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

// asString coerces a JSON scalar to a string. Objects, arrays and null become "".
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// field returns the first non-blank string among keys of obj.
// Later keys are alternate spellings of the first one.
func field(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := asString(obj[key]); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// stringList reads a list of strings. A bare string becomes a one-element list.
// Blank entries are dropped.
func stringList(v any) []string {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}
		}
		return []string{s}
	}
	items := asList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := asString(item)
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// splitList reads a value that is either a comma-separated string or an array of strings.
// Entries are trimmed and empties dropped; order is preserved.
func splitList(v any) []string {
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	items := asList(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
