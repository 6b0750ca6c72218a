package ingest

import (
	"encoding/json"
	"regexp"
	"strings"
)

// quantityPrefix strips leading counts like "2 x " or "3x" from item names.
var quantityPrefix = regexp.MustCompile(`^\s*\d+\s*[xX]?\s+`)

// whitespaceRun collapses internal whitespace artifacts.
var whitespaceRun = regexp.MustCompile(`\s+`)

// placeholders are tokens that resolve to "no item".
var placeholders = map[string]bool{
	"":     true,
	"nan":  true,
	"null": true,
	"none": true,
	"n/a":  true,
	"na":   true,
	"-":    true,
}

// ParseOrder extracts and cleans the item names of one raw order record.
// It never fails: malformed input degrades to an empty list.
func ParseOrder(raw string) []string {
	return CleanItemList(ExtractItemNames(raw))
}

// ExtractItemNames pulls item-name strings out of a raw order field. The
// field may be a JSON array of strings, a JSON array of objects carrying an
// item_name/name key, a Python-style single-quoted list, or plain delimited
// text. Anything unparseable yields nil.
func ExtractItemNames(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || placeholders[strings.ToLower(raw)] {
		return nil
	}

	if names, ok := extractJSON(raw); ok {
		return names
	}

	// Python repr uses single quotes; retry after swapping them.
	if strings.Contains(raw, "'") {
		if names, ok := extractJSON(strings.ReplaceAll(raw, "'", `"`)); ok {
			return names
		}
	}

	// Fall back to treating the field as delimited text.
	trimmed := strings.Trim(raw, "[]{}()")
	return strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
}

func extractJSON(raw string) ([]string, bool) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		return names, true
	}

	var objects []map[string]any
	if err := json.Unmarshal([]byte(raw), &objects); err == nil {
		var out []string
		for _, obj := range objects {
			for _, key := range []string{"item_name", "name", "item"} {
				if v, ok := obj[key].(string); ok {
					out = append(out, v)
					break
				}
			}
		}
		return out, true
	}

	return nil, false
}

// CleanItemList normalizes extracted names: collapses whitespace, strips
// quantity prefixes, surrounding quotes and stray punctuation, and drops
// entries that resolve to nothing.
func CleanItemList(names []string) []string {
	var out []string
	for _, name := range names {
		cleaned := CleanItemName(name)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// CleanItemName normalizes a single extracted name. Returns "" when the
// name resolves to a placeholder or pure noise.
func CleanItemName(name string) string {
	name = strings.Trim(name, ` "'[]{}`)
	name = quantityPrefix.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if placeholders[strings.ToLower(name)] {
		return ""
	}
	if isNumeric(name) {
		return ""
	}
	return name
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
