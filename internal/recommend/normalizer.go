package recommend

import "smartcart/internal/catalog"

// NormalizeCart maps free-case user-supplied item strings to canonical
// catalog names, silently dropping entries with no case-insensitive match
// and deduplicating the result. Pure; the >3 cap belongs to the caller.
func NormalizeCart(items []string, cat *catalog.Catalog) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, raw := range items {
		item, ok := cat.Lookup(raw)
		if !ok || seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		out = append(out, item.Name)
	}
	return out
}
