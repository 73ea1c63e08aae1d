// Package sliceutil provides generic slice helpers.
package sliceutil

// Deduplicate returns items with repeated keys removed, keeping the first
// occurrence and the original order.
//
// Example:
//
//	origins := []string{"https://a.example", "HTTPS://A.example"}
//	unique := sliceutil.Deduplicate(origins, strings.ToLower)
//	// Result: ["https://a.example"]
func Deduplicate[T any, K comparable](items []T, keyFunc func(T) K) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[K]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		key := keyFunc(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}
