// Package stringutil provides substring matching helpers shared by the
// keyword classifier and the alias resolver.
package stringutil

import "strings"

// ContainsAny reports whether s contains any of subs as a substring.
// Matching is plain containment: "hi" is found inside "this".
func ContainsAny(s string, subs ...string) bool {
	_, ok := FirstContained(s, subs...)
	return ok
}

// FirstContained returns the first element of subs, in order, that s contains.
// Empty elements never match.
//
// Example:
//
//	FirstContained("what is bod and cod", "tds", "bod", "cod") // Returns "bod", true
func FirstContained(s string, subs ...string) (string, bool) {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}
