// Package textkey canonicalizes free-text queries so cache keys and prefix
// comparisons are stable across cosmetic variations of the same input.
package textkey

import "strings"

// Normalize lowercases s, trims surrounding whitespace, and collapses runs of
// internal whitespace to single spaces. Normalize is idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SuggestionKey returns the cache key for a suggestion query. Suggestion and
// full-search results never share a cache slot.
func SuggestionKey(normalized string) string {
	return "suggestions_" + normalized
}

// SearchKey returns the cache key for a full-search query.
func SearchKey(normalized string) string {
	return "search_" + normalized
}
