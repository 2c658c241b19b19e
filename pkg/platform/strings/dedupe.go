// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeFold removes case-insensitive duplicates from a slice, keeping the
// first occurrence with its original casing. Order is preserved and values
// are not trimmed.
//
// Example:
//
//	DedupeFold([]string{"Road Act", "bar", "ROAD act"})
//	// Returns: []string{"Road Act", "bar"}
func DedupeFold(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}
