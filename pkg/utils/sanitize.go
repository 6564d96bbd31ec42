package utils

import "strings"

// EscapeSQLWildcards escapes LIKE wildcard characters so user input matches literally.
// Pair it with ESCAPE '\' in the query.
func EscapeSQLWildcards(input string) string {
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a lower-cased LIKE pattern for partial matching.
func SanitizeSearchQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if len(input) > 100 {
		input = input[:100]
	}
	return "%" + EscapeSQLWildcards(input) + "%"
}

// TruncateString truncates s to maxLen runes.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
