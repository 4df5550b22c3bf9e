package domain

import "strings"

// NormalizeUsername trims surrounding whitespace. Usernames are otherwise
// stored exactly as entered; uniqueness is byte-wise.
func NormalizeUsername(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// It is used for reviewer display-name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
