// Package valueparse holds the parsing helpers shared by the stat block transforms.
// Every function is total: malformed input yields a default instead of an error.
package valueparse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/statblock-api/internal/entities/statblock"
)

const (
	// DefaultTier is used when a tier is missing or not an integer
	DefaultTier = 1

	listSeparator = ","
)

// Experience is one parsed experience entry, e.g. "Climbing +2"
type Experience struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SplitList returns a list field as a slice. A stored list is returned as is;
// a stored string is split on commas and each piece trimmed. Empty input yields
// an empty, non-nil slice.
func SplitList(value statblock.StringList) []string {
	if value.IsList {
		if value.Items == nil {
			return []string{}
		}
		return value.Items
	}
	return SplitString(value.Text)
}

// SplitString splits a comma-delimited string and trims each piece.
// Blank input yields an empty, non-nil slice.
func SplitString(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, listSeparator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ParseExperienceEntry splits an entry at its last whitespace boundary into a
// name and a trailing value. An entry without whitespace is all name.
func ParseExperienceEntry(entry string) Experience {
	trimmed := strings.TrimSpace(entry)

	idx := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return Experience{Name: trimmed}
	}

	// IsSpace also matches multi-byte spaces
	_, size := utf8.DecodeRuneInString(trimmed[idx:])
	return Experience{
		Name:  strings.TrimSpace(trimmed[:idx]),
		Value: strings.TrimSpace(trimmed[idx+size:]),
	}
}

// ParseAttackBonus reads an attack bonus such as "+3", "-1" or "+2 (melee)".
// A single leading '+' is dropped, then the leading integer is read and any
// trailing text ignored. Input without leading digits is 0.
func ParseAttackBonus(raw string) int {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "+")

	n, ok := leadingInt(s)
	if !ok {
		return 0
	}
	return n
}

// CoerceTier reads the leading integer of a tier, so "2nd" and "3.0" are 2 and 3.
// Missing, unparseable and zero tiers are DefaultTier; negative tiers are kept.
func CoerceTier(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n == 0 {
		return DefaultTier
	}
	return n
}

// leadingInt reads an optional sign and the run of ASCII digits that follows
// leading whitespace. It reports false when there are no digits or the value
// does not fit in an int.
func leadingInt(raw string) (int, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
