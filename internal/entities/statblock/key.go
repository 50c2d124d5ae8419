package statblock

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key returns the lookup key for a stat block name: trimmed and case-folded,
// so "Goblin", " goblin " and "GOBLIN" address the same record.
func Key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
