// Package sanitize maps arbitrary media titles to filesystem-safe names.
package sanitize

import (
	"strings"
	"unicode"
)

const maxNameLen = 200

// fallbackName is used when a title sanitizes down to nothing.
const fallbackName = "audio"

// Clean replaces characters forbidden on common filesystems with "_",
// collapses whitespace runs to a single space, trims, and caps the result at
// 200 characters. Non-empty input never yields an empty result.
func Clean(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	space := false
	for _, r := range name {
		switch {
		case strings.ContainsRune(`\/*?:"<>|`, r):
			// replacement happens before collapsing, so a space pending
			// ahead of a forbidden character still lands in the output
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteByte('_')
		case unicode.IsSpace(r):
			// collapse runs; the space is written lazily so leading and
			// trailing whitespace never survive
			space = b.Len() > 0
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if runes := []rune(out); len(runes) > maxNameLen {
		out = strings.TrimSpace(string(runes[:maxNameLen]))
	}
	if out == "" && name != "" {
		return fallbackName
	}
	return out
}
