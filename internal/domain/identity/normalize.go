package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// nameSuffixes is checked in this exact order against the tail of the
// already-concatenated key. The order matters: "iii" must be tried before
// "ii" or "Martin III" would lose only two characters.
var nameSuffixes = []string{"jr", "iii", "ii", "sr", "iv"}

// NormalizeName collapses a free-text player name into a join key: diacritics
// folded, everything but ASCII letters dropped (including internal spaces),
// lowercased, then generational suffixes trimmed from the tail. The suffix
// trim is deliberately crude and can truncate surnames that merely end in a
// suffix token ("Kamii" -> "kam"); existing scored data depends on that exact
// behavior, so it is preserved rather than corrected. The key is never
// displayed. Empty or non-name input yields "".
func NormalizeName(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range norm.NFD.String(raw) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}

	key := b.String()
	for _, suffix := range nameSuffixes {
		key = strings.TrimSuffix(key, suffix)
	}
	return key
}
