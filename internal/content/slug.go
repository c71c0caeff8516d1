package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a title: lowercase, accents stripped,
// every run of non-alphanumerics collapsed into a single hyphen.
func Slugify(title string) string {
	stripped, _, err := transform.String(deaccent, title)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	return b.String()
}

// ValidSlug reports whether s is already in canonical slug form.
func ValidSlug(s string) bool {
	return s != "" && s == Slugify(s)
}
