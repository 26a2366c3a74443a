package post

import (
	"strings"
	"unicode"
)

// DeriveSlug maps a title to its URL slug: lower-case the title and replace
// every maximal run of whitespace with a single hyphen. Pure and total; no
// punctuation stripping, so titles differing only in case or spacing collapse
// to the same slug (collisions are rejected by the pipeline).
func DeriveSlug(title string) string {
	var b strings.Builder
	inRun := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsSpace(r) {
			inRun = true
			continue
		}
		if inRun {
			b.WriteByte('-')
			inRun = false
		}
		b.WriteRune(r)
	}
	if inRun {
		b.WriteByte('-')
	}
	return b.String()
}
