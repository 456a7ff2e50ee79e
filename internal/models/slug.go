package models

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify derives a URL-safe slug from a title: lowercase ASCII letters and
// digits, with every other run of characters collapsed into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugSuffix returns six random hex characters, appended to a slug when the
// derived one is already taken.
func SlugSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}
