package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify lower-cases s, strips accents and keeps only [a-z0-9-].
// "Cabaña del Lago" becomes "cabana-del-lago".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		plain = strings.ToLower(strings.TrimSpace(s))
	}

	plain = slugInvalid.ReplaceAllString(plain, "")
	plain = slugSpaces.ReplaceAllString(strings.TrimSpace(plain), "-")
	plain = slugDashes.ReplaceAllString(plain, "-")
	return strings.Trim(plain, "-")
}
